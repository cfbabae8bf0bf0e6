package holdbutton

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	restFraction    = float32(0.82)
	ringThickness   = 0.09
	overlayMaxAlpha = 0x55
	minSide         = float32(96)
)

type holdRenderer struct {
	button  *HoldButton
	body    *canvas.Circle
	overlay *canvas.Circle
	ring    *canvas.Raster
	label   *canvas.Text
	objects []fyne.CanvasObject

	value            float64
	counterClockwise bool
	ringColor        color.Color
}

func newRenderer(button *HoldButton) *holdRenderer {
	renderer := &holdRenderer{
		button:    button,
		body:      canvas.NewCircle(button.IdleColor),
		overlay:   canvas.NewCircle(color.Transparent),
		label:     canvas.NewText(button.Text, color.White),
		ringColor: button.RingColor,
	}
	renderer.ring = canvas.NewRasterWithPixels(renderer.ringPixel)
	renderer.label.Alignment = fyne.TextAlignCenter
	renderer.label.TextStyle = fyne.TextStyle{Bold: true}
	renderer.objects = []fyne.CanvasObject{renderer.ring, renderer.body, renderer.overlay, renderer.label}
	renderer.Refresh()
	return renderer
}

func (renderer *holdRenderer) ringPixel(x, y, w, h int) color.Color {
	if ringCovers(x, y, w, h, renderer.value, renderer.counterClockwise, ringThickness) {
		return renderer.ringColor
	}
	return color.Transparent
}

func (renderer *holdRenderer) Layout(size fyne.Size) {
	snapshot, _ := renderer.button.state()

	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	origin := fyne.NewPos((size.Width-side)/2, (size.Height-side)/2)
	renderer.ring.Move(origin)
	renderer.ring.Resize(fyne.NewSize(side, side))

	inner := side * (1 - float32(ringThickness))
	scale := float32(math.Max(0, math.Min(1, snapshot.Scale)))
	diameter := inner * (restFraction + (1-restFraction)*scale)
	bodyPos := fyne.NewPos((size.Width-diameter)/2, (size.Height-diameter)/2)
	for _, circle := range []*canvas.Circle{renderer.body, renderer.overlay} {
		circle.Move(bodyPos)
		circle.Resize(fyne.NewSize(diameter, diameter))
	}

	labelSize := renderer.label.MinSize()
	renderer.label.Move(fyne.NewPos((size.Width-labelSize.Width)/2, (size.Height-labelSize.Height)/2))
	renderer.label.Resize(labelSize)
}

func (renderer *holdRenderer) MinSize() fyne.Size {
	labelSize := renderer.label.MinSize()
	side := labelSize.Width * 1.6
	if labelSize.Height*1.6 > side {
		side = labelSize.Height * 1.6
	}
	if side < minSide {
		side = minSide
	}
	return fyne.NewSize(side, side)
}

func (renderer *holdRenderer) Refresh() {
	snapshot, counterClockwise := renderer.button.state()

	renderer.value = snapshot.Value
	renderer.counterClockwise = counterClockwise
	renderer.ringColor = renderer.button.RingColor
	renderer.body.FillColor = mixColor(renderer.button.IdleColor, renderer.button.ActiveColor, snapshot.ColorMix)
	renderer.overlay.FillColor = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(clampUnit(snapshot.Fade) * overlayMaxAlpha))}
	renderer.label.Text = renderer.button.Text

	renderer.Layout(renderer.button.Size())
	for _, object := range renderer.objects {
		canvas.Refresh(object)
	}
}

func (renderer *holdRenderer) Objects() []fyne.CanvasObject {
	return renderer.objects
}

func (renderer *holdRenderer) Destroy() {}

func clampUnit(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}
