package holdbutton

import (
	"image/color"
	"math"

	"holdpress/internal/core/progress"
)

// ringCovers reports whether pixel (x, y) of a w×h raster lies on the filled
// part of the progress ring. The sweep starts at 12 o'clock.
func ringCovers(x, y, w, h int, value float64, counterClockwise bool, thickness float64) bool {
	if value <= 0 || w <= 0 || h <= 0 {
		return false
	}
	if value > 1 {
		value = 1
	}

	cx := float64(w) / 2
	cy := float64(h) / 2
	px := float64(x) + 0.5 - cx
	py := float64(y) + 0.5 - cy

	outer := math.Min(cx, cy)
	inner := outer * (1 - thickness)
	distance := math.Hypot(px, py)
	if distance > outer || distance < inner {
		return false
	}

	angle := math.Atan2(px, -py)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if counterClockwise {
		angle = progress.Mirror(angle)
	}
	return angle <= value*2*math.Pi
}

// mixColor blends from toward to by t in [0,1].
func mixColor(from, to color.Color, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a := color.NRGBAModel.Convert(from).(color.NRGBA)
	b := color.NRGBAModel.Convert(to).(color.NRGBA)
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}
