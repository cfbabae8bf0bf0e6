package panel

import (
	"fmt"
	"image/color"
	"time"

	"holdpress/internal/core/gesture"
	"holdpress/internal/core/holdloop"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	defaultWidth  = float32(320)
	defaultHeight = float32(420)
)

// Window is the main demo window around a hold button.
type Window struct {
	app          fyne.App
	window       fyne.Window
	titleLabel   *canvas.Text
	hintLabel    *canvas.Text
	statusLabel  *canvas.Text
	countersText *canvas.Text
	background   *canvas.Rectangle
	button       fyne.CanvasObject
}

// New builds the window around button.
func New(app fyne.App, title string, button fyne.CanvasObject) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 26, B: 31, A: 255})

	titleLabel := canvas.NewText(title, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	hintLabel := canvas.NewText("Hold to confirm, tap to preview", color.NRGBA{R: 180, G: 184, B: 192, A: 255})
	hintLabel.Alignment = fyne.TextAlignCenter
	hintLabel.TextSize = 13

	statusLabel := canvas.NewText("Ready", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	statusLabel.Alignment = fyne.TextAlignCenter
	statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	statusLabel.TextSize = 16

	countersText := canvas.NewText(formatStats(holdloop.Stats{}), color.NRGBA{R: 180, G: 184, B: 192, A: 255})
	countersText.Alignment = fyne.TextAlignCenter
	countersText.TextSize = 12

	content := container.New(&panelLayout{}, titleLabel, hintLabel, button, statusLabel, countersText)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(defaultWidth, defaultHeight))

	return &Window{
		app:          app,
		window:       window,
		titleLabel:   titleLabel,
		hintLabel:    hintLabel,
		statusLabel:  statusLabel,
		countersText: countersText,
		background:   background,
		button:       button,
	}
}

// Window returns the underlying fyne window.
func (panel *Window) Window() fyne.Window {
	return panel.window
}

// Show displays the window.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Hide hides the window without closing it.
func (panel *Window) Hide() {
	panel.window.Hide()
}

// SetOnClose sets the handler run instead of closing the window.
func (panel *Window) SetOnClose(handler func()) {
	panel.window.SetCloseIntercept(handler)
}

// SetStatus updates the status line. Must run on the UI goroutine.
func (panel *Window) SetStatus(status string) {
	panel.statusLabel.Text = status
	panel.statusLabel.Refresh()
}

// ShowOutcome reports a finished press.
func (panel *Window) ShowOutcome(outcome gesture.Outcome, elapsed time.Duration) {
	panel.SetStatus(describeOutcome(outcome, elapsed))
}

// SetStats updates the counters line.
func (panel *Window) SetStats(stats holdloop.Stats) {
	panel.countersText.Text = formatStats(stats)
	panel.countersText.Refresh()
}

func describeOutcome(outcome gesture.Outcome, elapsed time.Duration) string {
	switch outcome {
	case gesture.OutcomeHeld:
		return fmt.Sprintf("Confirmed after %s", formatElapsed(elapsed))
	case gesture.OutcomeTapped:
		return "Tapped"
	case gesture.OutcomeCancelled:
		return fmt.Sprintf("Cancelled at %s", formatElapsed(elapsed))
	case gesture.OutcomeNone:
		return "Released"
	default:
		return ""
	}
}

func formatElapsed(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	return fmt.Sprintf("%d ms", value.Milliseconds())
}

func formatStats(stats holdloop.Stats) string {
	return fmt.Sprintf("held %d · tapped %d · cancelled %d · dismissed %d",
		stats.Held, stats.Tapped, stats.Cancelled, stats.Dismissed)
}

// panelLayout stacks title and hint on top, the button in the middle and
// the status lines at the bottom.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	title := objects[0]
	hint := objects[1]
	button := objects[2]
	status := objects[3]
	counters := objects[4]

	pad := size.Height * 0.04
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	hintSize := hint.MinSize()
	hintY := pad + titleSize.Height + 4
	hint.Move(fyne.NewPos(pad, hintY))
	hint.Resize(fyne.NewSize(availableWidth, hintSize.Height))

	countersSize := counters.MinSize()
	countersY := size.Height - pad - countersSize.Height
	counters.Move(fyne.NewPos(pad, countersY))
	counters.Resize(fyne.NewSize(availableWidth, countersSize.Height))

	statusSize := status.MinSize()
	statusY := countersY - 6 - statusSize.Height
	status.Move(fyne.NewPos(pad, statusY))
	status.Resize(fyne.NewSize(availableWidth, statusSize.Height))

	top := hintY + hintSize.Height + pad
	bottom := statusY - pad
	side := bottom - top
	if side > availableWidth {
		side = availableWidth
	}
	buttonMin := button.MinSize()
	if side < buttonMin.Width {
		side = buttonMin.Width
	}
	button.Move(fyne.NewPos((size.Width-side)/2, top+(bottom-top-side)/2))
	button.Resize(fyne.NewSize(side, side))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 5 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(40)
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height)
}
