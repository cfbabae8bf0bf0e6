package holdbutton

import (
	"image/color"
	"sync"

	"holdpress/internal/core/animation"
	"holdpress/internal/core/holdloop"
	"holdpress/internal/core/model"
	"holdpress/internal/core/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// Gesture is the hold loop a button forwards its pointer signals to.
type Gesture interface {
	PressBegan()
	PressEnded()
	Snapshot() progress.Snapshot
	Config() model.GestureConfig
	Subscribe(buffer int) <-chan holdloop.Event
}

var (
	defaultIdleColor   = color.NRGBA{R: 58, G: 63, B: 72, A: 255}
	defaultActiveColor = color.NRGBA{R: 214, G: 69, B: 65, A: 255}
	defaultRingColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
)

// HoldButton is a round button that must be held to confirm.
type HoldButton struct {
	widget.BaseWidget

	Text        string
	IdleColor   color.Color
	ActiveColor color.Color
	RingColor   color.Color

	mu      sync.Mutex
	gesture Gesture
}

var (
	_ desktop.Mouseable = (*HoldButton)(nil)
	_ mobile.Touchable  = (*HoldButton)(nil)
)

// New creates a hold button driving gesture.
func New(text string, gesture Gesture) *HoldButton {
	button := &HoldButton{
		Text:        text,
		IdleColor:   defaultIdleColor,
		ActiveColor: defaultActiveColor,
		RingColor:   defaultRingColor,
	}
	button.ExtendBaseWidget(button)
	button.SetGesture(gesture)
	return button
}

// SetGesture replaces the hold loop. The caller owns closing the old one.
func (button *HoldButton) SetGesture(gesture Gesture) {
	button.mu.Lock()
	button.gesture = gesture
	button.mu.Unlock()

	if gesture != nil {
		go button.watch(gesture.Subscribe(16))
	}
	button.Refresh()
}

// MouseDown starts a press on the primary button.
func (button *HoldButton) MouseDown(event *desktop.MouseEvent) {
	if event != nil && event.Button != desktop.MouseButtonPrimary {
		return
	}
	if gesture := button.current(); gesture != nil {
		gesture.PressBegan()
	}
}

// MouseUp ends a press on the primary button.
func (button *HoldButton) MouseUp(event *desktop.MouseEvent) {
	if event != nil && event.Button != desktop.MouseButtonPrimary {
		return
	}
	if gesture := button.current(); gesture != nil {
		gesture.PressEnded()
	}
}

// TouchDown starts a press.
func (button *HoldButton) TouchDown(*mobile.TouchEvent) {
	if gesture := button.current(); gesture != nil {
		gesture.PressBegan()
	}
}

// TouchUp ends a press.
func (button *HoldButton) TouchUp(*mobile.TouchEvent) {
	if gesture := button.current(); gesture != nil {
		gesture.PressEnded()
	}
}

// TouchCancel ends a press the same way a release does.
func (button *HoldButton) TouchCancel(*mobile.TouchEvent) {
	if gesture := button.current(); gesture != nil {
		gesture.PressEnded()
	}
}

// CreateRenderer implements fyne.Widget.
func (button *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	button.ExtendBaseWidget(button)
	return newRenderer(button)
}

func (button *HoldButton) current() Gesture {
	button.mu.Lock()
	defer button.mu.Unlock()
	return button.gesture
}

func (button *HoldButton) state() (progress.Snapshot, bool) {
	gesture := button.current()
	if gesture == nil {
		return progress.Snapshot{Scale: 1}, false
	}
	return gesture.Snapshot(), gesture.Config().CounterClockwise
}

func (button *HoldButton) watch(events <-chan holdloop.Event) {
	for event := range events {
		switch event.Type {
		case holdloop.EventPressIgnored:
			continue
		case holdloop.EventOutcome:
			fyne.Do(button.settle)
		default:
			fyne.Do(button.Refresh)
		}
	}
}

// settle keeps redrawing while the growth falls back after a release.
func (button *HoldButton) settle() {
	button.Refresh()
	fyne.NewAnimation(animation.ReleaseSpan, func(float32) {
		button.Refresh()
	}).Start()
}
