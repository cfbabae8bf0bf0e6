package holdbutton

import (
	"image/color"
	"math"
	"sync"
	"testing"

	"holdpress/internal/core/holdloop"
	"holdpress/internal/core/model"
	"holdpress/internal/core/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGesture struct {
	mu       sync.Mutex
	began    int
	ended    int
	snapshot progress.Snapshot
	config   model.GestureConfig
	events   chan holdloop.Event
}

func newFakeGesture() *fakeGesture {
	return &fakeGesture{
		snapshot: progress.Snapshot{Scale: 1},
		config:   model.DefaultGestureConfig(),
		events:   make(chan holdloop.Event),
	}
}

func (gesture *fakeGesture) PressBegan() {
	gesture.mu.Lock()
	defer gesture.mu.Unlock()
	gesture.began++
}

func (gesture *fakeGesture) PressEnded() {
	gesture.mu.Lock()
	defer gesture.mu.Unlock()
	gesture.ended++
}

func (gesture *fakeGesture) Snapshot() progress.Snapshot {
	gesture.mu.Lock()
	defer gesture.mu.Unlock()
	return gesture.snapshot
}

func (gesture *fakeGesture) Config() model.GestureConfig { return gesture.config }

func (gesture *fakeGesture) Subscribe(int) <-chan holdloop.Event { return gesture.events }

func (gesture *fakeGesture) counts() (int, int) {
	gesture.mu.Lock()
	defer gesture.mu.Unlock()
	return gesture.began, gesture.ended
}

func TestRingCoversClockwise(t *testing.T) {
	// quarter sweep covers the upper right of the ring only
	assert.True(t, ringCovers(81, 18, 100, 100, 0.25, false, 0.2))
	assert.False(t, ringCovers(18, 18, 100, 100, 0.25, false, 0.2))
	assert.False(t, ringCovers(50, 50, 100, 100, 1, false, 0.2), "centre is never part of the ring")
	assert.False(t, ringCovers(81, 18, 100, 100, 0, false, 0.2))
}

func TestRingCoversCounterClockwise(t *testing.T) {
	assert.True(t, ringCovers(18, 18, 100, 100, 0.25, true, 0.2))
	assert.False(t, ringCovers(81, 18, 100, 100, 0.25, true, 0.2))
}

func TestRingCoversClampsValue(t *testing.T) {
	assert.True(t, ringCovers(5, 50, 100, 100, 1.7, false, 0.2))
	assert.True(t, ringCovers(95, 50, 100, 100, 1.7, true, 0.2))
}

func TestMixColor(t *testing.T) {
	from := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	to := color.NRGBA{R: 200, G: 100, B: 0, A: 255}

	assert.Equal(t, from, mixColor(from, to, 0))
	assert.Equal(t, to, mixColor(from, to, 1))
	assert.Equal(t, color.NRGBA{R: 100, G: 100, B: 100, A: 255}, mixColor(from, to, 0.5))
	assert.Equal(t, to, mixColor(from, to, 3))
}

func TestMousePrimaryButtonDrivesGesture(t *testing.T) {
	test.NewTempApp(t)
	gesture := newFakeGesture()
	button := New("Hold", gesture)

	button.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonSecondary})
	began, _ := gesture.counts()
	assert.Equal(t, 0, began)

	button.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	button.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	began, ended := gesture.counts()
	assert.Equal(t, 1, began)
	assert.Equal(t, 1, ended)
}

func TestTouchCancelEndsPress(t *testing.T) {
	test.NewTempApp(t)
	gesture := newFakeGesture()
	button := New("Hold", gesture)

	button.TouchDown(&mobile.TouchEvent{})
	button.TouchCancel(&mobile.TouchEvent{})
	button.TouchDown(&mobile.TouchEvent{})
	button.TouchUp(&mobile.TouchEvent{})

	began, ended := gesture.counts()
	assert.Equal(t, 2, began)
	assert.Equal(t, 2, ended)
}

func TestRendererReflectsSnapshot(t *testing.T) {
	test.NewTempApp(t)
	gesture := newFakeGesture()
	button := New("Hold", gesture)
	button.Resize(fyne.NewSize(200, 200))

	renderer := test.WidgetRenderer(button)
	require.Len(t, renderer.Objects(), 4)
	body := renderer.Objects()[1].(*canvas.Circle)
	overlay := renderer.Objects()[2].(*canvas.Circle)
	restSize := body.Size().Width

	gesture.mu.Lock()
	gesture.snapshot = progress.Snapshot{Scale: 0, Fade: 1, ColorMix: 1, Value: 0.5}
	gesture.mu.Unlock()
	renderer.Refresh()

	assert.Equal(t, mixColor(button.IdleColor, button.ActiveColor, 1), body.FillColor)
	assert.Equal(t, uint8(overlayMaxAlpha), overlay.FillColor.(color.NRGBA).A)
	assert.Less(t, body.Size().Width, restSize)

	expected := float32(200) * (1 - float32(ringThickness)) * restFraction
	assert.InDelta(t, expected, body.Size().Width, 0.01)
	assert.False(t, math.IsNaN(float64(body.Position().X)))
}

func TestNilGestureRendersAtRest(t *testing.T) {
	test.NewTempApp(t)
	button := New("Hold", nil)
	button.MouseDown(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})

	renderer := test.WidgetRenderer(button)
	body := renderer.Objects()[1].(*canvas.Circle)
	assert.Equal(t, mixColor(button.IdleColor, button.ActiveColor, 0), body.FillColor)
}
