package animation

import "time"

// Status describes what a timeline is doing at a given instant.
type Status int

const (
	StatusDismissed Status = iota
	StatusForward
	StatusReverse
	StatusCompleted
	StatusStopped
)

// Curve reshapes a linear progress value in [0,1].
type Curve interface {
	Transform(t float64) float64
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(t float64) float64

// Transform implements Curve.
func (fn CurveFunc) Transform(t float64) float64 {
	return fn(t)
}

// Linear leaves progress untouched.
var Linear Curve = CurveFunc(func(t float64) float64 { return t })

// Timeline is a timed value in [0,1]. Its value is a pure function of the
// time since its current run was started, so it needs no ticker of its own.
type Timeline struct {
	duration        time.Duration
	reverseDuration time.Duration
	curve           Curve

	from      float64
	target    float64
	span      time.Duration
	startedAt time.Time
	direction Status
	moving    bool
	value     float64
}

// NewTimeline creates a dismissed timeline. A non-positive reverse duration
// reuses the forward duration.
func NewTimeline(duration, reverseDuration time.Duration) *Timeline {
	if reverseDuration <= 0 {
		reverseDuration = duration
	}
	return &Timeline{
		duration:        duration,
		reverseDuration: reverseDuration,
		curve:           Linear,
	}
}

// WithCurve sets the curve applied by Value.
func (timeline *Timeline) WithCurve(curve Curve) *Timeline {
	if curve == nil {
		curve = Linear
	}
	timeline.curve = curve
	return timeline
}

// Duration returns the full forward span.
func (timeline *Timeline) Duration() time.Duration {
	return timeline.duration
}

// Forward runs toward 1 from the current value. The span is scaled by the
// remaining distance.
func (timeline *Timeline) Forward(now time.Time) {
	current := timeline.Raw(now)
	timeline.animateTo(now, 1, scaleDuration(timeline.duration, 1-current), StatusForward)
}

// ForwardFrom jumps to from and runs toward 1.
func (timeline *Timeline) ForwardFrom(now time.Time, from float64) {
	timeline.settle(clamp01(from))
	timeline.Forward(now)
}

// Reverse runs toward 0 over the default reverse span, scaled by the
// current value.
func (timeline *Timeline) Reverse(now time.Time) {
	current := timeline.Raw(now)
	timeline.animateTo(now, 0, scaleDuration(timeline.reverseDuration, current), StatusReverse)
}

// AnimateBack runs toward 0 over exactly span.
func (timeline *Timeline) AnimateBack(now time.Time, span time.Duration) {
	timeline.animateTo(now, 0, span, StatusReverse)
}

// Stop freezes the timeline at its current value.
func (timeline *Timeline) Stop(now time.Time) {
	timeline.settle(timeline.Raw(now))
}

// Reset snaps the timeline back to 0 without animating.
func (timeline *Timeline) Reset() {
	timeline.settle(0)
}

// Raw returns the linear value before the curve is applied.
func (timeline *Timeline) Raw(now time.Time) float64 {
	if !timeline.moving {
		return timeline.value
	}
	if timeline.span <= 0 {
		return timeline.target
	}
	fraction := float64(now.Sub(timeline.startedAt)) / float64(timeline.span)
	fraction = clamp01(fraction)
	return timeline.from + (timeline.target-timeline.from)*fraction
}

// Value returns the curved value at now.
func (timeline *Timeline) Value(now time.Time) float64 {
	return timeline.curve.Transform(timeline.Raw(now))
}

// Animating reports whether a run is still in motion at now.
func (timeline *Timeline) Animating(now time.Time) bool {
	if !timeline.moving || timeline.span <= 0 {
		return false
	}
	return now.Sub(timeline.startedAt) < timeline.span
}

// Status reports the timeline status at now.
func (timeline *Timeline) Status(now time.Time) Status {
	if timeline.Animating(now) {
		return timeline.direction
	}
	switch raw := timeline.Raw(now); {
	case raw <= 0:
		return StatusDismissed
	case raw >= 1:
		return StatusCompleted
	default:
		return StatusStopped
	}
}

func (timeline *Timeline) animateTo(now time.Time, target float64, span time.Duration, direction Status) {
	timeline.from = timeline.Raw(now)
	timeline.target = target
	timeline.span = span
	timeline.startedAt = now
	timeline.direction = direction
	timeline.moving = true
}

func (timeline *Timeline) settle(value float64) {
	timeline.value = value
	timeline.moving = false
	timeline.span = 0
}

func scaleDuration(duration time.Duration, fraction float64) time.Duration {
	return time.Duration(float64(duration) * clamp01(fraction))
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
