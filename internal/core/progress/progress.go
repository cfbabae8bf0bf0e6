package progress

import (
	"math"
	"time"

	"holdpress/internal/core/animation"
	"holdpress/internal/core/model"
)

// Snapshot holds the normalized render values of a hold control at one instant.
type Snapshot struct {
	// Scale is the growth progress; 1 when growth is disabled.
	Scale float64
	// Fade is the overlay opacity.
	Fade float64
	// ColorMix is the fraction of the active color. Meaningless while idle.
	ColorMix float64
	// Value is elapsed / hold threshold. It is not clamped.
	Value float64
}

// Value returns the progress indicator value for elapsed press time.
func Value(elapsed time.Duration, config model.GestureConfig) float64 {
	return float64(elapsed) / float64(config.HoldThreshold)
}

// Mirror maps a clockwise sweep angle (radians from 12 o'clock) into the
// counter-clockwise frame.
func Mirror(angle float64) float64 {
	if angle <= 0 {
		return 0
	}
	return 2*math.Pi - angle
}

// Animator owns the growth, fade and color timelines of one control.
type Animator struct {
	config model.GestureConfig
	growth *animation.Timeline
	fade   *animation.Timeline
	color  *animation.Timeline
}

// NewAnimator creates dismissed timelines for the given config.
func NewAnimator(config model.GestureConfig) *Animator {
	return &Animator{
		config: config,
		growth: animation.NewTimeline(config.GrowthSpan(), animation.GrowthReverseSpan),
		fade:   animation.NewTimeline(animation.FadeSpan, 0).WithCurve(animation.FadeSequence()),
		color:  animation.NewTimeline(config.ColorSpan(), 0),
	}
}

// Begin restarts the fade and color timelines from 0.
func (animator *Animator) Begin(now time.Time) {
	animator.fade.ForwardFrom(now, 0)
	animator.color.ForwardFrom(now, 0)
}

// Grow starts the growth timeline unless growth is disabled or already in flight.
func (animator *Animator) Grow(now time.Time) bool {
	if !animator.config.GrowEnabled || animator.growth.Animating(now) {
		return false
	}
	animator.growth.Forward(now)
	return true
}

// Growing reports whether the growth timeline is in motion.
func (animator *Animator) Growing(now time.Time) bool {
	return animator.growth.Animating(now)
}

// Release sends the growth back over the release span, drops the fade to 0
// and freezes the color.
func (animator *Animator) Release(now time.Time) {
	animator.growth.AnimateBack(now, animation.ReleaseSpan)
	animator.fade.Reset()
	animator.color.Stop(now)
}

// Settling reports whether a released growth is still falling back.
func (animator *Animator) Settling(now time.Time) bool {
	return animator.growth.Status(now) == animation.StatusReverse
}

// Snapshot computes the render values at now for the given elapsed press time.
func (animator *Animator) Snapshot(now time.Time, elapsed time.Duration) Snapshot {
	scale := 1.0
	if animator.config.GrowEnabled {
		scale = animator.growth.Value(now)
	}
	return Snapshot{
		Scale:    scale,
		Fade:     animator.fade.Value(now),
		ColorMix: animator.color.Value(now),
		Value:    Value(elapsed, animator.config),
	}
}
