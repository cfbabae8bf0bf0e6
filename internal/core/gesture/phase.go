package gesture

import (
	"time"

	"holdpress/internal/core/model"
)

// Phase describes where an active press sits relative to the thresholds.
type Phase string

const (
	PhaseWithinTapWindow Phase = "within_tap_window"
	PhaseGrowingPress    Phase = "growing_press"
	PhaseHeldConfirmed   Phase = "held_confirmed"
)

// Classify maps the elapsed press time to a phase.
func Classify(elapsed time.Duration, config model.GestureConfig) Phase {
	switch {
	case elapsed >= config.HoldThreshold:
		return PhaseHeldConfirmed
	case elapsed >= config.TapThreshold:
		return PhaseGrowingPress
	default:
		return PhaseWithinTapWindow
	}
}

// EdgeTrigger fires once per press cycle, on the first observation that
// reaches the threshold.
type EdgeTrigger struct {
	threshold time.Duration
	fired     bool
	firedAt   time.Duration
}

// NewEdgeTrigger creates a trigger armed for the given threshold.
func NewEdgeTrigger(threshold time.Duration) *EdgeTrigger {
	return &EdgeTrigger{threshold: threshold}
}

// Observe reports whether elapsed is the crossing observation. Within a
// cycle, a repeat of the value it fired at never fires again.
func (trigger *EdgeTrigger) Observe(elapsed time.Duration) bool {
	if elapsed < trigger.threshold {
		return false
	}
	if trigger.fired || (trigger.firedAt != 0 && trigger.firedAt == elapsed) {
		return false
	}
	trigger.fired = true
	trigger.firedAt = elapsed
	return true
}

// Fired reports whether the trigger already fired in this cycle.
func (trigger *EdgeTrigger) Fired() bool {
	return trigger.fired
}

// Reset re-arms the trigger for a new cycle.
func (trigger *EdgeTrigger) Reset() {
	trigger.fired = false
	trigger.firedAt = 0
}
