package gesture

import (
	"time"

	"holdpress/internal/core/model"
)

// Outcome is the result of one completed press cycle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeTapped
	OutcomeHeld
	OutcomeCancelled
)

func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeNone:
		return "none"
	case OutcomeTapped:
		return "tapped"
	case OutcomeHeld:
		return "held"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ReleaseOutcome classifies a release at the given elapsed time.
// A release that finds the hold threshold already reached counts as held.
// A tap without a tap handler is dismissed as OutcomeNone.
func ReleaseOutcome(elapsed time.Duration, config model.GestureConfig, tapHandled bool) Outcome {
	switch Classify(elapsed, config) {
	case PhaseHeldConfirmed:
		return OutcomeHeld
	case PhaseGrowingPress:
		return OutcomeCancelled
	}
	if tapHandled {
		return OutcomeTapped
	}
	return OutcomeNone
}
