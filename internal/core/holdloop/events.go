package holdloop

import (
	"time"

	"holdpress/internal/core/gesture"
	"holdpress/internal/core/progress"
)

// EventType defines the type of hold loop event.
type EventType string

const (
	EventPressBegan    EventType = "press_began"
	EventProgress      EventType = "progress"
	EventGrowthStarted EventType = "growth_started"
	EventOutcome       EventType = "outcome"
	EventPressIgnored  EventType = "press_ignored"
)

// Event represents a hold loop update for observers.
type Event struct {
	Type     EventType
	Phase    gesture.Phase
	Outcome  gesture.Outcome
	Elapsed  time.Duration
	Snapshot progress.Snapshot
	Message  string
	At       time.Time
}

// Stats counts completed cycles by outcome.
type Stats struct {
	Tapped    int
	Held      int
	Cancelled int
	Dismissed int
}

// Total returns the number of completed cycles.
func (stats Stats) Total() int {
	return stats.Tapped + stats.Held + stats.Cancelled + stats.Dismissed
}

func (stats *Stats) record(outcome gesture.Outcome) {
	switch outcome {
	case gesture.OutcomeTapped:
		stats.Tapped++
	case gesture.OutcomeHeld:
		stats.Held++
	case gesture.OutcomeCancelled:
		stats.Cancelled++
	case gesture.OutcomeNone:
		stats.Dismissed++
	}
}
