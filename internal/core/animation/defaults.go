package animation

import "time"

const (
	// FadeSpan is the overlay fade timeline, independent of the hold threshold.
	FadeSpan = 250 * time.Millisecond
	// ReleaseSpan is how long the growth takes to fall back after a release.
	ReleaseSpan = 350 * time.Millisecond
	// GrowthReverseSpan is the growth timeline's own reverse duration.
	GrowthReverseSpan = 200 * time.Millisecond
)

// FadeSequence starts at 0, ramps to 1 over the first third of the span and
// holds 1 for the rest.
func FadeSequence() Sequence {
	return Sequence{
		{Weight: 0, Begin: 0, End: 0},
		{Weight: 1, Begin: 0, End: 1},
		{Weight: 2, Begin: 1, End: 1},
	}
}

