package gesture

import (
	"testing"
	"time"

	"holdpress/internal/core/model"

	"github.com/stretchr/testify/assert"
)

func testConfig() model.GestureConfig {
	return model.GestureConfig{
		HoldThreshold: 100 * time.Millisecond,
		TapThreshold:  20 * time.Millisecond,
		TickInterval:  10 * time.Millisecond,
		GrowEnabled:   true,
	}
}

func TestClassifyBoundaries(t *testing.T) {
	config := testConfig()
	cases := []struct {
		elapsed time.Duration
		want    Phase
	}{
		{0, PhaseWithinTapWindow},
		{19 * time.Millisecond, PhaseWithinTapWindow},
		{20 * time.Millisecond, PhaseGrowingPress},
		{99 * time.Millisecond, PhaseGrowingPress},
		{100 * time.Millisecond, PhaseHeldConfirmed},
		{250 * time.Millisecond, PhaseHeldConfirmed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.elapsed, config), "elapsed=%s", tc.elapsed)
	}
}

func TestEdgeTriggerFiresOncePerCycle(t *testing.T) {
	trigger := NewEdgeTrigger(20 * time.Millisecond)

	assert.False(t, trigger.Observe(10*time.Millisecond))
	assert.True(t, trigger.Observe(20*time.Millisecond))
	assert.True(t, trigger.Fired())
	assert.False(t, trigger.Observe(30*time.Millisecond))
	assert.False(t, trigger.Observe(40*time.Millisecond))

	trigger.Reset()
	assert.False(t, trigger.Fired())
	assert.False(t, trigger.Observe(10*time.Millisecond))
	assert.True(t, trigger.Observe(30*time.Millisecond))
}

func TestEdgeTriggerIgnoresRepeatOfFiringValue(t *testing.T) {
	trigger := NewEdgeTrigger(20 * time.Millisecond)
	assert.True(t, trigger.Observe(20*time.Millisecond))
	assert.False(t, trigger.Observe(20*time.Millisecond))
}

func TestEdgeTriggerFiresAtThresholdAgainAfterReset(t *testing.T) {
	trigger := NewEdgeTrigger(20 * time.Millisecond)
	assert.True(t, trigger.Observe(20*time.Millisecond))

	trigger.Reset()
	assert.True(t, trigger.Observe(20*time.Millisecond))
	assert.False(t, trigger.Observe(30*time.Millisecond))
}

func TestReleaseOutcomePartition(t *testing.T) {
	config := testConfig()

	assert.Equal(t, OutcomeTapped, ReleaseOutcome(10*time.Millisecond, config, true))
	assert.Equal(t, OutcomeNone, ReleaseOutcome(10*time.Millisecond, config, false))
	assert.Equal(t, OutcomeCancelled, ReleaseOutcome(20*time.Millisecond, config, true))
	assert.Equal(t, OutcomeCancelled, ReleaseOutcome(50*time.Millisecond, config, false))
	assert.Equal(t, OutcomeHeld, ReleaseOutcome(100*time.Millisecond, config, true))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "none", OutcomeNone.String())
	assert.Equal(t, "tapped", OutcomeTapped.String())
	assert.Equal(t, "held", OutcomeHeld.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
