package progress

import (
	"math"
	"testing"
	"time"

	"holdpress/internal/core/model"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return epoch.Add(offset)
}

func testConfig() model.GestureConfig {
	return model.GestureConfig{
		HoldThreshold: 100 * time.Millisecond,
		TapThreshold:  20 * time.Millisecond,
		TickInterval:  10 * time.Millisecond,
		GrowEnabled:   true,
	}
}

func TestValueIsNotClamped(t *testing.T) {
	config := testConfig()
	assert.InDelta(t, 0.0, Value(0, config), 1e-9)
	assert.InDelta(t, 0.5, Value(50*time.Millisecond, config), 1e-9)
	assert.InDelta(t, 1.1, Value(110*time.Millisecond, config), 1e-9)
}

func TestMirror(t *testing.T) {
	assert.InDelta(t, 0.0, Mirror(0), 1e-9)
	assert.InDelta(t, 1.5*math.Pi, Mirror(0.5*math.Pi), 1e-9)
}

func TestBeginStartsFadeAndColor(t *testing.T) {
	animator := NewAnimator(testConfig())
	animator.Begin(at(0))

	start := animator.Snapshot(at(0), 0)
	assert.InDelta(t, 0.0, start.Fade, 1e-9)
	assert.InDelta(t, 0.0, start.ColorMix, 1e-9)
	assert.InDelta(t, 0.0, start.Scale, 1e-9)

	later := animator.Snapshot(at(100*time.Millisecond), 100*time.Millisecond)
	assert.InDelta(t, 1.0, later.Fade, 1e-9)
	assert.InDelta(t, 0.6, animator.Snapshot(at(50*time.Millisecond), 0).Fade, 1e-9)
	assert.InDelta(t, 0.5, later.ColorMix, 1e-9)
	assert.InDelta(t, 1.0, later.Value, 1e-9)

	assert.InDelta(t, 1.0, animator.Snapshot(at(time.Second), 0).Fade, 1e-9)
}

func TestGrowRunsOverGrowthSpan(t *testing.T) {
	animator := NewAnimator(testConfig())
	animator.Begin(at(0))

	assert.True(t, animator.Grow(at(20*time.Millisecond)))
	assert.True(t, animator.Growing(at(50*time.Millisecond)))
	assert.False(t, animator.Grow(at(50*time.Millisecond)), "growth already in flight")

	// Growth span is 2 * (100 - 20) = 160ms.
	assert.InDelta(t, 0.5, animator.Snapshot(at(100*time.Millisecond), 0).Scale, 1e-9)
	assert.InDelta(t, 1.0, animator.Snapshot(at(180*time.Millisecond), 0).Scale, 1e-9)
}

func TestReleaseResetsFadeAndReversesGrowth(t *testing.T) {
	animator := NewAnimator(testConfig())
	animator.Begin(at(0))
	animator.Grow(at(20 * time.Millisecond))

	animator.Release(at(100 * time.Millisecond))
	snapshot := animator.Snapshot(at(100*time.Millisecond), 0)
	assert.InDelta(t, 0.0, snapshot.Fade, 1e-9)
	assert.InDelta(t, 0.5, snapshot.Scale, 1e-9)
	assert.True(t, animator.Settling(at(200*time.Millisecond)))

	assert.InDelta(t, 0.25, animator.Snapshot(at(275*time.Millisecond), 0).Scale, 1e-9)
	assert.InDelta(t, 0.0, animator.Snapshot(at(450*time.Millisecond), 0).Scale, 1e-9)
	assert.False(t, animator.Settling(at(450*time.Millisecond)))
}

func TestGrowthDisabledKeepsFullScale(t *testing.T) {
	config := testConfig()
	config.GrowEnabled = false
	animator := NewAnimator(config)
	animator.Begin(at(0))

	assert.False(t, animator.Grow(at(20*time.Millisecond)))
	assert.InDelta(t, 1.0, animator.Snapshot(at(50*time.Millisecond), 0).Scale, 1e-9)
	animator.Release(at(60 * time.Millisecond))
	assert.InDelta(t, 1.0, animator.Snapshot(at(70*time.Millisecond), 0).Scale, 1e-9)
}
