package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a gesture configuration that cannot drive a hold loop.
var ErrInvalidConfig = errors.New("invalid gesture config")

const (
	DefaultHoldThreshold = 750 * time.Millisecond
	DefaultTapThreshold  = 200 * time.Millisecond
	DefaultTickInterval  = 10 * time.Millisecond
)

// GestureConfig contains the immutable timing settings of one hold control.
type GestureConfig struct {
	HoldThreshold time.Duration
	TapThreshold  time.Duration
	TickInterval  time.Duration

	GrowEnabled      bool
	CounterClockwise bool
}

// DefaultGestureConfig returns the stock hold control timings.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		HoldThreshold: DefaultHoldThreshold,
		TapThreshold:  DefaultTapThreshold,
		TickInterval:  DefaultTickInterval,
		GrowEnabled:   true,
	}
}

// Validate reports whether the thresholds and tick interval are usable.
func (config GestureConfig) Validate() error {
	switch {
	case config.HoldThreshold <= 0:
		return fmt.Errorf("%w: hold threshold must be positive, got %s", ErrInvalidConfig, config.HoldThreshold)
	case config.TapThreshold <= 0:
		return fmt.Errorf("%w: tap threshold must be positive, got %s", ErrInvalidConfig, config.TapThreshold)
	case config.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidConfig, config.TickInterval)
	case config.TapThreshold >= config.HoldThreshold:
		return fmt.Errorf("%w: tap threshold %s must be below hold threshold %s",
			ErrInvalidConfig, config.TapThreshold, config.HoldThreshold)
	}
	return nil
}

// GrowthSpan is the forward duration of the scale growth animation.
func (config GestureConfig) GrowthSpan() time.Duration {
	return 2 * (config.HoldThreshold - config.TapThreshold)
}

// ColorSpan is the forward duration of the color shift animation.
func (config GestureConfig) ColorSpan() time.Duration {
	return 2 * config.HoldThreshold
}
