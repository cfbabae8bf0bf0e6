package preferences

import (
	"time"

	"holdpress/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	HoldDuration     time.Duration
	TapDuration      time.Duration
	TickInterval     time.Duration
	GrowEnabled      bool
	CounterClockwise bool

	LogLevel    string
	FeedAddress string
}

// DefaultSettings returns default settings for holdpress.
func DefaultSettings() Settings {
	config := model.DefaultGestureConfig()
	return Settings{
		HoldDuration:     config.HoldThreshold,
		TapDuration:      config.TapThreshold,
		TickInterval:     config.TickInterval,
		GrowEnabled:      config.GrowEnabled,
		CounterClockwise: config.CounterClockwise,
		LogLevel:         "info",
	}
}

// GestureConfig converts settings to a GestureConfig.
func (settings Settings) GestureConfig() model.GestureConfig {
	return model.GestureConfig{
		HoldThreshold:    settings.HoldDuration,
		TapThreshold:     settings.TapDuration,
		TickInterval:     settings.TickInterval,
		GrowEnabled:      settings.GrowEnabled,
		CounterClockwise: settings.CounterClockwise,
	}
}
