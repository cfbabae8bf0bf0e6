package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holdpress/internal/logging"
	"holdpress/internal/platform"
	"holdpress/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	DurationMS       int    `yaml:"duration_ms"`
	TapDurationMS    int    `yaml:"tap_duration_ms"`
	IntervalMS       int    `yaml:"interval_ms"`
	GrowEnabled      *bool  `yaml:"grow_enabled,omitempty"`
	CounterClockwise bool   `yaml:"counter_clockwise"`
	LogLevel         string `yaml:"log_level,omitempty"`
	FeedAddress      string `yaml:"feed_address,omitempty"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(service platform.Service, appName string) (string, error) {
	dir, err := service.AppConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(dir, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	grow := settings.GrowEnabled
	fileData := yamlSettings{
		DurationMS:       int(settings.HoldDuration / time.Millisecond),
		TapDurationMS:    int(settings.TapDuration / time.Millisecond),
		IntervalMS:       int(settings.TickInterval / time.Millisecond),
		GrowEnabled:      &grow,
		CounterClockwise: settings.CounterClockwise,
		LogLevel:         settings.LogLevel,
		FeedAddress:      settings.FeedAddress,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.DurationMS > 0 {
		settings.HoldDuration = time.Duration(fileData.DurationMS) * time.Millisecond
	}
	if fileData.TapDurationMS > 0 {
		settings.TapDuration = time.Duration(fileData.TapDurationMS) * time.Millisecond
	}
	if fileData.IntervalMS > 0 {
		settings.TickInterval = time.Duration(fileData.IntervalMS) * time.Millisecond
	}
	if fileData.GrowEnabled != nil {
		settings.GrowEnabled = *fileData.GrowEnabled
	}
	if _, err := logging.Parse(fileData.LogLevel); err == nil && fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}

	settings.CounterClockwise = fileData.CounterClockwise
	settings.FeedAddress = fileData.FeedAddress

	// tap must stay below hold; an inconsistent pair falls back as a whole
	if err := settings.GestureConfig().Validate(); err != nil {
		defaults := preferences.DefaultSettings()
		settings.HoldDuration = defaults.HoldDuration
		settings.TapDuration = defaults.TapDuration
	}
}
