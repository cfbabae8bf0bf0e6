package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"holdpress/internal/logging"
	"holdpress/internal/platform"
	"holdpress/internal/storage"
	"holdpress/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	appName = "HoldPress"
	appID   = "com.holdpress.app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "holdpress:", err)
		os.Exit(1)
	}
}

func run() error {
	logLevel := flag.String("log-level", "", "log level override: error, warn, info or debug")
	feedAddress := flag.String("feed", "", "serve gesture events over websocket on this address, e.g. 127.0.0.1:7420")
	configPath := flag.String("config", "", "settings file (default: user config dir)")
	flag.Parse()

	bootLogger := logging.New(logging.LevelInfo, os.Stderr)

	settingsPath := *configPath
	if settingsPath == "" {
		path, err := storage.SettingsPath(platform.NewService(), appName)
		if err != nil {
			return err
		}
		settingsPath = path
	}

	lock, err := platform.AcquireLock(appName, settingsPath)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			bootLogger.Info("activated the running instance", "settings", settingsPath)
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = lock.Release()
	}()

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		bootLogger.Warn("using default settings", "path", settingsPath, "error", err)
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}
	if *feedAddress != "" {
		settings.FeedAddress = *feedAddress
	}

	level, err := logging.Parse(settings.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(level, os.Stderr)
	logger.Debug("settings loaded", "path", settingsPath, "hold", settings.HoldDuration, "tap", settings.TapDuration)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	session, err := newDemo(fyneApp, settings, settingsPath, logger)
	if err != nil {
		return err
	}
	defer session.shutdown()
	go lock.Serve(func() {
		fyne.Do(session.panel.Show)
	})

	session.panel.Show()
	fyneApp.Run()
	return nil
}
