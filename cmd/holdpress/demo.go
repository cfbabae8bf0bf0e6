package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"holdpress/internal/core/holdloop"
	"holdpress/internal/feed"
	"holdpress/internal/logging"
	"holdpress/internal/storage"
	"holdpress/internal/ui/holdbutton"
	"holdpress/internal/ui/panel"
	"holdpress/internal/ui/preferences"
	"holdpress/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// demo owns the running controller and every surface attached to it.
type demo struct {
	app          fyne.App
	logger       *slog.Logger
	settings     preferences.Settings
	settingsPath string

	ctx    context.Context
	cancel context.CancelFunc

	controller  *holdloop.Controller
	button      *holdbutton.HoldButton
	panel       *panel.Window
	prefs       *preferences.Window
	tray        *tray.Manager
	feed        *feed.Server
	feedAddress string
	feedCancel  context.CancelFunc
}

func newDemo(fyneApp fyne.App, settings preferences.Settings, settingsPath string, logger *slog.Logger) (*demo, error) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &demo{
		app:          fyneApp,
		logger:       logger,
		settings:     settings,
		settingsPath: settingsPath,
		ctx:          ctx,
		cancel:       cancel,
	}

	controller, err := session.newController()
	if err != nil {
		cancel()
		return nil, err
	}
	session.controller = controller

	session.button = holdbutton.New("HOLD", controller)
	session.panel = panel.New(fyneApp, appName, session.button)
	session.prefs = preferences.New(fyneApp, settings, session.applySettings)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		session.tray = tray.New(desktopApp, appName, tray.Callbacks{
			OnShow:        session.panel.Show,
			OnPreferences: session.prefs.Show,
			OnResetStats:  session.resetStats,
			OnQuit:        session.quit,
		})
		if fyneApp.Icon() != nil {
			desktopApp.SetSystemTrayIcon(fyneApp.Icon())
		}
		session.panel.SetOnClose(session.panel.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		session.panel.SetOnClose(session.quit)
	}

	session.watch(controller)
	session.startFeed(settings.FeedAddress)
	return session, nil
}

func (session *demo) newController() (*holdloop.Controller, error) {
	logger := session.logger
	return holdloop.New(session.settings.GestureConfig(), holdloop.Handlers{
		OnHeld: func() {
			logger.Info("hold confirmed")
			fyne.Do(func() {
				session.app.SendNotification(fyne.NewNotification(appName, "Hold confirmed"))
			})
		},
		OnTapped: func() {
			logger.Info("tapped")
		},
	}, holdloop.Options{Logger: logger})
}

// watch mirrors controller events into the panel and tray until the
// controller is closed.
func (session *demo) watch(controller *holdloop.Controller) {
	events := controller.Subscribe(32)
	logger := session.logger
	go func() {
		for event := range events {
			event := event
			switch event.Type {
			case holdloop.EventGrowthStarted:
				fyne.Do(func() {
					session.panel.SetStatus("Keep holding")
					session.setStatus("holding")
				})
			case holdloop.EventOutcome:
				stats := controller.Stats()
				fyne.Do(func() {
					session.panel.ShowOutcome(event.Outcome, event.Elapsed)
					session.panel.SetStats(stats)
					session.setStatus(event.Outcome.String())
					if session.tray != nil {
						session.tray.SetStats(stats)
					}
				})
			case holdloop.EventPressIgnored:
				logger.Debug("press ignored", "reason", event.Message)
			}
		}
	}()
}

func (session *demo) setStatus(status string) {
	if session.tray != nil {
		session.tray.SetStatus(status)
	}
}

// applySettings validates, persists and applies edited preferences. The
// running controller is replaced because its config is immutable.
func (session *demo) applySettings(updated preferences.Settings) error {
	if err := updated.GestureConfig().Validate(); err != nil {
		return err
	}
	level, err := logging.Parse(updated.LogLevel)
	if err != nil {
		return err
	}
	if err := storage.SaveSettings(session.settingsPath, updated); err != nil {
		return err
	}

	session.settings = updated
	session.logger = logging.New(level, os.Stderr)

	controller, err := session.newController()
	if err != nil {
		return fmt.Errorf("rebuild controller: %w", err)
	}
	previous := session.controller
	session.controller = controller
	session.button.SetGesture(controller)
	session.watch(controller)
	previous.Close()

	session.panel.SetStats(holdloop.Stats{})
	session.panel.SetStatus("Settings applied")
	if session.tray != nil {
		session.tray.SetStats(holdloop.Stats{})
	}

	if updated.FeedAddress != session.feedAddress {
		session.stopFeed()
		session.startFeed(updated.FeedAddress)
	} else if session.feed != nil {
		go session.feed.Pump(session.ctx, controller.Subscribe(64))
	}

	session.logger.Info("settings applied", "hold", updated.HoldDuration, "tap", updated.TapDuration, "grow", updated.GrowEnabled)
	return nil
}

func (session *demo) startFeed(address string) {
	session.feedAddress = address
	if address == "" {
		return
	}

	ctx, cancel := context.WithCancel(session.ctx)
	server := feed.NewServer(session.logger, feed.HubConfig{})
	session.feed = server
	session.feedCancel = cancel

	go func() {
		if err := server.ListenAndServe(ctx, address); err != nil {
			session.logger.Error("feed stopped", "address", address, "error", err)
		}
	}()
	go server.Pump(ctx, session.controller.Subscribe(64))
}

func (session *demo) stopFeed() {
	if session.feedCancel != nil {
		session.feedCancel()
	}
	session.feed = nil
	session.feedCancel = nil
}

func (session *demo) resetStats() {
	session.controller.ResetStats()
	session.panel.SetStats(holdloop.Stats{})
	session.panel.SetStatus("Counters reset")
	if session.tray != nil {
		session.tray.SetStats(holdloop.Stats{})
	}
}

func (session *demo) quit() {
	session.shutdown()
	session.app.Quit()
}

func (session *demo) shutdown() {
	session.stopFeed()
	session.cancel()
	if session.controller != nil {
		session.controller.Close()
	}
}
