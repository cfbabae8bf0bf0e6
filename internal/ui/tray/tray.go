package tray

import (
	"fmt"

	"holdpress/internal/core/holdloop"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray drives.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnResetStats  func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         MenuHost
	title       string
	statusItem  *fyne.MenuItem
	statsItem   *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuHost, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		title:       title,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.statsItem = fyne.NewMenuItem("", nil)
	manager.statsItem.Disabled = true

	manager.SetStats(holdloop.Stats{})
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetStats updates the counters label.
func (manager *Manager) SetStats(stats holdloop.Stats) {
	manager.statsItem.Label = fmt.Sprintf("Confirmed %d of %d presses", stats.Held, stats.Total())
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

// Menu builds the tray menu for the current state.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		manager.statsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Reset counters", func() {
			if manager.callbacks.OnResetStats != nil {
				manager.callbacks.OnResetStats()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
