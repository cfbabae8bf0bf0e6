package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings) error
	holdDur     *widget.Entry
	tapDur      *widget.Entry
	interval    *widget.Entry
	grow        *widget.Check
	ccw         *widget.Check
	logLevel    *widget.Select
	feedAddress *widget.Entry
}

// New creates a preferences window. onSave may reject the settings, in which
// case the window stays open and shows the error.
func New(app fyne.App, settings Settings, onSave func(Settings) error) *Window {
	window := app.NewWindow("HoldPress Settings")

	holdDur := widget.NewEntry()
	tapDur := widget.NewEntry()
	interval := widget.NewEntry()

	grow := widget.NewCheck("Grow while pressed", nil)
	ccw := widget.NewCheck("Counter-clockwise progress", nil)
	logLevel := widget.NewSelect([]string{"error", "warn", "info", "debug"}, nil)
	feedAddress := widget.NewEntry()
	feedAddress.SetPlaceHolder("127.0.0.1:8765 (empty disables)")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Gesture", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Hold to confirm"), holdDur, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Tap window"), tapDur, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Tick interval"), interval, widget.NewLabel("ms")),
		grow,
		ccw,
		widget.NewLabelWithStyle("Diagnostics", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
		widget.NewLabel("Event feed address"),
		feedAddress,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 420))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		holdDur:     holdDur,
		tapDur:      tapDur,
		interval:    interval,
		grow:        grow,
		ccw:         ccw,
		logLevel:    logLevel,
		feedAddress: feedAddress,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.holdDur.SetText(formatMillis(settings.HoldDuration))
	prefs.tapDur.SetText(formatMillis(settings.TapDuration))
	prefs.interval.SetText(formatMillis(settings.TickInterval))
	prefs.grow.SetChecked(settings.GrowEnabled)
	prefs.ccw.SetChecked(settings.CounterClockwise)
	prefs.logLevel.SetSelected(settings.LogLevel)
	prefs.feedAddress.SetText(settings.FeedAddress)
}

func (prefs *Window) handleSave() {
	settings := prefs.collect()
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if millis, ok := parsePositiveInt(prefs.holdDur.Text); ok {
		settings.HoldDuration = time.Duration(millis) * time.Millisecond
	}
	if millis, ok := parsePositiveInt(prefs.tapDur.Text); ok {
		settings.TapDuration = time.Duration(millis) * time.Millisecond
	}
	if millis, ok := parsePositiveInt(prefs.interval.Text); ok {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}

	settings.GrowEnabled = prefs.grow.Checked
	settings.CounterClockwise = prefs.ccw.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}
	settings.FeedAddress = prefs.feedAddress.Text
	return settings
}

func formatMillis(value time.Duration) string {
	return fmt.Sprintf("%d", value.Milliseconds())
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
