package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"realpomo/internal/core/model"
	"realpomo/internal/ui/dial"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	onCancel   func()
	digital    *widget.Check
	presets    *widget.Check
	sounds     *widget.Check
	theme      *widget.Select
	caseColor  *widget.Entry
	maxMinutes *widget.Entry
	status     *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("RealPomo Settings")

	digital := widget.NewCheck("Show digital time", nil)
	presets := widget.NewCheck("Show quick presets", nil)
	sounds := widget.NewCheck("Enable sounds", nil)

	caseColor := widget.NewEntry()
	caseColor.SetPlaceHolder("#7ab58e")

	themeNames := make([]string, 0, len(dial.Themes())+1)
	for _, theme := range dial.Themes() {
		themeNames = append(themeNames, theme.Name)
	}
	themeNames = append(themeNames, CustomThemeName)
	theme := widget.NewSelect(themeNames, func(name string) {
		if name == CustomThemeName {
			caseColor.Enable()
			return
		}
		caseColor.Disable()
	})

	maxMinutes := widget.NewEntry()
	status := widget.NewLabel("")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		digital,
		presets,
		sounds,
		widget.NewLabelWithStyle("Dial", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Colour"), theme),
		container.NewHBox(widget.NewLabel("Custom case colour"), caseColor),
		container.NewHBox(widget.NewLabel("Full dial"), maxMinutes, widget.NewLabel("min")),
		status,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 360))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		digital:    digital,
		presets:    presets,
		sounds:     sounds,
		theme:      theme,
		caseColor:  caseColor,
		maxMinutes: maxMinutes,
		status:     status,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}
	window.SetCloseIntercept(cancelButton.OnTapped)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// OnCancel registers a callback for Cancel and window close.
func (prefs *Window) OnCancel(callback func()) {
	prefs.onCancel = callback
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.digital.SetChecked(settings.ShowDigital)
	prefs.presets.SetChecked(settings.ShowPresets)
	prefs.sounds.SetChecked(settings.EnableSounds)
	prefs.caseColor.SetText(settings.CaseColor)
	prefs.maxMinutes.SetText(fmt.Sprintf("%d", settings.MaxMinutes))
	prefs.status.SetText("")

	if _, ok := dial.ThemeNamed(settings.ThemeName); ok {
		prefs.theme.SetSelected(strings.ToLower(settings.ThemeName))
	} else {
		prefs.theme.SetSelected(CustomThemeName)
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if prefs.theme.Selected == CustomThemeName {
		theme, err := dial.DeriveTheme(strings.TrimSpace(prefs.caseColor.Text))
		if err != nil {
			log.Debug().Err(err).Msg("rejected custom colour")
			prefs.status.SetText("Colour must look like #7ab58e")
			return
		}
		settings = settings.WithTheme(theme)
	} else if theme, ok := dial.ThemeNamed(prefs.theme.Selected); ok {
		settings = settings.WithTheme(theme)
	}

	if minutes, ok := parsePositiveInt(prefs.maxMinutes.Text); ok && minutes*60 <= model.MaxDialSeconds {
		settings.MaxMinutes = minutes
	}

	settings.ShowDigital = prefs.digital.Checked
	settings.ShowPresets = prefs.presets.Checked
	settings.EnableSounds = prefs.sounds.Checked

	prefs.settings = settings
	prefs.status.SetText("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
