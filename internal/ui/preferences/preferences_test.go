package preferences

import (
	"testing"

	"realpomo/internal/ui/dial"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.True(t, settings.ShowDigital)
	assert.True(t, settings.ShowPresets)
	assert.True(t, settings.EnableSounds)
	assert.Equal(t, 60, settings.MaxMinutes)
	assert.Equal(t, "sage", settings.ThemeName)
	assert.Equal(t, "#7ab58e", settings.CaseColor)
	assert.Equal(t, 3600, settings.DialConfig(0).MaxSeconds)
}

func TestThemeFallsBackToPresetOnBadColour(t *testing.T) {
	settings := DefaultSettings()
	settings.ThemeName = "blue"
	settings.CaseColor = "nope"

	theme := settings.Theme()
	want, _ := dial.ThemeNamed("blue")
	assert.Equal(t, want.Name, theme.Name)
	caseHex, _, _ := theme.Hex()
	assert.Equal(t, "#9db4c0", caseHex)
}

func TestDialConfigClampsInitialSeconds(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxMinutes = 25

	config := settings.DialConfig(5000)
	assert.Equal(t, 1500, config.MaxSeconds)
	assert.Equal(t, 1500, config.InitialSeconds)
}

func TestWindowSavesEditedValues(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.digital.SetChecked(false)
	prefs.sounds.SetChecked(false)
	prefs.theme.SetSelected("gray")
	prefs.maxMinutes.SetText("90")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.False(t, saved[0].ShowDigital)
	assert.True(t, saved[0].ShowPresets)
	assert.False(t, saved[0].EnableSounds)
	assert.Equal(t, "gray", saved[0].ThemeName)
	assert.Equal(t, "#6b6b6b", saved[0].SectorColor)
	assert.Equal(t, 90, saved[0].MaxMinutes)
}

func TestWindowDerivesCustomColour(t *testing.T) {
	app := test.NewTempApp(t)

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})

	prefs.theme.SetSelected(CustomThemeName)
	prefs.caseColor.SetText("not a colour")
	prefs.handleSave()
	assert.Empty(t, saved)
	assert.NotEmpty(t, prefs.status.Text)

	prefs.caseColor.SetText("#aa3355")
	prefs.maxMinutes.SetText("-4")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, CustomThemeName, saved[0].ThemeName)
	assert.Equal(t, "#aa3355", saved[0].CaseColor)
	assert.Equal(t, 60, saved[0].MaxMinutes)
	assert.Equal(t, CustomThemeName, saved[0].Theme().Name)
}

func TestUpdateSettingsSelectsCustomForUnknownTheme(t *testing.T) {
	app := test.NewTempApp(t)

	settings := DefaultSettings()
	settings.ThemeName = CustomThemeName
	prefs := New(app, settings, nil)

	assert.Equal(t, CustomThemeName, prefs.theme.Selected)
	assert.False(t, prefs.caseColor.Disabled())

	prefs.UpdateSettings(DefaultSettings())
	assert.Equal(t, "sage", prefs.theme.Selected)
	assert.True(t, prefs.caseColor.Disabled())
}
