package preferences

import (
	"realpomo/internal/core/model"
	"realpomo/internal/ui/dial"
)

// CustomThemeName marks settings whose colours were entered by hand.
const CustomThemeName = "custom"

// Settings defines editable user preferences.
type Settings struct {
	ShowDigital  bool
	ShowPresets  bool
	EnableSounds bool

	ThemeName   string
	CaseColor   string
	KnobColor   string
	SectorColor string

	TaskText   string
	MaxMinutes int
}

// DefaultSettings returns default settings for RealPomo.
func DefaultSettings() Settings {
	settings := Settings{
		ShowDigital:  true,
		ShowPresets:  true,
		EnableSounds: true,
		MaxMinutes:   model.DefaultDialSeconds / 60,
	}
	theme, _ := dial.ThemeNamed(dial.DefaultThemeName)
	return settings.WithTheme(theme)
}

// WithTheme stores the theme name and its three colours.
func (settings Settings) WithTheme(theme dial.Theme) Settings {
	settings.ThemeName = theme.Name
	settings.CaseColor, settings.KnobColor, settings.SectorColor = theme.Hex()
	return settings
}

// Theme resolves the stored colours. Unparseable colours fall back to the
// named preset.
func (settings Settings) Theme() dial.Theme {
	theme, err := dial.ParseTheme(settings.ThemeName, settings.CaseColor, settings.KnobColor, settings.SectorColor)
	if err != nil {
		theme, _ = dial.ThemeNamed(settings.ThemeName)
	}
	return theme
}

// DialConfig converts settings to the dial configuration.
func (settings Settings) DialConfig(initialSeconds int) model.DialConfig {
	return model.DialConfigFromMinutes(settings.MaxMinutes, initialSeconds)
}
