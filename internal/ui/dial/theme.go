package dial

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultThemeName is the colour preset used on first launch.
const DefaultThemeName = "sage"

// Theme colours the dial case, the centre knob and the time sector.
type Theme struct {
	Name   string
	Case   colorful.Color
	Knob   colorful.Color
	Sector colorful.Color
}

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

var presets = []struct {
	name, body, knob, sector string
}{
	{"sage", "#7AB58E", "#7BB68F", "#1D5D3B"},
	{"beige", "#C9B99B", "#D4C5A9", "#8B6F47"},
	{"blue", "#9DB4C0", "#A8C0CC", "#5A7A8A"},
	{"gray", "#B0B0B0", "#B8B8B8", "#6B6B6B"},
}

// Themes returns the built-in colour presets in menu order.
func Themes() []Theme {
	themes := make([]Theme, 0, len(presets))
	for _, preset := range presets {
		theme, err := ParseTheme(preset.name, preset.body, preset.knob, preset.sector)
		if err != nil {
			panic(err)
		}
		themes = append(themes, theme)
	}
	return themes
}

// ThemeNamed looks up a preset, falling back to the default.
func ThemeNamed(name string) (Theme, bool) {
	themes := Themes()
	for _, theme := range themes {
		if strings.EqualFold(theme.Name, name) {
			return theme, true
		}
	}
	for _, theme := range themes {
		if theme.Name == DefaultThemeName {
			return theme, false
		}
	}
	return themes[0], false
}

// ParseTheme builds a theme from hex colours.
func ParseTheme(name, caseHex, knobHex, sectorHex string) (Theme, error) {
	body, err := colorful.Hex(caseHex)
	if err != nil {
		return Theme{}, fmt.Errorf("parse case colour %q: %w", caseHex, err)
	}
	knob, err := colorful.Hex(knobHex)
	if err != nil {
		return Theme{}, fmt.Errorf("parse knob colour %q: %w", knobHex, err)
	}
	sector, err := colorful.Hex(sectorHex)
	if err != nil {
		return Theme{}, fmt.Errorf("parse sector colour %q: %w", sectorHex, err)
	}
	return Theme{Name: name, Case: body, Knob: knob, Sector: sector}, nil
}

// DeriveTheme builds a custom theme from a single case colour. The knob is
// a touch lighter and the sector a deep shade of the same hue.
func DeriveTheme(caseHex string) (Theme, error) {
	body, err := colorful.Hex(caseHex)
	if err != nil {
		return Theme{}, fmt.Errorf("parse case colour %q: %w", caseHex, err)
	}
	return Theme{
		Name:   "custom",
		Case:   body,
		Knob:   body.BlendLab(white, 0.08).Clamped(),
		Sector: body.BlendLab(black, 0.55).Clamped(),
	}, nil
}

// Hex returns the case, knob and sector colours as #rrggbb strings.
func (theme Theme) Hex() (string, string, string) {
	return theme.Case.Hex(), theme.Knob.Hex(), theme.Sector.Hex()
}

func (theme Theme) face() color.Color {
	return theme.Case.BlendLab(white, 0.82).Clamped()
}

func (theme Theme) ink() color.Color {
	return theme.Sector.BlendLab(black, 0.35).Clamped()
}

func (theme Theme) knobColor(hover bool) color.Color {
	if hover {
		return theme.Knob.BlendLab(white, 0.2).Clamped()
	}
	return theme.Knob
}
