package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"realpomo/internal/core/model"
	"realpomo/internal/platform"
	"realpomo/internal/ui/preferences"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// ErrInvalidColor reports a colour value that is not #rrggbb.
var ErrInvalidColor = errors.New("invalid colour")

type yamlColor struct {
	Theme  string `yaml:"theme,omitempty"`
	Case   string `yaml:"case"`
	Knob   string `yaml:"knob"`
	Sector string `yaml:"sector"`
}

type yamlSettings struct {
	ShowDigital  *bool     `yaml:"show_digital"`
	ShowPresets  *bool     `yaml:"show_presets"`
	EnableSounds *bool     `yaml:"enable_sounds"`
	Color        yamlColor `yaml:"color"`
	TaskText     string    `yaml:"task_text"`
	MaxMinutes   int       `yaml:"max_minutes"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from an explicit path.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
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

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes preferences to an explicit path.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		ShowDigital:  &settings.ShowDigital,
		ShowPresets:  &settings.ShowPresets,
		EnableSounds: &settings.EnableSounds,
		Color: yamlColor{
			Theme:  settings.ThemeName,
			Case:   settings.CaseColor,
			Knob:   settings.KnobColor,
			Sector: settings.SectorColor,
		},
		TaskText:   settings.TaskText,
		MaxMinutes: settings.MaxMinutes,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.ShowDigital != nil {
		settings.ShowDigital = *fileData.ShowDigital
	}
	if fileData.ShowPresets != nil {
		settings.ShowPresets = *fileData.ShowPresets
	}
	if fileData.EnableSounds != nil {
		settings.EnableSounds = *fileData.EnableSounds
	}

	if fileData.MaxMinutes > 0 && fileData.MaxMinutes*60 <= model.MaxDialSeconds {
		settings.MaxMinutes = fileData.MaxMinutes
	}
	settings.TaskText = fileData.TaskText

	applyYamlColor(settings, fileData.Color)
}

// applyYamlColor keeps the default theme unless all three colours parse.
func applyYamlColor(settings *preferences.Settings, color yamlColor) {
	if color.Case == "" && color.Knob == "" && color.Sector == "" {
		return
	}
	for _, value := range []string{color.Case, color.Knob, color.Sector} {
		if err := validateColor(value); err != nil {
			log.Warn().Err(err).Msg("ignoring stored dial colour")
			return
		}
	}

	settings.ThemeName = strings.TrimSpace(color.Theme)
	if settings.ThemeName == "" {
		settings.ThemeName = preferences.CustomThemeName
	}
	settings.CaseColor = strings.ToLower(color.Case)
	settings.KnobColor = strings.ToLower(color.Knob)
	settings.SectorColor = strings.ToLower(color.Sector)
}

func validateColor(value string) error {
	if _, err := colorful.Hex(value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}
	return nil
}
