// Package config resolves launch options from command-line flags and
// REALPOMO_* environment variables.
package config

import (
	"fmt"
	"strings"

	"realpomo/internal/core/model"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REALPOMO"

const (
	keyMaxMinutes     = "max-minutes"
	keyInitialSeconds = "initial-seconds"
	keySound          = "sound"
	keyLogLevel       = "log-level"
)

// Options are the resolved launch options. MaxMinutes of zero means the
// persisted preference wins.
type Options struct {
	MaxMinutes     int
	InitialSeconds int
	Sound          bool
	LogLevel       zerolog.Level
}

// BindFlags registers launch flags on cmd and binds them to v with
// environment overrides.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	flags.Int(keyMaxMinutes, 0, "minutes on a full dial (1-1440, default from preferences)")
	flags.Int(keyInitialSeconds, 0, "seconds preset on the dial at launch")
	flags.Bool(keySound, true, "play tick and chime sounds")
	flags.String(keyLogLevel, zerolog.InfoLevel.String(), "log level (trace, debug, info, warn, error)")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// Load reads bound values from v.
func Load(v *viper.Viper) (Options, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))))
	if err != nil {
		return Options{}, fmt.Errorf("parse %s: %w", keyLogLevel, err)
	}

	options := Options{
		MaxMinutes:     v.GetInt(keyMaxMinutes),
		InitialSeconds: v.GetInt(keyInitialSeconds),
		Sound:          v.GetBool(keySound),
		LogLevel:       level,
	}
	if options.MaxMinutes < 0 {
		return Options{}, fmt.Errorf("%s must not be negative, got %d", keyMaxMinutes, options.MaxMinutes)
	}
	if options.MaxMinutes*60 > model.MaxDialSeconds {
		options.MaxMinutes = model.MaxDialSeconds / 60
	}
	if options.InitialSeconds < 0 {
		options.InitialSeconds = 0
	}
	return options, nil
}

// DialConfig combines the options with the persisted full-dial length.
func (options Options) DialConfig(savedMaxMinutes int) model.DialConfig {
	maxMinutes := savedMaxMinutes
	if options.MaxMinutes > 0 {
		maxMinutes = options.MaxMinutes
	}
	return model.DialConfigFromMinutes(maxMinutes, options.InitialSeconds)
}
