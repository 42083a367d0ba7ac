package main

import (
	"os"
	"time"

	"realpomo/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName = "RealPomo"
	appID   = "com.realpomo.app"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cmd, err := newRootCommand()
	if err != nil {
		log.Fatal().Err(err).Msg("build command")
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() (*cobra.Command, error) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:          "realpomo",
		Short:        "A clockwork pomodoro dial",
		Long:         "RealPomo is a kitchen-timer style countdown: drag the dial to set the time, release to start.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			options, err := config.Load(v)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(options.LogLevel)
			return run(options)
		},
	}
	if err := config.BindFlags(cmd, v); err != nil {
		return nil, err
	}
	return cmd, nil
}
