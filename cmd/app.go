package main

import (
	"context"
	"errors"

	"realpomo/internal/audio"
	"realpomo/internal/config"
	"realpomo/internal/core/frame"
	"realpomo/internal/core/model"
	"realpomo/internal/core/timekeeper"
	"realpomo/internal/platform"
	"realpomo/internal/storage"
	"realpomo/internal/ui/animation"
	"realpomo/internal/ui/dial"
	"realpomo/internal/ui/preferences"
	"realpomo/internal/ui/tray"
	"realpomo/internal/ui/window"
	"realpomo/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func run(options config.Options) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.Info().Msg("already running, asked the open dial to show itself")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Warn().Err(err).Msg("using default settings")
	}
	dialConfig := options.DialConfig(settings.MaxMinutes)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	player := audio.NewPlayer(options.Sound && settings.EnableSounds)
	defer player.Close()

	var (
		controller  *dial.Controller
		mainWindow  *window.Window
		trayManager *tray.Manager
	)

	keeper := timekeeper.New(timekeeper.Config{
		InitialSeconds: dialConfig.InitialSeconds,
		Dispatch:       fyne.Do,
		OnTick: func(seconds int) {
			if controller != nil {
				controller.Update(seconds)
			}
			if mainWindow != nil {
				mainWindow.SetRemaining(seconds)
			}
		},
		OnDone: func() {
			player.PlayDone()
			if mainWindow != nil {
				mainWindow.FlashDone()
			}
			fyneApp.SendNotification(fyne.NewNotification("Timer complete", "Nice work. Take a breath."))
		},
	})

	dialWidget := dial.NewWidget(settings.Theme())
	controller = dial.NewController(dial.Config{
		MaxSeconds: dialConfig.MaxSeconds,
		Timer:      keeper,
		Surface:    dialWidget,
		Player:     player,
		Frames:     frame.NewClockScheduler(clockwork.NewRealClock(), frame.DefaultInterval, fyne.Do),
	})
	dialWidget.Bind(controller)

	saveSettings := func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Error().Err(err).Msg("save settings")
		}
	}

	mainWindow = window.New(fyneApp, dialWidget, settings, window.Callbacks{
		OnPreset: controller.ApplyPreset,
		OnTaskChange: func(text string) {
			settings.TaskText = text
			saveSettings(settings)
		},
	}, nil)
	flashEngine := animation.New(animation.DefaultConfig(), nil, mainWindow.SetHighlight)
	mainWindow.SetEngine(flashEngine)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		updated.TaskText = settings.TaskText
		settings = updated
		saveSettings(settings)
		player.SetEnabled(options.Sound && settings.EnableSounds)
		mainWindow.ApplySettings(settings)
		controller.SetMaxSeconds(settings.DialConfig(0).MaxSeconds)
		mainWindow.SetRemaining(keeper.RemainingSeconds())
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	guard.Serve(ctx, func() {
		fyne.Do(mainWindow.Show)
	})

	quit := func() {
		controller.Close()
		keeper.Stop()
		flashEngine.Stop()
		fyneApp.Quit()
	}

	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		runningIcon := resources.MustIcon(resources.TrayRunningIcon)
		pausedIcon := resources.MustIcon(resources.TrayPausedIcon)

		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnToggleStart: func() {
				if keeper.IsRunning() {
					keeper.Pause()
				} else {
					keeper.Start()
				}
				controller.Update(keeper.RemainingSeconds())
			},
			OnReset: func() {
				controller.ApplyPreset(0)
			},
			OnPreset: func(preset model.Preset) {
				controller.ApplyPreset(preset.Seconds(controller.MaxSeconds()))
				mainWindow.Show()
			},
			OnPreferences: func() {
				prefsWindow.UpdateSettings(settings)
				prefsWindow.Show()
			},
			OnQuit: quit,
		})
		desktopApp.SetSystemTrayIcon(pausedIcon)

		events := keeper.Subscribe(16)
		go func() {
			for event := range events {
				event := event
				fyne.Do(func() {
					handleEvent(event, trayManager, desktopApp, runningIcon, pausedIcon)
				})
			}
		}()

		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		log.Info().Msg("system tray unsupported on this platform")
		mainWindow.SetCloseIntercept(quit)
	}

	controller.Update(keeper.RemainingSeconds())
	mainWindow.SetRemaining(keeper.RemainingSeconds())
	mainWindow.Show()
	fyneApp.Run()

	controller.Close()
	keeper.Stop()
	return nil
}

func handleEvent(event timekeeper.Event, trayManager *tray.Manager, desktopApp desktop.App, runningIcon, pausedIcon fyne.Resource) {
	switch event.Type {
	case timekeeper.EventTick:
		trayManager.SetRemaining(event.RemainingSeconds)
	case timekeeper.EventStateChange:
		trayManager.SetRemaining(event.RemainingSeconds)
		trayManager.SetRunning(event.Running)
		if event.Running {
			desktopApp.SetSystemTrayIcon(runningIcon)
		} else {
			desktopApp.SetSystemTrayIcon(pausedIcon)
		}
	case timekeeper.EventDone:
		trayManager.SetRunning(false)
		trayManager.SetRemaining(0)
		desktopApp.SetSystemTrayIcon(pausedIcon)
		log.Info().Msg("countdown finished")
	}
}
