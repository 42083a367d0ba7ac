package tray

import (
	"fmt"

	"realpomo/internal/core/model"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleStart func()
	OnReset       func()
	OnPreset      func(model.Preset)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	presets    *fyne.MenuItem
	callbacks  Callbacks
	running    bool
	remaining  int
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggleStart != nil {
			manager.callbacks.OnToggleStart()
		}
	})

	presetItems := make([]*fyne.MenuItem, 0, len(model.Presets))
	for _, preset := range model.Presets {
		preset := preset
		presetItems = append(presetItems, fyne.NewMenuItem(fmt.Sprintf("%d minutes", preset.Minutes), func() {
			if manager.callbacks.OnPreset != nil {
				manager.callbacks.OnPreset(preset)
			}
		}))
	}
	manager.presets = fyne.NewMenuItem("Start preset", nil)
	manager.presets.ChildMenu = fyne.NewMenu("", presetItems...)

	manager.refreshStatus()
	manager.refreshMenu()
	return manager
}

// SetRemaining updates the status line.
func (manager *Manager) SetRemaining(seconds int) {
	if seconds == manager.remaining {
		return
	}
	manager.remaining = seconds
	manager.refreshStatus()
	manager.refreshMenu()
}

// SetRunning flips the start/pause item.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	if running {
		manager.startItem.Label = "Pause"
	} else {
		manager.startItem.Label = "Start"
	}
	manager.refreshStatus()
	manager.refreshMenu()
}

// Menu returns the menu last handed to the host.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) refreshStatus() {
	status := model.FormatTimer(manager.remaining)
	if !manager.running && manager.remaining > 0 {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Remaining: %s", status)
	manager.startItem.Disabled = !manager.running && manager.remaining <= 0
}

func (manager *Manager) refreshMenu() {
	manager.menu = fyne.NewMenu("RealPomo",
		manager.statusItem,
		fyne.NewMenuItem("Show dial", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		fyne.NewMenuItem("Reset", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		manager.presets,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}
