// Package window builds the main RealPomo window around the dial widget.
package window

import (
	"context"
	"image/color"

	"realpomo/internal/core/model"
	"realpomo/internal/ui/animation"
	"realpomo/internal/ui/dial"
	"realpomo/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	readoutTextSize = 28
	flashAlpha      = 0x66
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnPreset     func(seconds int)
	OnTaskChange func(text string)
}

// Window manages the main timer UI.
type Window struct {
	window    fyne.Window
	dial      *dial.Widget
	readout   *canvas.Text
	presets   *fyne.Container
	task      *widget.Entry
	flash     *canvas.Rectangle
	engine    *animation.Engine
	cancelCtx context.CancelFunc
	callbacks Callbacks
	settings  preferences.Settings
}

// New creates the main window. engine may be set later with SetEngine.
func New(app fyne.App, dialWidget *dial.Widget, settings preferences.Settings, callbacks Callbacks, engine *animation.Engine) *Window {
	fyneWindow := app.NewWindow("RealPomo")
	if app.Icon() != nil {
		fyneWindow.SetIcon(app.Icon())
	}

	readout := canvas.NewText(model.FormatTimer(0), color.Black)
	readout.Alignment = fyne.TextAlignCenter
	readout.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	readout.TextSize = readoutTextSize

	task := widget.NewEntry()
	task.SetPlaceHolder("What are you working on?")

	flash := canvas.NewRectangle(color.Transparent)

	window := &Window{
		window:    fyneWindow,
		dial:      dialWidget,
		readout:   readout,
		task:      task,
		flash:     flash,
		engine:    engine,
		callbacks: callbacks,
	}

	buttons := make([]fyne.CanvasObject, 0, len(model.Presets))
	for _, preset := range model.Presets {
		preset := preset
		buttons = append(buttons, widget.NewButton(preset.Label, func() {
			window.selectPreset(preset)
		}))
	}
	window.presets = container.NewGridWithColumns(len(buttons), buttons...)

	task.OnChanged = func(text string) {
		window.settings.TaskText = text
		if window.callbacks.OnTaskChange != nil {
			window.callbacks.OnTaskChange(text)
		}
	}

	content := container.New(&faceLayout{}, dialWidget, readout, window.presets, task)
	fyneWindow.SetContent(container.NewStack(flash, content))
	fyneWindow.Resize(fyne.NewSize(340, 480))

	window.ApplySettings(settings)
	return window
}

// SetEngine attaches the flash engine.
func (window *Window) SetEngine(engine *animation.Engine) {
	window.engine = engine
}

// Show displays and focuses the window.
func (window *Window) Show() {
	window.window.Show()
	window.window.RequestFocus()
}

// Hide hides the window.
func (window *Window) Hide() {
	window.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (window *Window) SetCloseIntercept(callback func()) {
	window.window.SetCloseIntercept(callback)
}

// SetRemaining updates the digital readout. Must run on the UI thread.
func (window *Window) SetRemaining(seconds int) {
	window.readout.Text = model.FormatTimer(seconds)
	window.readout.Refresh()
}

// ApplySettings updates visibility, colours and the task text.
func (window *Window) ApplySettings(settings preferences.Settings) {
	window.settings = settings
	theme := settings.Theme()
	window.dial.SetTheme(theme)
	window.readout.Color = theme.Sector

	setVisible(window.readout, settings.ShowDigital)
	setVisible(window.presets, settings.ShowPresets)
	if window.task.Text != settings.TaskText {
		onChanged := window.task.OnChanged
		window.task.OnChanged = nil
		window.task.SetText(settings.TaskText)
		window.task.OnChanged = onChanged
	}

	window.readout.Refresh()
	window.window.Content().Refresh()
}

// FlashDone highlights the window to signal a finished countdown.
func (window *Window) FlashDone() {
	if window.engine == nil {
		return
	}
	window.stopFlash()
	ctx, cancel := context.WithCancel(context.Background())
	window.cancelCtx = cancel
	window.engine.Flash(ctx)
}

// SetHighlight paints or clears the flash background. Safe to call from
// any goroutine.
func (window *Window) SetHighlight(lit bool) {
	fyne.Do(func() {
		window.setHighlightUnsafe(lit)
	})
}

// Close stops the flash and closes the window.
func (window *Window) Close() {
	window.stopFlash()
	if window.engine != nil {
		window.engine.Stop()
	}
	window.window.Close()
}

func (window *Window) setHighlightUnsafe(lit bool) {
	if !lit {
		window.flash.FillColor = color.Transparent
	} else {
		sector := window.settings.Theme().Sector
		r, g, b := sector.RGB255()
		window.flash.FillColor = color.NRGBA{R: r, G: g, B: b, A: flashAlpha}
	}
	window.flash.Refresh()
}

func (window *Window) selectPreset(preset model.Preset) {
	if window.callbacks.OnPreset == nil {
		return
	}
	maxSeconds := window.settings.DialConfig(0).MaxSeconds
	window.callbacks.OnPreset(preset.Seconds(maxSeconds))
}

func (window *Window) stopFlash() {
	if window.cancelCtx != nil {
		window.cancelCtx()
		window.cancelCtx = nil
	}
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible {
		object.Show()
		return
	}
	object.Hide()
}
