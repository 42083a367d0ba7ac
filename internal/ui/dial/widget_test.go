package dial

import (
	"testing"

	"realpomo/internal/core/frame"
	"realpomo/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func mouseAt(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestWidgetForwardsPointerInput(t *testing.T) {
	test.NewTempApp(t)

	frames := frame.NewManual()
	timer := timekeeper.New(timekeeper.Config{Scheduler: frames, InitialSeconds: 600})
	theme, _ := ThemeNamed(DefaultThemeName)
	dial := NewWidget(theme)
	controller := NewController(Config{
		MaxSeconds: 3600,
		Timer:      timer,
		Surface:    dial,
		Frames:     frames,
		Clock:      clockwork.NewFakeClock(),
	})
	dial.Bind(controller)
	dial.Resize(fyne.NewSize(300, 300))

	dial.MouseMoved(mouseAt(150, 150))
	assert.Equal(t, desktop.PointerCursor, dial.Cursor())
	dial.MouseOut()
	assert.Equal(t, desktop.DefaultCursor, dial.Cursor())

	dial.MouseDown(mouseAt(150, 20))
	dial.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(280, 150)}})
	assert.Greater(t, timer.RemainingSeconds(), 600)
	dial.DragEnd()
	dial.MouseUp(mouseAt(280, 150))
	assert.Equal(t, 900, timer.RemainingSeconds())

	dial.MouseDown(mouseAt(150, 150))
	assert.Equal(t, 0, timer.RemainingSeconds())
}
