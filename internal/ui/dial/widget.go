package dial

import (
	"image"
	"sync"

	"realpomo/internal/core/angle"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const minWidgetSide = float32(240)

// Widget is the fyne surface for a dial controller.
type Widget struct {
	widget.BaseWidget

	mu         sync.Mutex
	view       View
	renderer   Renderer
	raster     *canvas.Raster
	controller *Controller
}

var (
	_ Surface            = (*Widget)(nil)
	_ desktop.Mouseable  = (*Widget)(nil)
	_ desktop.Hoverable  = (*Widget)(nil)
	_ desktop.Cursorable = (*Widget)(nil)
	_ fyne.Draggable     = (*Widget)(nil)
)

// NewWidget creates a dial widget. Bind a controller before showing it.
func NewWidget(theme Theme) *Widget {
	dial := &Widget{renderer: Renderer{Theme: theme}}
	dial.raster = canvas.NewRaster(dial.draw)
	dial.ExtendBaseWidget(dial)
	return dial
}

// Bind attaches the controller that receives pointer input.
func (dial *Widget) Bind(controller *Controller) {
	dial.controller = controller
	size := dial.Size()
	controller.Resize(float64(size.Width), float64(size.Height))
}

// SetTheme changes the dial colours.
func (dial *Widget) SetTheme(theme Theme) {
	dial.mu.Lock()
	dial.renderer.Theme = theme
	dial.mu.Unlock()
	dial.raster.Refresh()
}

// Render stores the view and schedules a redraw.
func (dial *Widget) Render(view View) {
	dial.mu.Lock()
	dial.view = view
	dial.mu.Unlock()
	dial.raster.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (dial *Widget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dial.raster)
}

// MinSize keeps the dial large enough to grab.
func (dial *Widget) MinSize() fyne.Size {
	return fyne.NewSize(minWidgetSide, minWidgetSide)
}

// Resize forwards the new size to the controller.
func (dial *Widget) Resize(size fyne.Size) {
	dial.BaseWidget.Resize(size)
	if dial.controller != nil {
		dial.controller.Resize(float64(size.Width), float64(size.Height))
	}
}

// MouseDown implements desktop.Mouseable.
func (dial *Widget) MouseDown(event *desktop.MouseEvent) {
	if dial.controller == nil || event.Button != desktop.MouseButtonPrimary {
		return
	}
	dial.controller.PointerDown(toPoint(event.Position))
}

// MouseUp implements desktop.Mouseable.
func (dial *Widget) MouseUp(*desktop.MouseEvent) {
	if dial.controller != nil {
		dial.controller.PointerUp()
	}
}

// Dragged implements fyne.Draggable.
func (dial *Widget) Dragged(event *fyne.DragEvent) {
	if dial.controller != nil {
		dial.controller.PointerMove(toPoint(event.Position))
	}
}

// DragEnd implements fyne.Draggable.
func (dial *Widget) DragEnd() {
	if dial.controller != nil {
		dial.controller.PointerUp()
	}
}

// MouseIn implements desktop.Hoverable.
func (dial *Widget) MouseIn(event *desktop.MouseEvent) {
	dial.MouseMoved(event)
}

// MouseMoved implements desktop.Hoverable.
func (dial *Widget) MouseMoved(event *desktop.MouseEvent) {
	if dial.controller != nil {
		dial.controller.HoverAt(toPoint(event.Position))
	}
}

// MouseOut implements desktop.Hoverable.
func (dial *Widget) MouseOut() {
	if dial.controller != nil {
		dial.controller.HoverEnd()
	}
}

// Cursor implements desktop.Cursorable.
func (dial *Widget) Cursor() desktop.Cursor {
	dial.mu.Lock()
	defer dial.mu.Unlock()
	if dial.view.Hover != HoverNone {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (dial *Widget) draw(width, height int) image.Image {
	dial.mu.Lock()
	view := dial.view
	renderer := dial.renderer
	dial.mu.Unlock()
	return renderer.Draw(view, width, height)
}

func toPoint(position fyne.Position) angle.Point {
	return angle.Point{X: float64(position.X), Y: float64(position.Y)}
}
