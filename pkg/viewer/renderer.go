package viewer

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/throwplan/pkg/geometry"
)

// Interactive is the surface a DrawingWidget forwards input to
type Interactive interface {
	ResizeViewport(size geometry.Size)
	RenderViewport() image.Image
	PointerDown(p geometry.Point, touch bool)
	PointerMove(p geometry.Point)
	PointerUp()
	WheelZoom(p geometry.Point, factor float64)
}

// DrawingWidget shows a planner viewport and forwards mouse input to it
type DrawingWidget struct {
	widget.BaseWidget
	surface   Interactive
	raster    *canvas.Image
	pressed   bool
	onChanged func()
}

var (
	_ fyne.Draggable    = (*DrawingWidget)(nil)
	_ fyne.Scrollable   = (*DrawingWidget)(nil)
	_ desktop.Mouseable = (*DrawingWidget)(nil)
	_ desktop.Hoverable = (*DrawingWidget)(nil)
)

// NewDrawingWidget creates a widget bound to an interactive surface
func NewDrawingWidget(surface Interactive) *DrawingWidget {
	w := &DrawingWidget{surface: surface}
	w.raster = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	w.raster.FillMode = canvas.ImageFillStretch
	w.raster.ScaleMode = canvas.ImageScaleFastest
	w.ExtendBaseWidget(w)
	return w
}

// SetOnChanged registers a callback fired after input changed the surface
func (w *DrawingWidget) SetOnChanged(callback func()) {
	w.onChanged = callback
}

// Redraw re-renders the surface into the widget
func (w *DrawingWidget) Redraw() {
	w.raster.Image = w.surface.RenderViewport()
	w.raster.Refresh()
}

func (w *DrawingWidget) changed() {
	w.Redraw()
	if w.onChanged != nil {
		w.onChanged()
	}
}

func toPoint(pos fyne.Position) geometry.Point {
	return geometry.NewPoint(float64(pos.X), float64(pos.Y))
}

// MouseDown starts a drag or pan at the pressed position
func (w *DrawingWidget) MouseDown(event *desktop.MouseEvent) {
	w.pressed = true
	w.surface.PointerDown(toPoint(event.Position), false)
	w.changed()
}

// MouseUp ends the current gesture
func (w *DrawingWidget) MouseUp(*desktop.MouseEvent) {
	w.release()
}

// Dragged moves the active drag target
func (w *DrawingWidget) Dragged(event *fyne.DragEvent) {
	if !w.pressed {
		// Touch drivers deliver drags without a mouse-down
		w.pressed = true
		start := event.Position.Subtract(event.Dragged)
		w.surface.PointerDown(toPoint(start), true)
	}
	w.surface.PointerMove(toPoint(event.Position))
	w.changed()
}

// DragEnd handles the end of a drag event
func (w *DrawingWidget) DragEnd() {
	w.release()
}

// MouseIn is part of desktop.Hoverable
func (w *DrawingWidget) MouseIn(*desktop.MouseEvent) {}

// MouseMoved is part of desktop.Hoverable
func (w *DrawingWidget) MouseMoved(*desktop.MouseEvent) {}

// MouseOut cancels any gesture when the pointer leaves the widget
func (w *DrawingWidget) MouseOut() {
	w.release()
}

func (w *DrawingWidget) release() {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.surface.PointerUp()
	w.changed()
}

// Scrolled zooms about the pointer
func (w *DrawingWidget) Scrolled(event *fyne.ScrollEvent) {
	factor := math.Pow(1.0015, float64(event.Scrolled.DY))
	w.surface.WheelZoom(toPoint(event.Position), factor)
	w.changed()
}

// CreateRenderer creates the renderer for the widget
func (w *DrawingWidget) CreateRenderer() fyne.WidgetRenderer {
	return &drawingWidgetRenderer{widget: w}
}

// drawingWidgetRenderer implements fyne.WidgetRenderer
type drawingWidgetRenderer struct {
	widget *DrawingWidget
	size   fyne.Size
}

func (r *drawingWidgetRenderer) Layout(size fyne.Size) {
	r.widget.raster.Resize(size)
	if size == r.size {
		return
	}
	r.size = size
	r.widget.surface.ResizeViewport(geometry.NewSize(float64(size.Width), float64(size.Height)))
	r.widget.Redraw()
}

func (r *drawingWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *drawingWidgetRenderer) Refresh() {
	r.widget.Redraw()
	canvas.Refresh(r.widget)
}

func (r *drawingWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.raster}
}

func (r *drawingWidgetRenderer) Destroy() {}
