package app

import (
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/geometry"
)

// ZoomStep is the factor applied by ZoomIn and ZoomOut
const ZoomStep = 1.25

// ResizeViewport updates the viewport after a window resize
func (p *Planner) ResizeViewport(size geometry.Size) {
	p.view.SetViewport(size)
	p.recompute()
}

// ZoomBy scales the zoom about the viewport center
func (p *Planner) ZoomBy(factor float64) {
	p.view.ZoomBy(factor)
	debug.Verbose("zoom %.3f (min %.3f)", p.view.Zoom, p.view.MinZoom)
	p.recompute()
}

// ZoomIn zooms in one step
func (p *Planner) ZoomIn() {
	p.ZoomBy(ZoomStep)
}

// ZoomOut zooms out one step
func (p *Planner) ZoomOut() {
	p.ZoomBy(1 / ZoomStep)
}

// SetZoom sets an absolute zoom, clamped into range
func (p *Planner) SetZoom(zoom float64) {
	p.view.SetZoom(zoom)
	p.recompute()
}

// PanBy moves the drawing by a screen-space delta
func (p *Planner) PanBy(delta geometry.Point) {
	p.view.PanBy(delta)
	p.recompute()
}

// Rotate turns the view by a multiple of 90 degrees
func (p *Planner) Rotate(degrees float64) {
	p.view.Rotate(degrees)
	debug.Verbose("rotation %.0f, min zoom %.3f", p.view.Rotation, p.view.MinZoom)
	p.recompute()
}

// Fit shows the whole drawing
func (p *Planner) Fit() {
	p.view.Fit()
	p.recompute()
}

// SetPanMode makes every drag pan the view instead of grabbing handles
func (p *Planner) SetPanMode(on bool) {
	p.Mode.panMode = on
	p.recompute()
}
