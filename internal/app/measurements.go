package app

import (
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/internal/measurement"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
)

// SetMeasureMode shows or hides the distance tool. Turning it on places a
// fresh line across the middle of the drawing.
func (p *Planner) SetMeasureMode(on bool) {
	p.Mode.measureMode = on
	if on {
		p.resetLine()
	} else {
		p.Measurement.line = nil
		if p.Drag.Kind == DragLineStart || p.Drag.Kind == DragLineEnd {
			p.Drag = DragState{}
		}
	}
	p.recompute()
}

func (p *Planner) resetLine() {
	l := measurement.DefaultLine(p.Drawing.size)
	p.Measurement.line = &l
}

// ToggleFloorReference shows or hides the floor marker. It only exists in
// section view with a drawing loaded; otherwise the call is ignored.
func (p *Planner) ToggleFloorReference() {
	if p.Mode.viewMode != projector.Section || !p.Ready() {
		return
	}
	p.Measurement.floor.Toggle(p.Drawing.size)
	debug.Live("floor marker visible=%v", p.Measurement.floor.Visible)
	p.recompute()
}

// SetFloorReference places the floor marker, clamped like a drag
func (p *Planner) SetFloorReference(pt geometry.Point) {
	if p.Mode.viewMode != projector.Section {
		return
	}
	if p.Ready() {
		pt = p.clampToDrawing(pt)
	}
	p.Measurement.floor.Set(pt)
	p.Measurement.floor.Visible = true
	p.recompute()
}

// dragBounds is the drawing minus the drag margin. Handles never leave it
// so they stay grabbable.
func (p *Planner) dragBounds() geometry.Rect {
	r := geometry.RectFromSize(p.Drawing.size)
	inset := r.Inset(p.opts.DragMargin)
	if inset.Min.X > inset.Max.X || inset.Min.Y > inset.Max.Y {
		// drawing smaller than twice the margin
		c := r.Center()
		return geometry.Rect{Min: c, Max: c}
	}
	return inset
}

func (p *Planner) clampToDrawing(pt geometry.Point) geometry.Point {
	return p.dragBounds().ClampPoint(pt)
}

func (p *Planner) insideDrawing(pt geometry.Point) bool {
	return p.dragBounds().Contains(pt)
}
