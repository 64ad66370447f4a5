package app

import (
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/internal/measurement"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
)

// PointerDown starts a gesture at a viewport position. The first handle
// within its pick radius is grabbed, tried in the order floor marker, line
// endpoints, projector and screen handles. Anything else pans.
func (p *Planner) PointerDown(screen geometry.Point, touch bool) {
	if !p.Ready() || p.view.Pinching() {
		return
	}
	p.Drag = DragState{Kind: DragPanning, last: screen}
	if !p.Mode.panMode {
		if hit, ok := p.hitTest(p.view.ScreenToDrawing(screen), touch); ok {
			hit.last = screen
			p.Drag = hit
			if hit.UnitID != 0 {
				p.registry.Select(hit.UnitID)
			}
		}
	}
	if debug.IsEnabled(debug.LevelLive) {
		d := p.view.ScreenToDrawing(screen)
		debug.Drag("start", p.dragTarget(), d.X, d.Y)
	}
	p.recompute()
}

// PointerMove continues the active gesture
func (p *Planner) PointerMove(screen geometry.Point) {
	if !p.Ready() || !p.Drag.Active() {
		return
	}
	if p.Drag.Kind == DragPanning {
		p.view.PanBy(screen.Sub(p.Drag.last))
		p.Drag.last = screen
		p.recompute()
		return
	}

	pt := p.clampToDrawing(p.view.ScreenToDrawing(screen))
	switch p.Drag.Kind {
	case DragProjector, DragScreen:
		p.registry.SetPoint(p.Drag.UnitID, p.Mode.viewMode, p.Drag.handle(), pt)
	case DragLineStart:
		if p.Measurement.line != nil {
			p.Measurement.line.SetPoint(measurement.EndpointStart, pt)
		}
	case DragLineEnd:
		if p.Measurement.line != nil {
			p.Measurement.line.SetPoint(measurement.EndpointEnd, pt)
		}
	case DragFloor:
		p.Measurement.floor.Set(pt)
	}
	p.Drag.last = screen
	debug.Trace("drag %s to (%.1f, %.1f)", p.dragTarget(), pt.X, pt.Y)
	p.recompute()
}

// PointerUp ends the active gesture
func (p *Planner) PointerUp() {
	if !p.Drag.Active() {
		return
	}
	if debug.IsEnabled(debug.LevelLive) {
		d := p.view.ScreenToDrawing(p.Drag.last)
		debug.Drag("end", p.dragTarget(), d.X, d.Y)
	}
	p.Drag = DragState{}
	p.recompute()
}

// PointerLeave ends the gesture when the pointer leaves the viewport
func (p *Planner) PointerLeave() {
	p.PointerUp()
}

// WheelZoom zooms about the pointer position
func (p *Planner) WheelZoom(screen geometry.Point, factor float64) {
	if !p.Ready() {
		return
	}
	p.view.ZoomAt(screen, factor)
	p.recompute()
}

// TouchStart handles a change in the set of touching fingers. Two or more
// fingers start a pinch, which cancels any single-finger drag.
func (p *Planner) TouchStart(touches []geometry.Point) {
	if !p.Ready() {
		return
	}
	if len(touches) >= 2 {
		p.Drag = DragState{}
		p.view.BeginPinch(touches[0], touches[1])
		p.recompute()
		return
	}
	if len(touches) == 1 {
		p.PointerDown(touches[0], true)
	}
}

// TouchMove dispatches on the finger count: a pinch zooms and pans, a
// single finger drags.
func (p *Planner) TouchMove(touches []geometry.Point) {
	if !p.Ready() {
		return
	}
	if p.view.Pinching() {
		if len(touches) >= 2 {
			p.view.UpdatePinch(touches[0], touches[1])
			p.recompute()
		}
		return
	}
	if len(touches) == 1 {
		p.PointerMove(touches[0])
	}
}

// TouchEnd receives the fingers still down. A pinch ends once fewer than two
// remain; the leftover finger does not start a drag.
func (p *Planner) TouchEnd(remaining []geometry.Point) {
	if p.view.Pinching() {
		if len(remaining) < 2 {
			p.view.EndPinch()
			p.recompute()
		}
		return
	}
	if len(remaining) == 0 {
		p.PointerUp()
	}
}

func (p *Planner) hitTest(d geometry.Point, touch bool) (DragState, bool) {
	radius := p.opts.PickRadiusMouse
	if touch {
		radius = p.opts.PickRadiusTouch
	}

	floor := p.Measurement.floor
	if p.Mode.viewMode == projector.Section && floor.Active() && d.Distance(floor.Point()) <= radius {
		return DragState{Kind: DragFloor}, true
	}

	if l := p.Measurement.line; l != nil {
		if d.Distance(l.Start) <= radius {
			return DragState{Kind: DragLineStart}, true
		}
		if d.Distance(l.End) <= radius {
			return DragState{Kind: DragLineEnd}, true
		}
	}

	for _, u := range p.pickOrder() {
		if d.Distance(u.Point(p.Mode.viewMode, projector.HandleProjector)) <= p.opts.HandlePickRadius {
			return DragState{Kind: DragProjector, UnitID: u.ID}, true
		}
		if d.Distance(u.Point(p.Mode.viewMode, projector.HandleScreen)) <= p.opts.HandlePickRadius {
			return DragState{Kind: DragScreen, UnitID: u.ID}, true
		}
	}
	return DragState{}, false
}

// pickOrder returns the selected unit first, then the rest top-most first
// (reverse drawing order), so overlapping handles resolve to what the user
// is working on.
func (p *Planner) pickOrder() []projector.Unit {
	all := p.registry.Units()
	order := make([]projector.Unit, 0, len(all))
	if sel, ok := p.registry.Get(p.registry.SelectedID()); ok {
		order = append(order, sel)
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ID != p.registry.SelectedID() {
			order = append(order, all[i])
		}
	}
	return order
}

func (p *Planner) dragTarget() string {
	switch p.Drag.Kind {
	case DragProjector, DragScreen:
		return debug.Fmt("%s %d", p.Drag.Kind, p.Drag.UnitID)
	}
	return p.Drag.Kind.String()
}
