package app

import (
	"fmt"

	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

// AddProjector appends a default unit, selects it and returns its id
func (p *Planner) AddProjector() int {
	id := p.registry.Add()
	debug.Live("added projector %d (%d units)", id, p.registry.Len())
	p.recompute()
	return id
}

// RemoveProjector deletes a unit. The last unit cannot be removed.
func (p *Planner) RemoveProjector(id int) bool {
	ok := p.registry.Remove(id)
	if ok {
		debug.Live("removed projector %d, selected %d", id, p.registry.SelectedID())
		if p.Drag.UnitID == id {
			p.Drag = DragState{}
		}
	}
	p.recompute()
	return ok
}

// Select makes id the selected unit. Unknown ids are ignored.
func (p *Planner) Select(id int) bool {
	ok := p.registry.Select(id)
	p.recompute()
	return ok
}

// UpdateSelected merges parameter edits into the selected unit
func (p *Planner) UpdateSelected(patch projector.UnitPatch) {
	if patch.IsEmpty() {
		return
	}
	p.registry.UpdateSelected(patch)
	debug.PrintStruct(fmt.Sprintf("projector %d", p.registry.SelectedID()), p.registry.Selected())
	p.recompute()
}

// SetViewMode switches between plan and section positions
func (p *Planner) SetViewMode(mode projector.ViewMode) {
	p.Mode.viewMode = mode
	p.Drag = DragState{}
	p.recompute()
}

// SetScale changes the drawing scale. Invalid custom values are kept, and
// every conversion falls back to 1 foot per inch until they are fixed.
func (p *Planner) SetScale(s units.DrawingScale) {
	p.Mode.scale = s
	if _, err := units.Resolve(s); err != nil {
		debug.Verbose("scale %s: %v", s, err)
	}
	p.recompute()
}

// SetDisplayUnit changes the unit lengths are formatted in
func (p *Planner) SetDisplayUnit(u units.Unit) {
	p.Mode.displayUnit = u
	p.recompute()
}
