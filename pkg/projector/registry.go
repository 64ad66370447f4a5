package projector

import (
	"errors"
	"fmt"

	"github.com/philipparndt/throwplan/pkg/geometry"
)

// ErrEmptyRegistry is returned when a unit list without any unit is installed
var ErrEmptyRegistry = errors.New("registry needs at least one projector")

// Registry is the ordered list of units plus the selection. It always
// holds at least one unit and the selection always names an existing unit.
type Registry struct {
	units    []Unit
	selected int
	defaults Defaults
}

// NewRegistry creates a registry holding a single default unit
func NewRegistry(defaults Defaults) *Registry {
	r := &Registry{defaults: defaults}
	r.units = []Unit{NewUnit(1, defaults)}
	r.selected = 1
	return r
}

// Len returns the number of units
func (r *Registry) Len() int {
	return len(r.units)
}

// Units returns a copy of all units in registry order
func (r *Registry) Units() []Unit {
	out := make([]Unit, len(r.units))
	copy(out, r.units)
	return out
}

// SelectedID returns the id of the selected unit
func (r *Registry) SelectedID() int {
	return r.selected
}

// Selected returns the selected unit
func (r *Registry) Selected() Unit {
	u, _ := r.Get(r.selected)
	return u
}

// Get looks up a unit by id
func (r *Registry) Get(id int) (Unit, bool) {
	if i := r.index(id); i >= 0 {
		return r.units[i], true
	}
	return Unit{}, false
}

// Index returns the list position of a unit, or -1
func (r *Registry) Index(id int) int {
	return r.index(id)
}

func (r *Registry) index(id int) int {
	for i := range r.units {
		if r.units[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) nextID() int {
	maxID := 0
	for _, u := range r.units {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}

// Add appends a default unit, selects it and returns its id
func (r *Registry) Add() int {
	id := r.nextID()
	r.units = append(r.units, NewUnit(id, r.defaults))
	r.selected = id
	return id
}

// Remove deletes a unit. Removing the last remaining unit or an unknown id
// is a no-op. If the selected unit goes away the first remaining unit is
// selected.
func (r *Registry) Remove(id int) bool {
	if len(r.units) <= 1 {
		return false
	}
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.units = append(r.units[:i], r.units[i+1:]...)
	if r.selected == id {
		r.selected = r.units[0].ID
	}
	return true
}

// Select makes id the selected unit. Unknown ids are ignored.
func (r *Registry) Select(id int) bool {
	if r.index(id) < 0 {
		return false
	}
	r.selected = id
	return true
}

// UpdateSelected merges a patch into the selected unit only
func (r *Registry) UpdateSelected(patch UnitPatch) {
	i := r.index(r.selected)
	if i < 0 {
		return
	}
	patch.Apply(&r.units[i])
}

// SetPoint moves one handle of a unit in one view
func (r *Registry) SetPoint(id int, mode ViewMode, h Handle, p geometry.Point) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.units[i].SetPoint(mode, h, p)
	return true
}

// Replace installs a complete unit list, e.g. from imported settings. The
// list is validated first and the registry is left untouched on error.
func (r *Registry) Replace(units []Unit, selected int) error {
	if len(units) == 0 {
		return ErrEmptyRegistry
	}
	seen := make(map[int]bool, len(units))
	next := make([]Unit, len(units))
	for i, u := range units {
		if u.ID <= 0 {
			return fmt.Errorf("projector %d: id must be positive", u.ID)
		}
		if seen[u.ID] {
			return fmt.Errorf("projector %d: duplicate id", u.ID)
		}
		seen[u.ID] = true
		u.Normalize()
		next[i] = u
	}
	if !seen[selected] {
		selected = next[0].ID
	}
	r.units = next
	r.selected = selected
	return nil
}

// Color returns the palette entry of a unit, derived from its list position
func (r *Registry) Color(id int) Color {
	i := r.index(id)
	if i < 0 {
		i = 0
	}
	return ColorAt(i)
}
