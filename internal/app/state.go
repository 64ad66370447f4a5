package app

import (
	"image"

	"github.com/philipparndt/throwplan/internal/measurement"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// DrawingState holds the currently installed page
type DrawingState struct {
	image  image.Image
	path   string // file the page came from, when known
	page   int
	pages  int
	source string
	size   geometry.Size
}

// ModeState holds the user-selected modes and display settings
type ModeState struct {
	viewMode    projector.ViewMode
	panMode     bool
	measureMode bool
	displayUnit units.Unit
	scale       units.DrawingScale
}

// MeasurementState holds the distance tool and the floor marker
type MeasurementState struct {
	line  *measurement.Line // nil unless measure mode is on
	floor measurement.FloorReference
}

// DragKind names what the current gesture is moving
type DragKind int

const (
	DragNone DragKind = iota
	DragPanning
	DragProjector
	DragScreen
	DragLineStart
	DragLineEnd
	DragFloor
)

func (k DragKind) String() string {
	switch k {
	case DragPanning:
		return "pan"
	case DragProjector:
		return "projector"
	case DragScreen:
		return "screen"
	case DragLineStart:
		return "line-start"
	case DragLineEnd:
		return "line-end"
	case DragFloor:
		return "floor"
	default:
		return "none"
	}
}

// DragState is the transient gesture state. Exactly one target is active.
type DragState struct {
	Kind   DragKind
	UnitID int            // for DragProjector and DragScreen
	last   geometry.Point // last screen position, for panning
}

// Active reports whether a gesture is in progress
func (d DragState) Active() bool {
	return d.Kind != DragNone
}

// handle maps a unit drag to the registry handle it moves
func (d DragState) handle() projector.Handle {
	if d.Kind == DragScreen {
		return projector.HandleScreen
	}
	return projector.HandleProjector
}

// ViewState is a copy of the view transform for callers
type ViewState struct {
	Pan      geometry.Point `json:"pan"`
	Zoom     float64        `json:"zoom"`
	Rotation float64        `json:"rotation"`
	MinZoom  float64        `json:"-"`
	MaxZoom  float64        `json:"-"`
}

func viewStateOf(v *viewer.View) ViewState {
	return ViewState{
		Pan:      v.Pan,
		Zoom:     v.Zoom,
		Rotation: v.Rotation,
		MinZoom:  v.MinZoom,
		MaxZoom:  v.UpperZoom(),
	}
}
