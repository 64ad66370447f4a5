// Package app is the planner controller. A Planner owns the drawing, the
// view transform, the projector registry and the measurement tools, and
// every mutating operation ends with an explicit recompute of the readout
// that observers receive.
//
// A Planner is not safe for concurrent use. It is driven by one input
// source at a time; servers that share one must serialize access.
package app

import (
	"github.com/philipparndt/throwplan/internal/config"
	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/internal/measurement"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// Options configure a new Planner
type Options struct {
	Viewport geometry.Size
	MaxZoom  float64

	PickRadiusMouse  float64 // floor marker and line endpoints
	PickRadiusTouch  float64
	HandlePickRadius float64 // projector and screen handles
	DragMargin       float64

	Defaults projector.Defaults
	Scale    units.DrawingScale
	Unit     units.Unit
}

// DefaultOptions returns the built-in options
func DefaultOptions() Options {
	return OptionsFrom(config.Default())
}

// OptionsFrom derives planner options from the application configuration
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Viewport:         geometry.NewSize(float64(cfg.View.ViewportWidth), float64(cfg.View.ViewportHeight)),
		MaxZoom:          cfg.View.MaxZoom,
		PickRadiusMouse:  cfg.Input.PickRadiusMouse,
		PickRadiusTouch:  cfg.Input.PickRadiusTouch,
		HandlePickRadius: cfg.Input.HandlePickRadius,
		DragMargin:       cfg.Input.DragMargin,
		Defaults:         cfg.Defaults,
		Scale:            cfg.Scale(),
		Unit:             cfg.DisplayUnit(),
	}
}

// Planner is the composed planner state plus its operations
type Planner struct {
	Drawing     DrawingState
	Mode        ModeState
	Measurement MeasurementState
	Drag        DragState

	view        *viewer.View
	pendingView *ViewState // restored settings waiting for a drawing
	registry    *projector.Registry
	opts        Options

	overlay   *viewer.Canvas
	readout   Readout
	observers []func(Readout)
}

// New creates a planner with one default projector and no drawing
func New(opts Options) *Planner {
	if opts.Unit == "" {
		opts.Unit = units.Feet
	}
	if opts.Scale == (units.DrawingScale{}) {
		opts.Scale = units.PresetScale(units.DefaultPreset)
	}
	p := &Planner{
		Mode: ModeState{
			viewMode:    projector.Plan,
			displayUnit: opts.Unit,
			scale:       opts.Scale,
		},
		view:     viewer.NewView(opts.Viewport, opts.MaxZoom),
		registry: projector.NewRegistry(opts.Defaults),
		opts:     opts,
	}
	p.recompute()
	return p
}

// OnChange registers an observer that receives the readout after every
// mutation
func (p *Planner) OnChange(fn func(Readout)) {
	p.observers = append(p.observers, fn)
}

// recompute rebuilds the readout and notifies observers. Every mutating
// operation calls it exactly once before returning.
func (p *Planner) recompute() {
	p.readout = p.buildReadout()
	if debug.IsEnabled(debug.LevelTrace) {
		debug.Trace("recompute: unit %d throw=%.3fft zoom=%.3f rot=%.0f",
			p.readout.SelectedID, p.readout.Metrics.ThrowFeet, p.readout.Zoom, p.readout.Rotation)
	}
	for _, fn := range p.observers {
		fn(p.readout)
	}
}

// Ready reports whether a drawing is installed and the viewport has a size
func (p *Planner) Ready() bool {
	return p.view.Ready()
}

// Readout returns the figures of the selected unit as of the last mutation
func (p *Planner) Readout() Readout {
	return p.readout
}

// View returns a copy of the view transform
func (p *Planner) View() ViewState {
	return viewStateOf(p.view)
}

// DrawingSize returns the pixel size of the installed page
func (p *Planner) DrawingSize() geometry.Size {
	return p.Drawing.size
}

// Page returns the installed page number and the page count
func (p *Planner) Page() (page, pages int) {
	return p.Drawing.page, p.Drawing.pages
}

// ViewMode returns the active view
func (p *Planner) ViewMode() projector.ViewMode {
	return p.Mode.viewMode
}

// Scale returns the drawing scale
func (p *Planner) Scale() units.DrawingScale {
	return p.Mode.scale
}

// DisplayUnit returns the unit lengths are formatted in
func (p *Planner) DisplayUnit() units.Unit {
	return p.Mode.displayUnit
}

// PanMode reports whether every drag pans
func (p *Planner) PanMode() bool {
	return p.Mode.panMode
}

// MeasureMode reports whether the distance tool is shown
func (p *Planner) MeasureMode() bool {
	return p.Mode.measureMode
}

// Units returns a copy of all projector units in registry order
func (p *Planner) Units() []projector.Unit {
	return p.registry.Units()
}

// Unit looks up one projector unit
func (p *Planner) Unit(id int) (projector.Unit, bool) {
	return p.registry.Get(id)
}

// SelectedID returns the id of the selected unit
func (p *Planner) SelectedID() int {
	return p.registry.SelectedID()
}

// Color returns the palette entry of a unit
func (p *Planner) Color(id int) projector.Color {
	return p.registry.Color(id)
}

// MeasureLine returns the distance tool if measure mode is on
func (p *Planner) MeasureLine() (measurement.Line, bool) {
	if p.Measurement.line == nil {
		return measurement.Line{}, false
	}
	return *p.Measurement.line, true
}

// Floor returns the floor marker
func (p *Planner) Floor() measurement.FloorReference {
	return p.Measurement.floor
}

// ScreenToDrawing maps a viewport point into drawing pixels
func (p *Planner) ScreenToDrawing(s geometry.Point) geometry.Point {
	return p.view.ScreenToDrawing(s)
}

// DrawingToScreen maps a drawing pixel into the viewport
func (p *Planner) DrawingToScreen(d geometry.Point) geometry.Point {
	return p.view.DrawingToScreen(d)
}
