package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/philipparndt/throwplan/internal/debug"
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/report"
	"github.com/philipparndt/throwplan/pkg/units"
)

// SettingsVersion is written into every settings record
const SettingsVersion = 1

// ErrInvalidSettings is returned for settings that cannot be applied
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the persistable snapshot of a planner. Transient state such
// as the active drag, pan mode and the measurement line is not included.
type Settings struct {
	Version        int                `json:"version"`
	Drawing        string             `json:"drawing,omitempty"`
	Page           int                `json:"page"`
	Scale          units.DrawingScale `json:"scale"`
	DisplayUnit    units.Unit         `json:"displayUnit"`
	ViewMode       projector.ViewMode `json:"viewMode"`
	View           ViewState          `json:"view"`
	Projectors     []projector.Unit   `json:"projectors"`
	SelectedID     int                `json:"selectedId"`
	FloorReference *geometry.Point    `json:"floorReference"`
	FloorVisible   bool               `json:"floorVisible"`
}

// Settings returns a snapshot of the persistable state
func (p *Planner) Settings() Settings {
	s := Settings{
		Version:      SettingsVersion,
		Drawing:      p.Drawing.path,
		Page:         p.Drawing.page,
		Scale:        p.Mode.scale,
		DisplayUnit:  p.Mode.displayUnit,
		ViewMode:     p.Mode.viewMode,
		View:         p.View(),
		Projectors:   p.registry.Units(),
		SelectedID:   p.registry.SelectedID(),
		FloorVisible: p.Measurement.floor.Visible,
	}
	if s.Drawing == "" {
		s.Drawing = p.Drawing.source
	}
	if f := p.Measurement.floor.Position; f != nil {
		pt := *f
		s.FloorReference = &pt
	}
	return s
}

// ApplySettings installs a snapshot. The whole record is validated first;
// on error nothing is changed. The drawing itself is not loaded here. If
// no drawing is installed yet, zoom and pan are restored once one is.
func (p *Planner) ApplySettings(s Settings) error {
	next, err := p.validateSettings(s)
	if err != nil {
		debug.Error(err)
		return err
	}

	p.registry = next.registry
	p.Mode.scale = next.scale
	p.Mode.displayUnit = next.unit
	p.Mode.viewMode = next.mode
	p.Measurement.floor.Position = nil
	if s.FloorReference != nil {
		p.Measurement.floor.Set(*s.FloorReference)
	}
	p.Measurement.floor.Visible = s.FloorVisible && s.FloorReference != nil
	p.Drag = DragState{}
	p.view.EndPinch()

	if p.Ready() {
		p.restoreView(s.View)
	} else {
		v := s.View
		p.pendingView = &v
		p.view.SetRotation(v.Rotation)
	}
	debug.Section("Settings applied")
	debug.Verbose("%d projectors, scale %s", len(s.Projectors), next.scale)
	p.recompute()
	return nil
}

func (p *Planner) restoreView(v ViewState) {
	p.view.SetRotation(v.Rotation)
	if v.Zoom > 0 {
		p.view.SetZoom(v.Zoom)
	}
	p.view.Pan = p.view.ClampPan(v.Pan, p.view.Zoom)
}

type validatedSettings struct {
	registry *projector.Registry
	scale    units.DrawingScale
	unit     units.Unit
	mode     projector.ViewMode
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
}

func (p *Planner) validateSettings(s Settings) (validatedSettings, error) {
	var v validatedSettings
	if s.Version < 0 || s.Version > SettingsVersion {
		return v, invalid("unsupported version %d", s.Version)
	}
	if s.Page < 0 {
		return v, invalid("page %d", s.Page)
	}

	v.scale = s.Scale
	if v.scale == (units.DrawingScale{}) {
		v.scale = p.Mode.scale
	}
	if _, err := units.Resolve(v.scale); err != nil {
		return v, invalid("scale: %v", err)
	}

	v.unit = p.Mode.displayUnit
	if s.DisplayUnit != "" {
		u, err := units.ParseUnit(string(s.DisplayUnit))
		if err != nil {
			return v, invalid("display unit: %v", err)
		}
		v.unit = u
	}

	v.mode = projector.Plan
	if s.ViewMode != "" {
		m, err := projector.ParseViewMode(string(s.ViewMode))
		if err != nil {
			return v, invalid("view mode: %v", err)
		}
		v.mode = m
	}

	if !finite(s.View.Zoom) || s.View.Zoom < 0 || !s.View.Pan.IsFinite() {
		return v, invalid("view transform %+v", s.View)
	}
	if !finite(s.View.Rotation) || math.Mod(s.View.Rotation, 90) != 0 {
		return v, invalid("rotation %v is not a multiple of 90", s.View.Rotation)
	}
	if s.FloorReference != nil && !s.FloorReference.IsFinite() {
		return v, invalid("floor reference")
	}

	for _, u := range s.Projectors {
		for _, pt := range []geometry.Point{u.Positions.Plan.Projector, u.Positions.Plan.Screen, u.Positions.Section.Projector, u.Positions.Section.Screen} {
			if !pt.IsFinite() {
				return v, invalid("projector %d: position is not finite", u.ID)
			}
		}
	}
	v.registry = projector.NewRegistry(p.opts.Defaults)
	if err := v.registry.Replace(s.Projectors, s.SelectedID); err != nil {
		return v, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DecodeSettings reads a JSON settings record
func DecodeSettings(r io.Reader) (Settings, error) {
	var s Settings
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: decode: %w", ErrInvalidSettings, err)
	}
	return s, nil
}

// EncodeSettings writes a settings record as indented JSON
func EncodeSettings(w io.Writer, s Settings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Summaries returns one report line per projector. Throw figures use the
// active view; hanging height uses section positions and needs a visible
// floor marker.
func (p *Planner) Summaries() []report.Summary {
	in := report.Input{
		Units:    p.registry.Units(),
		Mode:     p.Mode.viewMode,
		Scale:    p.Mode.scale,
		Drawing:  p.Drawing.size,
		Rotation: p.view.Rotation,
	}
	if p.Measurement.floor.Active() && p.Ready() {
		pt := p.Measurement.floor.Point()
		in.Floor = &pt
	}
	return report.Summarize(in)
}
