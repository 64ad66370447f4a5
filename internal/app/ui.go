package app

import (
	"fmt"

	"github.com/philipparndt/throwplan/pkg/projection"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

// NotAvailable is shown for figures that cannot be computed
const NotAvailable = "N/A"

// Readout is what the side panel shows for the selected unit
type Readout struct {
	Ready      bool
	SelectedID int
	Name       string
	ViewMode   projector.ViewMode
	Scale      string
	Unit       units.Unit

	Metrics     projection.Metrics
	Throw       string
	Ratio       string
	ImageWidth  string
	ImageHeight string
	Brightness  string

	// Hanging height exists in section view with a visible floor marker
	HasHangingHeight  bool
	HangingHeightFeet float64
	HangingHeight     string

	HasMeasurement bool
	MeasuredFeet   float64
	Measured       string

	Zoom     float64
	Rotation float64
}

func (p *Planner) buildReadout() Readout {
	u := p.registry.Selected()
	unit := p.Mode.displayUnit
	r := Readout{
		Ready:      p.Ready(),
		SelectedID: u.ID,
		Name:       u.Name(),
		ViewMode:   p.Mode.viewMode,
		Scale:      p.Mode.scale.String(),
		Unit:       unit,
		Zoom:       p.view.Zoom,
		Rotation:   p.view.Rotation,
	}

	if r.Ready {
		r.Metrics = projection.Compute(u, p.Mode.viewMode, p.Mode.scale)
	}
	r.Throw = units.FormatLength(r.Metrics.ThrowFeet, unit)
	r.Ratio = fmt.Sprintf("%.2f:1", u.ThrowRatio)
	r.ImageWidth = units.FormatLength(r.Metrics.ImageWidthFeet, unit)
	r.ImageHeight = units.FormatLength(r.Metrics.ImageHeightFeet, unit)
	r.Brightness = FormatBrightness(r.Metrics)

	if h, ok := p.hangingHeight(u); ok {
		r.HasHangingHeight = true
		r.HangingHeightFeet = h
		r.HangingHeight = units.FormatLength(h, unit)
	}
	if l, ok := p.MeasureLine(); ok && r.Ready {
		r.HasMeasurement = true
		r.MeasuredFeet = l.LengthFeet(p.Mode.scale)
		r.Measured = units.FormatLength(r.MeasuredFeet, unit)
	}
	return r
}

// hangingHeight is only defined in section view with an active floor marker
func (p *Planner) hangingHeight(u projector.Unit) (float64, bool) {
	if p.Mode.viewMode != projector.Section || !p.Measurement.floor.Active() || !p.Ready() {
		return 0, false
	}
	return p.HangingHeightOf(u), true
}

// HangingHeightOf computes the hanging height of any unit from its section
// position, regardless of the active view. Callers check Floor().Active().
func (p *Planner) HangingHeightOf(u projector.Unit) float64 {
	return projection.HangingHeight(
		u.Point(projector.Section, projector.HandleProjector),
		p.Measurement.floor.Point(),
		p.Drawing.size,
		p.view.Rotation,
		p.Mode.scale,
	)
}

// FormatBrightness formats foot-lamberts or N/A
func FormatBrightness(m projection.Metrics) string {
	if !m.BrightnessOK {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f fL", m.FootLamberts)
}
