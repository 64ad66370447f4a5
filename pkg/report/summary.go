// Package report turns planner state into per-projector summary lines, a
// one-page PDF report and composited PNG exports.
package report

import (
	"fmt"
	"strings"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projection"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

// Input is everything a summary needs
type Input struct {
	Units    []projector.Unit
	Mode     projector.ViewMode
	Scale    units.DrawingScale
	Floor    *geometry.Point // section-view floor marker, nil if unset
	Drawing  geometry.Size
	Rotation float64
}

// Summary is the computed report line of one projector
type Summary struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Lumens float64 `json:"lumens"`
	ShiftV float64 `json:"lensShiftVertical"`

	projection.Metrics

	HasHangingHeight  bool    `json:"hasHangingHeight"`
	HangingHeightFeet float64 `json:"hangingHeightFeet"`
}

// Summarize computes one summary per unit in registry order. Throw figures
// use the positions of in.Mode. Hanging height always uses section
// positions and is only present when a floor marker is set. Without a
// drawing the metrics stay zero.
func Summarize(in Input) []Summary {
	out := make([]Summary, 0, len(in.Units))
	for _, u := range in.Units {
		s := Summary{
			ID:     u.ID,
			Name:   u.Name(),
			Lumens: u.Lumens,
			ShiftV: u.ShiftV,
		}
		if in.Drawing.IsEmpty() {
			out = append(out, s)
			continue
		}
		s.Metrics = projection.Compute(u, in.Mode, in.Scale)
		if in.Floor != nil {
			s.HasHangingHeight = true
			s.HangingHeightFeet = projection.HangingHeight(
				u.Point(projector.Section, projector.HandleProjector),
				*in.Floor, in.Drawing, in.Rotation, in.Scale)
		}
		out = append(out, s)
	}
	return out
}

// Line formats a summary as a single line of text
func (s Summary) Line(unit units.Unit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s: throw %s, ratio %.2f:1, image %s x %s, ",
		s.ID, s.Name,
		units.FormatLength(s.ThrowFeet, unit),
		s.ThrowRatio,
		units.FormatLength(s.ImageWidthFeet, unit),
		units.FormatLength(s.ImageHeightFeet, unit))
	if s.BrightnessOK {
		fmt.Fprintf(&b, "%.1f fL", s.FootLamberts)
	} else {
		b.WriteString("N/A fL")
	}
	fmt.Fprintf(&b, ", %.0f lm, v-shift %+.0f%%", s.Lumens, s.ShiftV)
	if s.HasHangingHeight {
		fmt.Fprintf(&b, ", hanging height %s", units.FormatLength(s.HangingHeightFeet, unit))
	}
	return b.String()
}

// Lines formats every summary
func Lines(summaries []Summary, unit units.Unit) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Line(unit)
	}
	return out
}
