package measurement

import (
	"image/color"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/units"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// Label is a text tag drawn on the overlay
type Label struct {
	Text       string
	Pos        geometry.Point
	Color      color.Color
	Background color.Color
}

// LabelBackground is the dark plate behind measurement labels
var LabelBackground = color.NRGBA{20, 20, 20, 220}

// Draw renders the label, counter-rotated so it stays upright on screen
func (l Label) Draw(c *viewer.Canvas, rotation float64) {
	bg := l.Background
	if bg == nil {
		bg = LabelBackground
	}
	fg := l.Color
	if fg == nil {
		fg = color.White
	}
	c.Label(l.Text, l.Pos, rotation, fg, bg)
}

// LineLabel returns the distance label placed at the middle of the line
func LineLabel(l Line, scale units.DrawingScale, unit units.Unit) Label {
	return Label{
		Text:  units.FormatLength(l.LengthFeet(scale), unit),
		Pos:   l.Start.Midpoint(l.End),
		Color: color.NRGBA{255, 220, 0, 255},
	}
}

// FloorLabel returns the "Floor Z" tag shown next to the floor marker
func FloorLabel(f FloorReference, offset float64) Label {
	return Label{
		Text:  "Floor Z",
		Pos:   f.Point().Add(geometry.NewPoint(0, offset)),
		Color: color.NRGBA{120, 220, 255, 255},
	}
}
