package measurement

import (
	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/units"
)

// Line is the two-point distance tool. It only exists while measure mode
// is on and is never persisted.
type Line struct {
	Start geometry.Point
	End   geometry.Point
}

// Endpoint identifies one end of a Line
type Endpoint int

const (
	EndpointStart Endpoint = iota
	EndpointEnd
)

// DefaultLine spans the middle 40% of the drawing horizontally
func DefaultLine(drawing geometry.Size) Line {
	return Line{
		Start: geometry.NewPoint(drawing.Width*0.3, drawing.Height*0.5),
		End:   geometry.NewPoint(drawing.Width*0.7, drawing.Height*0.5),
	}
}

// LengthPx returns the length of the line in drawing pixels
func (l Line) LengthPx() float64 {
	return l.Start.Distance(l.End)
}

// LengthFeet converts the line length using a drawing scale
func (l Line) LengthFeet(scale units.DrawingScale) float64 {
	return units.PixelsToFeet(l.LengthPx(), scale)
}

// Point returns one endpoint
func (l Line) Point(e Endpoint) geometry.Point {
	if e == EndpointEnd {
		return l.End
	}
	return l.Start
}

// SetPoint moves one endpoint
func (l *Line) SetPoint(e Endpoint, p geometry.Point) {
	if e == EndpointEnd {
		l.End = p
		return
	}
	l.Start = p
}

// FloorReference is the section-view floor marker
type FloorReference struct {
	Position *geometry.Point
	Visible  bool
}

// DefaultFloorPosition is centered horizontally, 80% down the drawing
func DefaultFloorPosition(drawing geometry.Size) geometry.Point {
	return geometry.NewPoint(drawing.Width/2, drawing.Height*0.8)
}

// Toggle flips visibility, placing the marker at its default position the
// first time it is shown.
func (f *FloorReference) Toggle(drawing geometry.Size) {
	f.Visible = !f.Visible
	if f.Visible && f.Position == nil {
		p := DefaultFloorPosition(drawing)
		f.Position = &p
	}
}

// Set places the marker
func (f *FloorReference) Set(p geometry.Point) {
	f.Position = &p
}

// Active reports whether the marker is placed and shown
func (f FloorReference) Active() bool {
	return f.Visible && f.Position != nil
}

// Point returns the marker position, or the zero point if it is unset
func (f FloorReference) Point() geometry.Point {
	if f.Position == nil {
		return geometry.Point{}
	}
	return *f.Position
}
