// Package projection derives throw distance, image size, brightness, beam
// geometry and hanging height for projector units.
//
// Every function degrades numerically: a zero throw distance, zero image
// area or non-positive lumens yields zeros and an ok flag of false, never
// NaN or Inf.
package projection

import (
	"math"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

// Metrics are the real-world figures of one unit in one view
type Metrics struct {
	ThrowPx         float64
	ThrowFeet       float64
	ThrowRatio      float64
	ImageWidthFeet  float64
	ImageHeightFeet float64
	// FootLamberts is only meaningful when BrightnessOK is true
	FootLamberts float64
	BrightnessOK bool
}

// HasImage reports whether the unit projects an image of non-zero size
func (m Metrics) HasImage() bool {
	return m.ImageWidthFeet > 0 && m.ImageHeightFeet > 0
}

// Compute derives the metrics of a unit from its positions in the given view
func Compute(u projector.Unit, mode projector.ViewMode, scale units.DrawingScale) Metrics {
	p := u.Positions.For(mode)
	m := Metrics{ThrowRatio: u.ThrowRatio}
	m.ThrowPx = p.Projector.Distance(p.Screen)
	if m.ThrowPx == 0 || !isFinite(m.ThrowPx) {
		m.ThrowPx = 0
		return m
	}
	m.ThrowFeet = units.PixelsToFeet(m.ThrowPx, scale)
	m.ImageWidthFeet = ImageWidthFor(m.ThrowFeet, u.ThrowRatio)
	m.ImageHeightFeet = m.ImageWidthFeet * u.Aspect.HeightPerWidth()
	m.FootLamberts, m.BrightnessOK = Brightness(u.Lumens, m.ImageWidthFeet, m.ImageHeightFeet)
	return m
}

// ImageWidthFor returns throw / ratio, or 0 for a non-positive ratio
func ImageWidthFor(throwFeet, ratio float64) float64 {
	if ratio <= 0 || !isFinite(ratio) || throwFeet <= 0 {
		return 0
	}
	return throwFeet / ratio
}

// Brightness returns lumens per square foot of image (foot-lamberts)
func Brightness(lumens, widthFeet, heightFeet float64) (float64, bool) {
	area := widthFeet * heightFeet
	if area <= 0 || lumens <= 0 || !isFinite(area) || !isFinite(lumens) {
		return 0, false
	}
	return lumens / area, true
}

// Beam is the projected light cone of a unit as drawn on the drawing:
// a triangle from the lens to the two far corners.
type Beam struct {
	Apex    geometry.Point
	Corners [2]geometry.Point
	// Center is the end of the shifted beam center line
	Center geometry.Point

	// Offsets are the perpendicular distances of the two edges from the
	// projector-to-screen axis, Reach their distances along it.
	Offsets [2]float64
	Reach   [2]float64
}

// ComputeBeam derives the beam trapezoid of a unit in the given view. In
// plan view the spread is the image width and horizontal lens shift
// applies; in section view the spread is the image height and vertical
// shift applies. Screen yaw skews the far edge in plan view only.
func ComputeBeam(u projector.Unit, mode projector.ViewMode) (Beam, bool) {
	p := u.Positions.For(mode)
	axis := p.Screen.Sub(p.Projector)
	d := axis.Length()
	if d == 0 || u.ThrowRatio <= 0 || !isFinite(d) || !isFinite(u.ThrowRatio) {
		return Beam{}, false
	}

	spread := d / u.ThrowRatio
	shift := u.ShiftH
	yaw := 0.0
	if mode == projector.Section {
		spread *= u.Aspect.HeightPerWidth()
		shift = u.ShiftV
	} else {
		yaw = u.YawDegrees * math.Pi / 180
	}

	half := spread / 2
	shiftOffset := shift / 100 * spread * 0.5
	tanYaw := math.Tan(yaw)

	b := Beam{Apex: p.Projector}
	b.Offsets = [2]float64{half + shiftOffset, -half + shiftOffset}
	angle := axis.Angle()
	for i, e := range b.Offsets {
		b.Reach[i] = d + e*tanYaw
		b.Corners[i] = p.Projector.Add(geometry.NewPoint(b.Reach[i], e).Rotate(angle))
	}
	b.Center = p.Projector.Add(geometry.NewPoint(d+shiftOffset*tanYaw, shiftOffset).Rotate(angle))
	return b, true
}

// Polygon returns the beam outline apex, corner 0, corner 1
func (b Beam) Polygon() []geometry.Point {
	return []geometry.Point{b.Apex, b.Corners[0], b.Corners[1]}
}

// HangingHeight returns the signed vertical distance in feet from the floor
// marker up to the projector, measured along the current view's vertical
// axis. Both points are taken relative to the drawing center and rotated
// by the view rotation, so the answer matches what the user sees on
// screen. Positive means the projector is above the floor marker.
func HangingHeight(proj, floor geometry.Point, drawing geometry.Size, rotation float64, scale units.DrawingScale) float64 {
	half := drawing.Half()
	projView := proj.Sub(half).RotateDegrees(rotation)
	floorView := floor.Sub(half).RotateDegrees(rotation)
	heightPx := floorView.Y - projView.Y
	return units.PixelsToFeet(heightPx, scale)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
