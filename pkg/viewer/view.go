package viewer

import (
	"math"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"
)

// DefaultMaxZoom is the upper zoom bound used when none is configured
const DefaultMaxZoom = 4.0

// View maps between drawing pixels and viewport pixels.
//
// The forward mapping is
//
//	screen = viewportCenter + Zoom * (Pan + R(Rotation) * (p - drawingCenter))
//
// Pan is measured in drawing pixels along the screen axes, so a screen drag
// of d pixels moves the pan by d/Zoom.
type View struct {
	Pan      geometry.Point
	Zoom     float64
	Rotation float64 // degrees, one of 0, 90, 180, 270
	MinZoom  float64
	MaxZoom  float64

	Viewport geometry.Size
	Drawing  geometry.Size

	pinch *pinchGesture
}

type pinchGesture struct {
	startDistance float64
	startZoom     float64
	lastMidpoint  geometry.Point
}

// NewView creates a view for a viewport of the given size
func NewView(viewport geometry.Size, maxZoom float64) *View {
	if maxZoom <= 0 {
		maxZoom = DefaultMaxZoom
	}
	return &View{
		Zoom:     1,
		MinZoom:  1,
		MaxZoom:  maxZoom,
		Viewport: viewport,
	}
}

// Ready reports whether both the viewport and the drawing have a size.
// Until then every mapping is a no-op.
func (v *View) Ready() bool {
	return !v.Viewport.IsEmpty() && !v.Drawing.IsEmpty()
}

// SetDrawing installs the size of a newly loaded page and fits it
func (v *View) SetDrawing(size geometry.Size) {
	v.Drawing = size
	v.pinch = nil
	v.RecomputeMinZoom()
	v.Fit()
}

// SetViewport updates the viewport size, e.g. after a window resize
func (v *View) SetViewport(size geometry.Size) {
	v.Viewport = size
	v.RecomputeMinZoom()
	v.Pan = v.ClampPan(v.Pan, v.Zoom)
}

// EffectiveDrawing returns the drawing size as it appears after rotation
func (v *View) EffectiveDrawing() geometry.Size {
	if isQuarterOdd(v.Rotation) {
		return v.Drawing.Swapped()
	}
	return v.Drawing
}

// UpperZoom is the largest zoom allowed. It never drops below MinZoom so the
// zoom range is never empty for very small drawings.
func (v *View) UpperZoom() float64 {
	return math.Max(v.MinZoom, v.MaxZoom)
}

// RecomputeMinZoom derives the fit zoom for the rotated drawing. A zoom below
// the new minimum snaps up to it and resets the pan.
func (v *View) RecomputeMinZoom() {
	if !v.Ready() {
		return
	}
	eff := v.EffectiveDrawing()
	v.MinZoom = math.Min(v.Viewport.Width/eff.Width, v.Viewport.Height/eff.Height)
	if v.Zoom < v.MinZoom {
		v.Zoom = v.MinZoom
		v.Pan = geometry.Point{}
	}
}

// ClampPan limits a candidate pan so the scaled drawing covers the viewport
// on every axis where it is larger than the viewport. Axes where the drawing
// is smaller are locked to zero.
func (v *View) ClampPan(candidate geometry.Point, zoom float64) geometry.Point {
	if !v.Ready() || zoom <= 0 {
		return geometry.Point{}
	}
	eff := v.EffectiveDrawing()
	maxX := math.Max(0, (eff.Width*zoom-v.Viewport.Width)/2/zoom)
	maxY := math.Max(0, (eff.Height*zoom-v.Viewport.Height)/2/zoom)
	return geometry.Point{
		X: geometry.Clamp(candidate.X, -maxX, maxX),
		Y: geometry.Clamp(candidate.Y, -maxY, maxY),
	}
}

// ScreenToDrawing maps a viewport point (origin top-left) to drawing pixels
func (v *View) ScreenToDrawing(s geometry.Point) geometry.Point {
	if !v.Ready() {
		return geometry.Point{}
	}
	p := s.Sub(v.Viewport.Half()).Div(v.Zoom).Sub(v.Pan)
	return p.RotateDegrees(-v.Rotation).Add(v.Drawing.Half())
}

// DrawingToScreen maps a drawing pixel to the viewport
func (v *View) DrawingToScreen(p geometry.Point) geometry.Point {
	if !v.Ready() {
		return geometry.Point{}
	}
	r := p.Sub(v.Drawing.Half()).RotateDegrees(v.Rotation)
	return v.Viewport.Half().Add(v.Pan.Add(r).Mul(v.Zoom))
}

// Matrix returns DrawingToScreen as a single affine matrix
func (v *View) Matrix() matrix.Matrix {
	half := v.Drawing.Half()
	center := v.Viewport.Half()
	return matrix.Translate(-half.X, -half.Y).
		Mul(rotation(v.Rotation)).
		Mul(matrix.Translate(v.Pan.X, v.Pan.Y)).
		Mul(matrix.Scale(v.Zoom, v.Zoom)).
		Mul(matrix.Translate(center.X, center.Y))
}

// Aff3 returns the view matrix in the layout used by x/image/draw
func (v *View) Aff3() f64.Aff3 {
	m := v.Matrix()
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// rotation builds an exact quarter-turn rotation matrix
func rotation(degrees float64) matrix.Matrix {
	ex := geometry.NewPoint(1, 0).RotateDegrees(degrees)
	ey := geometry.NewPoint(0, 1).RotateDegrees(degrees)
	return matrix.Matrix{ex.X, ex.Y, ey.X, ey.Y, 0, 0}
}

// SetZoom clamps zoom into range and re-clamps the pan for it
func (v *View) SetZoom(zoom float64) {
	if !v.Ready() || math.IsNaN(zoom) {
		return
	}
	v.Zoom = geometry.Clamp(zoom, v.MinZoom, v.UpperZoom())
	v.Pan = v.ClampPan(v.Pan, v.Zoom)
}

// ZoomBy scales the zoom multiplicatively about the viewport center
func (v *View) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	v.SetZoom(v.Zoom * factor)
}

// ZoomAt scales the zoom while keeping the drawing point under the given
// screen position stationary, as far as the pan bounds allow.
func (v *View) ZoomAt(screen geometry.Point, factor float64) {
	if !v.Ready() || factor <= 0 {
		return
	}
	anchor := v.ScreenToDrawing(screen)
	zoom := geometry.Clamp(v.Zoom*factor, v.MinZoom, v.UpperZoom())
	r := anchor.Sub(v.Drawing.Half()).RotateDegrees(v.Rotation)
	pan := screen.Sub(v.Viewport.Half()).Div(zoom).Sub(r)
	v.Zoom = zoom
	v.Pan = v.ClampPan(pan, zoom)
}

// PanBy moves the drawing by a screen-space delta
func (v *View) PanBy(screenDelta geometry.Point) {
	if !v.Ready() {
		return
	}
	v.Pan = v.ClampPan(v.Pan.Add(screenDelta.Div(v.Zoom)), v.Zoom)
}

// Rotate turns the view by a multiple of 90 degrees
func (v *View) Rotate(degrees float64) {
	v.SetRotation(v.Rotation + degrees)
}

// SetRotation sets an absolute rotation snapped to the nearest quarter turn
func (v *View) SetRotation(degrees float64) {
	v.Rotation = geometry.NormalizeDegrees(math.Round(degrees/90) * 90)
	v.RecomputeMinZoom()
	v.Pan = v.ClampPan(v.Pan, v.Zoom)
}

// Fit zooms out to show the whole drawing centered
func (v *View) Fit() {
	v.Zoom = v.MinZoom
	v.Pan = geometry.Point{}
}

// BeginPinch records the baseline of a two-finger gesture
func (v *View) BeginPinch(a, b geometry.Point) {
	v.pinch = &pinchGesture{
		startDistance: a.Distance(b),
		startZoom:     v.Zoom,
		lastMidpoint:  a.Midpoint(b),
	}
}

// UpdatePinch zooms relative to the gesture baseline and pans by the
// movement of the finger midpoint.
func (v *View) UpdatePinch(a, b geometry.Point) {
	if v.pinch == nil || !v.Ready() {
		return
	}
	if v.pinch.startDistance > 0 {
		ratio := a.Distance(b) / v.pinch.startDistance
		v.Zoom = geometry.Clamp(v.pinch.startZoom*ratio, v.MinZoom, v.UpperZoom())
	}
	mid := a.Midpoint(b)
	delta := mid.Sub(v.pinch.lastMidpoint)
	v.pinch.lastMidpoint = mid
	v.Pan = v.ClampPan(v.Pan.Add(delta.Div(v.Zoom)), v.Zoom)
}

// EndPinch forgets the gesture baseline
func (v *View) EndPinch() {
	v.pinch = nil
}

// Pinching reports whether a two-finger gesture is in progress
func (v *View) Pinching() bool {
	return v.pinch != nil
}

func isQuarterOdd(degrees float64) bool {
	d := geometry.NormalizeDegrees(degrees)
	return d == 90 || d == 270
}
