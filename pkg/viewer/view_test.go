package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/throwplan/pkg/geometry"
)

const epsilon = 1e-9

func pointsEqual(a, b geometry.Point, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func newTestView(t *testing.T) *View {
	t.Helper()
	v := NewView(geometry.NewSize(800, 600), DefaultMaxZoom)
	v.SetDrawing(geometry.NewSize(1000, 800))
	return v
}

func TestMinZoomFitsRotatedDrawing(t *testing.T) {
	v := newTestView(t)
	if math.Abs(v.MinZoom-0.75) > epsilon {
		t.Errorf("MinZoom at 0 = %v, want 0.75", v.MinZoom)
	}
	if v.Zoom != v.MinZoom {
		t.Errorf("new drawing should be fitted, zoom = %v", v.Zoom)
	}

	v.Rotate(90)
	// effective 800x1000 in a 800x600 viewport
	if math.Abs(v.MinZoom-0.6) > epsilon {
		t.Errorf("MinZoom at 90 = %v, want 0.6", v.MinZoom)
	}
}

func TestRecomputeMinZoomSnapsUp(t *testing.T) {
	v := newTestView(t)
	v.Rotate(90)
	v.Fit()
	v.Pan = geometry.NewPoint(5, 5)

	// Back to 0 degrees: min zoom rises from 0.6 to 0.75
	v.Rotate(-90)
	if math.Abs(v.Zoom-0.75) > epsilon {
		t.Errorf("zoom = %v, want snap to 0.75", v.Zoom)
	}
	if v.Pan != (geometry.Point{}) {
		t.Errorf("pan = %v, want reset to origin", v.Pan)
	}
}

func TestRoundTrip(t *testing.T) {
	points := []geometry.Point{
		{X: 0, Y: 0},
		{X: 1000, Y: 800},
		{X: 123.4, Y: 567.8},
		{X: 500, Y: 400},
	}
	pans := []geometry.Point{{}, {X: 1e6, Y: -1e6}, {X: -37, Y: 12}}

	for _, rot := range []float64{0, 90, 180, 270} {
		v := newTestView(t)
		v.SetRotation(rot)
		for _, zoom := range []float64{v.MinZoom, 1, 2.5, 4} {
			for _, pan := range pans {
				v.SetZoom(zoom)
				v.Pan = v.ClampPan(pan, v.Zoom)
				for _, p := range points {
					got := v.ScreenToDrawing(v.DrawingToScreen(p))
					if !pointsEqual(got, p, 1e-6) {
						t.Errorf("rot=%v zoom=%v pan=%v: round trip %v -> %v", rot, zoom, v.Pan, p, got)
					}
				}
			}
		}
	}
}

func TestMatrixMatchesPointwise(t *testing.T) {
	v := newTestView(t)
	for _, rot := range []float64{0, 90, 180, 270} {
		v.SetRotation(rot)
		v.SetZoom(2)
		v.PanBy(geometry.NewPoint(-90, 40))
		m := v.Matrix()
		for _, p := range []geometry.Point{{X: 10, Y: 20}, {X: 900, Y: 700}} {
			want := v.DrawingToScreen(p)
			got := geometry.NewPoint(m[0]*p.X+m[2]*p.Y+m[4], m[1]*p.X+m[3]*p.Y+m[5])
			if !pointsEqual(got, want, 1e-6) {
				t.Errorf("rot=%v: matrix maps %v to %v, want %v", rot, p, got, want)
			}
		}
	}
}

func TestDrawingCenterAtViewportCenter(t *testing.T) {
	v := newTestView(t)
	for _, rot := range []float64{0, 90, 180, 270} {
		v.SetRotation(rot)
		got := v.DrawingToScreen(v.Drawing.Half())
		if !pointsEqual(got, v.Viewport.Half(), epsilon) {
			t.Errorf("rot=%v: center maps to %v", rot, got)
		}
	}
}

func TestClampPanIdempotent(t *testing.T) {
	v := newTestView(t)
	candidates := []geometry.Point{{X: 0, Y: 0}, {X: 1e9, Y: -1e9}, {X: 33, Y: -12}, {X: -400, Y: 400}}
	for _, zoom := range []float64{0.1, 0.75, 1, 2, 4} {
		for _, c := range candidates {
			once := v.ClampPan(c, zoom)
			twice := v.ClampPan(once, zoom)
			if once != twice {
				t.Errorf("zoom=%v: clamp(%v)=%v, clamp again=%v", zoom, c, once, twice)
			}
		}
	}
}

func TestClampPanLocksSmallAxis(t *testing.T) {
	v := newTestView(t)
	// At zoom 0.75 the drawing is 750x600 in an 800x600 viewport
	got := v.ClampPan(geometry.NewPoint(50, 50), 0.75)
	if got != (geometry.Point{}) {
		t.Errorf("pan = %v, want locked at zero", got)
	}

	// At zoom 2: 2000x1600 scaled, max pan = (2000-800)/2/2 = 300, (1600-600)/2/2 = 250
	got = v.ClampPan(geometry.NewPoint(1000, -1000), 2)
	if !pointsEqual(got, geometry.NewPoint(300, -250), epsilon) {
		t.Errorf("pan = %v, want (300,-250)", got)
	}
}

func TestPanKeepsViewportCovered(t *testing.T) {
	v := newTestView(t)
	v.SetZoom(2)
	v.PanBy(geometry.NewPoint(1e5, 1e5))

	// The drawing's top-left corner may reach but never pass the viewport's top-left
	corner := v.DrawingToScreen(geometry.NewPoint(0, 0))
	if corner.X > epsilon || corner.Y > epsilon {
		t.Errorf("top-left corner at %v, drawing no longer covers viewport", corner)
	}
}

func TestZoomBounds(t *testing.T) {
	v := newTestView(t)
	v.ZoomBy(100)
	if v.Zoom != DefaultMaxZoom {
		t.Errorf("zoom = %v, want max %v", v.Zoom, DefaultMaxZoom)
	}
	v.ZoomBy(0.0001)
	if v.Zoom != v.MinZoom {
		t.Errorf("zoom = %v, want min %v", v.Zoom, v.MinZoom)
	}
}

func TestUpperZoomNeverBelowMin(t *testing.T) {
	v := NewView(geometry.NewSize(800, 600), DefaultMaxZoom)
	v.SetDrawing(geometry.NewSize(50, 40))
	if v.MinZoom <= DefaultMaxZoom {
		t.Fatalf("test drawing should need more than max zoom to fit, got %v", v.MinZoom)
	}
	v.ZoomBy(2)
	if v.Zoom != v.MinZoom {
		t.Errorf("zoom = %v, want pinned at %v", v.Zoom, v.MinZoom)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := newTestView(t)
	v.SetZoom(1.5)
	screen := geometry.NewPoint(420, 310)
	before := v.ScreenToDrawing(screen)
	v.ZoomAt(screen, 1.5)
	after := v.ScreenToDrawing(screen)
	if !pointsEqual(before, after, 1e-6) {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
}

func TestPinch(t *testing.T) {
	v := newTestView(t)
	v.SetZoom(1)
	v.BeginPinch(geometry.NewPoint(300, 300), geometry.NewPoint(400, 300))
	v.UpdatePinch(geometry.NewPoint(250, 300), geometry.NewPoint(450, 300))
	if math.Abs(v.Zoom-2) > epsilon {
		t.Errorf("zoom = %v, want 2", v.Zoom)
	}

	v.UpdatePinch(geometry.NewPoint(270, 300), geometry.NewPoint(470, 300))
	if math.Abs(v.Pan.X-10) > epsilon {
		t.Errorf("pan = %v, want x=10 after midpoint moved 20px at zoom 2", v.Pan)
	}

	v.EndPinch()
	if v.Pinching() {
		t.Error("pinch should have ended")
	}
}

func TestNotReadyIsNoOp(t *testing.T) {
	v := NewView(geometry.NewSize(800, 600), DefaultMaxZoom)
	if v.Ready() {
		t.Fatal("view without drawing should not be ready")
	}
	if got := v.ScreenToDrawing(geometry.NewPoint(10, 10)); got != (geometry.Point{}) {
		t.Errorf("ScreenToDrawing = %v, want zero", got)
	}
	v.PanBy(geometry.NewPoint(10, 10))
	v.ZoomBy(2)
	if v.Pan != (geometry.Point{}) || v.Zoom != 1 {
		t.Errorf("state changed before drawing load: pan=%v zoom=%v", v.Pan, v.Zoom)
	}
}
