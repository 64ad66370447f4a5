package geometry

import (
	"math"
	"testing"
)

func TestPointAddSub(t *testing.T) {
	p1 := NewPoint(1, 2)
	p2 := NewPoint(4, 6)

	if got := p1.Add(p2); got != NewPoint(5, 8) {
		t.Errorf("Add failed: expected (5,8), got %v", got)
	}
	if got := p2.Sub(p1); got != NewPoint(3, 4) {
		t.Errorf("Sub failed: expected (3,4), got %v", got)
	}
}

func TestPointDistance(t *testing.T) {
	distance := NewPoint(0, 0).Distance(NewPoint(3, 4))
	if math.Abs(distance-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", distance)
	}
}

func TestPointDivByZero(t *testing.T) {
	if got := NewPoint(3, 4).Div(0); got != (Point{}) {
		t.Errorf("Div by zero should yield zero point, got %v", got)
	}
}

func TestPointNormalize(t *testing.T) {
	n := NewPoint(3, 4).Normalize()
	if math.Abs(n.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", n.Length())
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("Normalize of zero vector should be zero, got %v", got)
	}
}

func TestRotateDegreesQuarterTurnsAreExact(t *testing.T) {
	p := NewPoint(3, -7)
	tests := []struct {
		degrees float64
		want    Point
	}{
		{0, NewPoint(3, -7)},
		{90, NewPoint(7, 3)},
		{180, NewPoint(-3, 7)},
		{270, NewPoint(-7, -3)},
		{-90, NewPoint(-7, -3)},
		{450, NewPoint(7, 3)},
	}
	for _, tt := range tests {
		if got := p.RotateDegrees(tt.degrees); got != tt.want {
			t.Errorf("RotateDegrees(%v) = %v, want %v", tt.degrees, got, tt.want)
		}
	}
}

func TestRotateMatchesMatrixForm(t *testing.T) {
	p := NewPoint(10, 5)
	for _, deg := range []float64{0, 90, 180, 270} {
		exact := p.RotateDegrees(deg)
		approx := p.Rotate(deg * math.Pi / 180)
		if exact.Distance(approx) > 1e-9 {
			t.Errorf("rotation %v: exact %v differs from matrix %v", deg, exact, approx)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp high failed: got %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp low failed: got %v", got)
	}
	if got := Clamp(1, 4, 2); got != 3 {
		t.Errorf("Clamp with inverted range should return midpoint, got %v", got)
	}
}

func TestRectInsetClamp(t *testing.T) {
	r := RectFromSize(NewSize(1000, 800)).Inset(30)
	got := r.ClampPoint(NewPoint(-50, 900))
	want := NewPoint(30, 770)
	if got != want {
		t.Errorf("ClampPoint failed: expected %v, got %v", want, got)
	}
	if !r.Contains(NewPoint(500, 400)) {
		t.Error("Contains failed for center point")
	}
}

func TestBoundsExtend(t *testing.T) {
	b := NewBounds()
	b.Extend(NewPoint(1, 5))
	b.Extend(NewPoint(-2, 3))
	if b.Min != NewPoint(-2, 3) || b.Max != NewPoint(1, 5) {
		t.Errorf("Extend failed: got %v", b)
	}
	if got := b.Size(); got != NewSize(3, 2) {
		t.Errorf("Size failed: got %v", got)
	}
}
