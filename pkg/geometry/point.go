package geometry

import "math"

// Point represents a 2D point or vector in drawing pixels
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Div divides the point by a scalar. Division by zero yields the zero point.
func (p Point) Div(scalar float64) Point {
	if scalar == 0 {
		return Point{}
	}
	return Point{X: p.X / scalar, Y: p.Y / scalar}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Angle returns the direction of the vector in radians (atan2)
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Normalize returns a unit vector in the same direction
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return p.Mul(1.0 / length)
}

// Perp returns the vector rotated by +90 degrees
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// Rotate rotates the vector about the origin by the given angle in radians
// using the standard 2D rotation matrix.
func (p Point) Rotate(radians float64) Point {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// RotateDegrees rotates the vector about the origin by the given angle in
// degrees. Quarter turns are computed exactly so that 90/180/270 rotations
// round-trip without floating-point drift.
func (p Point) RotateDegrees(degrees float64) Point {
	switch NormalizeDegrees(degrees) {
	case 0:
		return p
	case 90:
		return Point{X: -p.Y, Y: p.X}
	case 180:
		return Point{X: -p.X, Y: -p.Y}
	case 270:
		return Point{X: p.Y, Y: -p.X}
	}
	return p.Rotate(degrees * math.Pi / 180)
}

// Clamp clamps both coordinates into the given rectangle
func (p Point) Clamp(min, max Point) Point {
	return Point{
		X: Clamp(p.X, min.X, max.X),
		Y: Clamp(p.Y, min.Y, max.Y),
	}
}

// IsFinite reports whether both coordinates are finite numbers
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// NormalizeDegrees maps an angle into [0, 360)
func NormalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Clamp restricts v to [lo, hi]. If lo > hi the midpoint is returned.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
