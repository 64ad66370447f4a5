package geometry

import "math"

// Size is a width/height pair in pixels
type Size struct {
	Width  float64
	Height float64
}

// NewSize creates a new size
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// IsEmpty reports whether either dimension is non-positive
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Half returns the center point of a surface of this size
func (s Size) Half() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Swapped returns the size with width and height exchanged
func (s Size) Swapped() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// Rect represents an axis-aligned rectangle
type Rect struct {
	Min Point
	Max Point
}

// NewBounds creates an empty rectangle ready to be extended
func NewBounds() Rect {
	return Rect{
		Min: Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
}

// RectFromSize returns the rectangle [0,0]-[w,h]
func RectFromSize(s Size) Rect {
	return Rect{Max: Point{X: s.Width, Y: s.Height}}
}

// Extend expands the rectangle to include a point
func (r *Rect) Extend(p Point) {
	r.Min = Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)}
	r.Max = Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)}
}

// Size returns the dimensions of the rectangle
func (r Rect) Size() Size {
	return Size{Width: r.Max.X - r.Min.X, Height: r.Max.Y - r.Min.Y}
}

// Center returns the center point of the rectangle
func (r Rect) Center() Point {
	return r.Min.Midpoint(r.Max)
}

// Inset shrinks the rectangle by margin on every side
func (r Rect) Inset(margin float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + margin, Y: r.Min.Y + margin},
		Max: Point{X: r.Max.X - margin, Y: r.Max.Y - margin},
	}
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClampPoint clamps p into the rectangle
func (r Rect) ClampPoint(p Point) Point {
	return p.Clamp(r.Min, r.Max)
}
