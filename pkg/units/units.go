// Package units converts between drawing pixels, drawing scales and
// real-world lengths.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DrawingDPI is the rasterization density (pixels per drawing inch) used when
// a drawing page is rendered to a bitmap. Every pixel-to-length conversion
// depends on it, so drawing sources must rasterize at exactly this density.
const DrawingDPI = 108.0

// ErrInvalidScale is returned when a custom scale is non-positive or not a number
var ErrInvalidScale = errors.New("invalid drawing scale")

// FallbackFeetPerInch is used whenever a scale cannot be resolved
const FallbackFeetPerInch = 1.0

// ScaleMode selects how a DrawingScale resolves to feet per inch
type ScaleMode string

const (
	ScaleModePreset ScaleMode = "architect"
	ScaleModeCustom ScaleMode = "custom"
)

// DrawingScale is either a named preset or a custom feet-per-inch value
type DrawingScale struct {
	Mode        ScaleMode `json:"mode" yaml:"mode"`
	Preset      string    `json:"preset,omitempty" yaml:"preset,omitempty"`
	FeetPerInch float64   `json:"feetPerInch,omitempty" yaml:"feet_per_inch,omitempty"`
}

// PresetScale returns a DrawingScale for a named preset
func PresetScale(name string) DrawingScale {
	return DrawingScale{Mode: ScaleModePreset, Preset: name}
}

// CustomScale returns a DrawingScale with an explicit feet-per-inch value
func CustomScale(feetPerInch float64) DrawingScale {
	return DrawingScale{Mode: ScaleModeCustom, FeetPerInch: feetPerInch}
}

// String returns a human readable form of the scale
func (s DrawingScale) String() string {
	if s.Mode == ScaleModeCustom {
		return fmt.Sprintf("1\" = %s'", strconv.FormatFloat(s.FeetPerInch, 'f', -1, 64))
	}
	return s.Preset
}

// Resolve returns the feet-per-inch value of the scale, or ErrInvalidScale
// together with the fallback value when the scale cannot be resolved.
func Resolve(s DrawingScale) (float64, error) {
	switch s.Mode {
	case ScaleModeCustom:
		v := s.FeetPerInch
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return FallbackFeetPerInch, fmt.Errorf("%w: custom value %v", ErrInvalidScale, v)
		}
		return v, nil
	default:
		p, ok := LookupPreset(s.Preset)
		if !ok {
			return FallbackFeetPerInch, fmt.Errorf("%w: unknown preset %q", ErrInvalidScale, s.Preset)
		}
		return p.FeetPerInch, nil
	}
}

// FeetPerInch resolves the scale, falling back to 1.0 when it is invalid
func FeetPerInch(s DrawingScale) float64 {
	v, _ := Resolve(s)
	return v
}

// PixelsToFeet converts a distance on the rasterized drawing to real-world feet
func PixelsToFeet(distancePx float64, s DrawingScale) float64 {
	return (distancePx / DrawingDPI) * FeetPerInch(s)
}

// FeetToPixels converts a real-world distance in feet to drawing pixels
func FeetToPixels(feet float64, s DrawingScale) float64 {
	return feet / FeetPerInch(s) * DrawingDPI
}

// Unit is a display length unit
type Unit string

const (
	Feet        Unit = "feet"
	Inches      Unit = "inches"
	Meters      Unit = "meters"
	Centimeters Unit = "cm"
)

// AllUnits lists the supported display units
var AllUnits = []Unit{Feet, Inches, Meters, Centimeters}

// ParseUnit maps a user supplied name to a Unit
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ft", "feet", "foot", "'":
		return Feet, nil
	case "in", "inch", "inches", "\"":
		return Inches, nil
	case "m", "meter", "meters", "metre", "metres":
		return Meters, nil
	case "cm", "centimeter", "centimeters", "centimetre", "centimetres":
		return Centimeters, nil
	}
	return Feet, fmt.Errorf("unknown unit %q", name)
}

// Suffix returns the label appended to formatted lengths
func (u Unit) Suffix() string {
	switch u {
	case Inches:
		return "in"
	case Meters:
		return "m"
	case Centimeters:
		return "cm"
	default:
		return "ft"
	}
}

// FromFeet converts a length in feet into the unit
func (u Unit) FromFeet(feet float64) float64 {
	switch u {
	case Inches:
		return feet * 12
	case Meters:
		return feet * 0.3048
	case Centimeters:
		return feet * 30.48
	default:
		return feet
	}
}

// ToFeet converts a length in the unit into feet
func (u Unit) ToFeet(v float64) float64 {
	switch u {
	case Inches:
		return v / 12
	case Meters:
		return v / 0.3048
	case Centimeters:
		return v / 30.48
	default:
		return v
	}
}

// decimals returns the display precision of the unit
func (u Unit) decimals() int {
	switch u {
	case Inches, Centimeters:
		return 1
	default:
		return 2
	}
}

// FormatLength renders a length given in feet in the requested unit
func FormatLength(feet float64, u Unit) string {
	if math.IsNaN(feet) || math.IsInf(feet, 0) {
		feet = 0
	}
	return fmt.Sprintf("%.*f %s", u.decimals(), u.FromFeet(feet), u.Suffix())
}

// ParseNumber parses a numeric form field. Malformed input is coerced to 0 so
// that a half-typed value never interrupts the live calculation.
func ParseNumber(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
