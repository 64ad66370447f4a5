// Package projector holds the projector/screen data model and the ordered
// registry of units placed on a drawing.
package projector

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/throwplan/pkg/geometry"
)

// ViewMode selects which set of positions is active
type ViewMode string

const (
	Plan    ViewMode = "plan"
	Section ViewMode = "section"
)

// ParseViewMode maps a name to a ViewMode
func ParseViewMode(name string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plan", "top":
		return Plan, nil
	case "section", "side", "elevation":
		return Section, nil
	}
	return Plan, fmt.Errorf("unknown view mode %q", name)
}

// Placement is a projector and its screen in one view
type Placement struct {
	Projector geometry.Point `json:"projector"`
	Screen    geometry.Point `json:"screen"`
}

// Offset moves both points by d
func (p Placement) Offset(d geometry.Point) Placement {
	return Placement{Projector: p.Projector.Add(d), Screen: p.Screen.Add(d)}
}

// Placements keeps plan and section positions independent of each other
type Placements struct {
	Plan    Placement `json:"plan"`
	Section Placement `json:"section"`
}

// For returns the placement for a view mode
func (p Placements) For(mode ViewMode) Placement {
	if mode == Section {
		return p.Section
	}
	return p.Plan
}

// Set replaces the placement for a view mode
func (p *Placements) Set(mode ViewMode, placement Placement) {
	if mode == Section {
		p.Section = placement
		return
	}
	p.Plan = placement
}

// Handle identifies one of the two draggable points of a unit
type Handle int

const (
	HandleProjector Handle = iota
	HandleScreen
)

func (h Handle) String() string {
	if h == HandleScreen {
		return "screen"
	}
	return "projector"
}

// LensType is fixed or zoom
type LensType string

const (
	LensFixed LensType = "fixed"
	LensZoom  LensType = "zoom"
)

// Aspect is the native image aspect ratio
type Aspect string

const (
	Aspect16x9  Aspect = "16:9"
	Aspect16x10 Aspect = "16:10"
	Aspect4x3   Aspect = "4:3"
)

// Aspects lists the supported aspect ratios
var Aspects = []Aspect{Aspect16x9, Aspect16x10, Aspect4x3}

// HeightPerWidth returns image height divided by image width
func (a Aspect) HeightPerWidth() float64 {
	switch a {
	case Aspect16x10:
		return 10.0 / 16.0
	case Aspect4x3:
		return 3.0 / 4.0
	default:
		return 9.0 / 16.0
	}
}

// Valid reports whether a is a supported aspect
func (a Aspect) Valid() bool {
	for _, v := range Aspects {
		if v == a {
			return true
		}
	}
	return false
}

// Limits on the per-unit optics fields
const (
	MaxLensShift = 100.0
	MaxYaw       = 45.0
)

// Unit is one projector and its screen
type Unit struct {
	ID            int        `json:"id"`
	Positions     Placements `json:"positions"`
	ThrowRatio    float64    `json:"throwRatio"`
	ThrowRatioMin float64    `json:"throwRatioMin"`
	ThrowRatioMax float64    `json:"throwRatioMax"`
	Lens          LensType   `json:"lensType"`
	ShiftH        float64    `json:"lensShiftHorizontal"`
	ShiftV        float64    `json:"lensShiftVertical"`
	Lumens        float64    `json:"lumens"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	YawDegrees    float64    `json:"screenYaw"`
	Aspect        Aspect     `json:"aspectRatio"`
}

// Name returns "brand model" or a fallback label
func (u Unit) Name() string {
	name := strings.TrimSpace(u.Brand + " " + u.Model)
	if name == "" {
		return fmt.Sprintf("Projector %d", u.ID)
	}
	return name
}

// Point returns the position of one handle in a view
func (u Unit) Point(mode ViewMode, h Handle) geometry.Point {
	p := u.Positions.For(mode)
	if h == HandleScreen {
		return p.Screen
	}
	return p.Projector
}

// SetPoint moves one handle in one view
func (u *Unit) SetPoint(mode ViewMode, h Handle, pt geometry.Point) {
	p := u.Positions.For(mode)
	if h == HandleScreen {
		p.Screen = pt
	} else {
		p.Projector = pt
	}
	u.Positions.Set(mode, p)
}

// Normalize enforces the lens invariants: a fixed lens has min = max =
// ratio, a zoom lens keeps the ratio inside [min, max]. Shift and yaw are
// clamped to their ranges and non-finite values become zero.
func (u *Unit) Normalize() {
	u.ThrowRatio = finite(u.ThrowRatio)
	u.ThrowRatioMin = finite(u.ThrowRatioMin)
	u.ThrowRatioMax = finite(u.ThrowRatioMax)
	u.Lumens = finite(u.Lumens)

	switch u.Lens {
	case LensZoom:
		if u.ThrowRatioMin > u.ThrowRatioMax {
			u.ThrowRatioMin, u.ThrowRatioMax = u.ThrowRatioMax, u.ThrowRatioMin
		}
		u.ThrowRatio = geometry.Clamp(u.ThrowRatio, u.ThrowRatioMin, u.ThrowRatioMax)
	default:
		u.Lens = LensFixed
		u.ThrowRatioMin = u.ThrowRatio
		u.ThrowRatioMax = u.ThrowRatio
	}

	u.ShiftH = geometry.Clamp(finite(u.ShiftH), -MaxLensShift, MaxLensShift)
	u.ShiftV = geometry.Clamp(finite(u.ShiftV), -MaxLensShift, MaxLensShift)
	u.YawDegrees = geometry.Clamp(finite(u.YawDegrees), -MaxYaw, MaxYaw)
	if !u.Aspect.Valid() {
		u.Aspect = Aspect16x9
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Defaults are the parameters given to newly added units
type Defaults struct {
	ThrowRatio    float64  `yaml:"throw_ratio" toml:"throw_ratio"`
	ThrowRatioMin float64  `yaml:"throw_ratio_min" toml:"throw_ratio_min"`
	ThrowRatioMax float64  `yaml:"throw_ratio_max" toml:"throw_ratio_max"`
	Lens          LensType `yaml:"lens_type" toml:"lens_type"`
	Lumens        float64  `yaml:"lumens" toml:"lumens"`
	Aspect        Aspect   `yaml:"aspect" toml:"aspect"`
	Brand         string   `yaml:"brand" toml:"brand"`
	Model         string   `yaml:"model" toml:"model"`
}

// DefaultDefaults returns the built-in parameters for new units
func DefaultDefaults() Defaults {
	return Defaults{
		ThrowRatio:    1.5,
		ThrowRatioMin: 1.5,
		ThrowRatioMax: 1.5,
		Lens:          LensFixed,
		Lumens:        5000,
		Aspect:        Aspect16x9,
	}
}

// Default placement of the first unit; later units are offset in x
var (
	DefaultProjector = geometry.NewPoint(200, 400)
	DefaultScreen    = geometry.NewPoint(600, 400)
)

// OffsetStep separates the default positions of successive units
const OffsetStep = 50.0

// NewUnit creates a unit with default parameters. Its positions are offset
// by OffsetStep*(id-1) pixels in x in both views so new units never sit
// exactly on top of the first one.
func NewUnit(id int, d Defaults) Unit {
	base := Placement{Projector: DefaultProjector, Screen: DefaultScreen}
	placement := base.Offset(geometry.NewPoint(OffsetStep*float64(id-1), 0))
	u := Unit{
		ID:            id,
		Positions:     Placements{Plan: placement, Section: placement},
		ThrowRatio:    d.ThrowRatio,
		ThrowRatioMin: d.ThrowRatioMin,
		ThrowRatioMax: d.ThrowRatioMax,
		Lens:          d.Lens,
		Lumens:        d.Lumens,
		Brand:         d.Brand,
		Model:         d.Model,
		Aspect:        d.Aspect,
	}
	u.Normalize()
	return u
}
