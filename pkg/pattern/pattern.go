// Package pattern generates projector alignment test patterns.
package pattern

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/viewer"
)

// Kind selects a pattern
type Kind string

const (
	Grid       Kind = "grid"
	Crosshatch Kind = "crosshatch"
	AspectSafe Kind = "aspect"
	GrayRamp   Kind = "gray-ramp"
)

// Kinds lists every pattern kind
var Kinds = []Kind{Grid, Crosshatch, AspectSafe, GrayRamp}

// Grid and ramp layout
const (
	gridCells  = 16
	rampSteps  = 11
	lineWidth  = 2.0
	circleFrac = 0.45 // centre circle radius as a fraction of the short side
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	gray  = color.RGBA{128, 128, 128, 255}
)

// frameColors per aspect, in the same order as projector.Aspects
var frameColors = []color.RGBA{
	{230, 57, 70, 255},
	{42, 157, 143, 255},
	{233, 196, 106, 255},
}

// ParseKind parses a pattern name
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range Kinds {
		if v == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown pattern %q (want one of %v)", name, Kinds)
}

// Generate renders a pattern at the given pixel size
func Generate(kind Kind, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pattern size must be positive, got %dx%d", width, height)
	}

	c := viewer.NewCanvas(width, height)
	switch kind {
	case Grid:
		fill(c.Img, black)
		drawGrid(c, width, height, white)
		drawCenter(c, width, height, white)
	case Crosshatch:
		fill(c.Img, black)
		drawGrid(c, width, height, gray)
		drawDiagonals(c, width, height, white)
		drawCenter(c, width, height, white)
	case AspectSafe:
		fill(c.Img, black)
		drawAspectFrames(c, width, height)
	case GrayRamp:
		drawRamp(c.Img, width, height)
	default:
		return nil, fmt.Errorf("unknown pattern %q", kind)
	}
	return c.Img, nil
}

func fill(img *image.RGBA, col color.Color) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func drawGrid(c *viewer.Canvas, w, h int, col color.Color) {
	fw, fh := float64(w), float64(h)
	for i := 0; i <= gridCells; i++ {
		x := clampEdge(fw*float64(i)/gridCells, fw)
		c.StrokeLine(geometry.NewPoint(x, 0), geometry.NewPoint(x, fh), lineWidth, col, nil)
		y := clampEdge(fh*float64(i)/gridCells, fh)
		c.StrokeLine(geometry.NewPoint(0, y), geometry.NewPoint(fw, y), lineWidth, col, nil)
	}
}

// clampEdge keeps border lines fully inside the image
func clampEdge(v, limit float64) float64 {
	half := lineWidth / 2
	if v < half {
		return half
	}
	if v > limit-half {
		return limit - half
	}
	return v
}

func drawDiagonals(c *viewer.Canvas, w, h int, col color.Color) {
	fw, fh := float64(w), float64(h)
	c.StrokeLine(geometry.NewPoint(0, 0), geometry.NewPoint(fw, fh), lineWidth, col, nil)
	c.StrokeLine(geometry.NewPoint(fw, 0), geometry.NewPoint(0, fh), lineWidth, col, nil)
}

func drawCenter(c *viewer.Canvas, w, h int, col color.Color) {
	center := geometry.NewPoint(float64(w)/2, float64(h)/2)
	r := float64(min(w, h)) * circleFrac
	c.StrokeCircle(center, r, lineWidth, col)
	c.FillCircle(center, lineWidth*2, col)
}

// drawAspectFrames outlines the largest centred rectangle of each aspect
func drawAspectFrames(c *viewer.Canvas, w, h int) {
	fw, fh := float64(w), float64(h)
	for i, a := range projector.Aspects {
		rw, rh := fw, fw*a.HeightPerWidth()
		if rh > fh {
			rh = fh
			rw = fh / a.HeightPerWidth()
		}
		inset := lineWidth * float64(i+1)
		x0, y0 := (fw-rw)/2+inset, (fh-rh)/2+inset
		x1, y1 := (fw+rw)/2-inset, (fh+rh)/2-inset
		pts := []geometry.Point{
			geometry.NewPoint(x0, y0), geometry.NewPoint(x1, y0),
			geometry.NewPoint(x1, y1), geometry.NewPoint(x0, y1),
		}
		col := frameColors[i%len(frameColors)]
		c.StrokePolyline(pts, lineWidth, col, nil, true)
		c.Label(string(a), geometry.NewPoint(x0+40, y0+14+float64(i)*16), 0, col, black)
	}
}

// drawRamp fills vertical bands stepping from black to white
func drawRamp(img *image.RGBA, w, h int) {
	for i := 0; i < rampSteps; i++ {
		x0 := w * i / rampSteps
		x1 := w * (i + 1) / rampSteps
		v := uint8(255 * i / (rampSteps - 1))
		band := image.Rect(x0, 0, x1, h)
		draw.Draw(img, band, &image.Uniform{C: color.RGBA{v, v, v, 255}}, image.Point{}, draw.Src)
	}
}
