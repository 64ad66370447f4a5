package projector

import "image/color"

// Color is the fill and stroke pair used to draw a unit
type Color struct {
	Fill   color.NRGBA
	Stroke color.NRGBA
}

const fillAlpha = 56

var palette = []color.NRGBA{
	{59, 130, 246, 255},
	{239, 68, 68, 255},
	{34, 197, 94, 255},
	{245, 158, 11, 255},
	{168, 85, 247, 255},
	{236, 72, 153, 255},
	{6, 182, 212, 255},
	{249, 115, 22, 255},
}

// PaletteSize is the number of distinct unit colors
var PaletteSize = len(palette)

// ColorAt returns the color for a list position. Colors follow position,
// not id, so reordering units changes their colors.
func ColorAt(index int) Color {
	if index < 0 {
		index = -index
	}
	stroke := palette[index%len(palette)]
	fill := stroke
	fill.A = fillAlpha
	return Color{Fill: fill, Stroke: stroke}
}
