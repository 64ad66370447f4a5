package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Canvas is an anti-aliased raster surface in drawing pixels
type Canvas struct {
	Img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
}

// NewCanvas creates a transparent canvas of the given pixel size
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		Img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
	}
}

// Clear resets every pixel to transparent
func (c *Canvas) Clear() {
	draw.Draw(c.Img, c.Img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func toFixed(p geometry.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X, p.Y)
}

// FillPolygon fills a closed polygon
func (c *Canvas) FillPolygon(pts []geometry.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.filler.Clear()
	c.filler.SetColor(col)
	c.filler.Start(toFixed(pts[0]))
	for _, p := range pts[1:] {
		c.filler.Line(toFixed(p))
	}
	c.filler.Stop(true)
	c.filler.Draw()
}

// StrokePolyline strokes a sequence of points. A non-empty dash pattern
// (alternating on/off lengths in pixels) draws a dashed line.
func (c *Canvas) StrokePolyline(pts []geometry.Point, width float64, col color.Color, dashes []float64, closed bool) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, dashes, 0)
	c.dasher.SetColor(col)
	c.dasher.Start(toFixed(pts[0]))
	for _, p := range pts[1:] {
		c.dasher.Line(toFixed(p))
	}
	c.dasher.Stop(closed)
	c.dasher.Draw()
}

// StrokeLine strokes a single segment
func (c *Canvas) StrokeLine(a, b geometry.Point, width float64, col color.Color, dashes []float64) {
	c.StrokePolyline([]geometry.Point{a, b}, width, col, dashes, false)
}

// FillCircle fills a disc
func (c *Canvas) FillCircle(center geometry.Point, radius float64, col color.Color) {
	if radius <= 0 {
		return
	}
	c.filler.Clear()
	c.filler.SetColor(col)
	rasterx.AddCircle(center.X, center.Y, radius, c.filler)
	c.filler.Draw()
}

// StrokeCircle draws a circle outline
func (c *Canvas) StrokeCircle(center geometry.Point, radius, width float64, col color.Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	c.dasher.Clear()
	c.dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	c.dasher.SetColor(col)
	rasterx.AddCircle(center.X, center.Y, radius, c.dasher)
	c.dasher.Draw()
}

// Label draws text centered on a point. The text is pre-rotated by
// -rotation so it reads upright once the canvas is shown rotated.
func (c *Canvas) Label(text string, at geometry.Point, rotation float64, fg, bg color.Color) {
	if text == "" {
		return
	}
	tile := renderLabel(text, fg, bg)
	tile = rotateQuarter(tile, -rotation)

	b := tile.Bounds()
	origin := image.Pt(int(at.X)-b.Dx()/2, int(at.Y)-b.Dy()/2)
	draw.Draw(c.Img, b.Add(origin), tile, image.Point{}, draw.Over)
}

const labelPadding = 3

// renderLabel draws text on a padded background tile
func renderLabel(text string, fg, bg color.Color) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil() + 2*labelPadding
	height := face.Metrics().Height.Ceil() + 2*labelPadding

	tile := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(tile, tile.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	d := &font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(labelPadding, labelPadding+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return tile
}

// rotateQuarter rotates an image by a multiple of 90 degrees using exact
// pixel transposes. Other angles are snapped to the nearest quarter turn.
func rotateQuarter(src *image.RGBA, degrees float64) *image.RGBA {
	turn := int(geometry.NormalizeDegrees(degrees)+45) / 90 % 4
	if turn == 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if turn == 2 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
			switch turn {
			case 1: // (x, y) -> (-y, x)
				dst.SetRGBA(h-1-y, x, px)
			case 2:
				dst.SetRGBA(w-1-x, h-1-y, px)
			case 3: // (x, y) -> (y, -x)
				dst.SetRGBA(y, w-1-x, px)
			}
		}
	}
	return dst
}
