package viewer

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Background is the color shown around the drawing in the viewport
var Background = color.RGBA{60, 60, 60, 255}

// Composite renders drawing-space layers (base page first, overlay last)
// into a viewport-sized image using the view matrix. Hit testing uses the
// same mapping pointwise, so what is drawn is what can be grabbed.
func (v *View) Composite(layers ...image.Image) *image.RGBA {
	w, h := int(v.Viewport.Width), int(v.Viewport.Height)
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	if !v.Ready() {
		return dst
	}

	s2d := v.Aff3()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		xdraw.ApproxBiLinear.Transform(dst, s2d, layer, layer.Bounds(), xdraw.Over, nil)
	}
	return dst
}

// Flatten stacks drawing-space layers at the drawing's native pixel size,
// without any view transform. Used for exports.
func Flatten(size image.Rectangle, layers ...image.Image) *image.RGBA {
	dst := image.NewRGBA(size)
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		draw.Draw(dst, dst.Bounds(), layer, layer.Bounds().Min, draw.Over)
	}
	return dst
}
