// Package drawing turns drawing files (PDF pages and raster images) into
// bitmaps rendered at units.DrawingDPI.
package drawing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/philipparndt/throwplan/pkg/geometry"
)

var (
	// ErrUnsupportedFormat is returned for files no source can read
	ErrUnsupportedFormat = errors.New("unsupported drawing format")
	// ErrPageOutOfRange is returned for a page number outside 1..PageCount
	ErrPageOutOfRange = errors.New("page out of range")
)

// Source produces page bitmaps. Pages are numbered from 1.
type Source interface {
	Name() string
	PageCount(ctx context.Context) (int, error)
	RenderPage(ctx context.Context, page int) (image.Image, error)
	Close() error
}

// Page is a rendered page together with its page-count metadata
type Page struct {
	Image  image.Image
	Number int
	Count  int
	Source string
}

// Size returns the bitmap size in pixels
func (p *Page) Size() geometry.Size {
	b := p.Image.Bounds()
	return geometry.NewSize(float64(b.Dx()), float64(b.Dy()))
}

// Open selects a source by file extension
func Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return OpenPDF(path)
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return NewImageSource(path), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// Load renders one page of a source
func Load(ctx context.Context, src Source, page int) (*Page, error) {
	count, err := src.PageCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pages of %s: %w", src.Name(), err)
	}
	if page < 1 || page > count {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, count)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := src.RenderPage(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", page, src.Name(), err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("render page %d of %s: empty bitmap", page, src.Name())
	}
	return &Page{Image: img, Number: page, Count: count, Source: src.Name()}, nil
}

// LoadFile opens a file, renders one page and closes the source
func LoadFile(ctx context.Context, path string, page int) (*Page, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return Load(ctx, src, page)
}
