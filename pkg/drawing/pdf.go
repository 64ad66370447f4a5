package drawing

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/philipparndt/throwplan/pkg/units"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/converter"
	"seehuhn.de/go/pdf/pagetree"
)

// PDFSource rasterizes PDF pages at units.DrawingDPI
type PDFSource struct {
	path string

	mu     sync.Mutex
	reader *pdf.Reader
	pages  int
}

// OpenPDF opens a PDF file for rendering
func OpenPDF(path string) (*PDFSource, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	n, err := pagetree.NumPages(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("read page tree of %s: %w", filepath.Base(path), err)
	}
	return &PDFSource{path: path, reader: r, pages: n}, nil
}

func (s *PDFSource) Name() string {
	return filepath.Base(s.path)
}

func (s *PDFSource) PageCount(context.Context) (int, error) {
	return s.pages, nil
}

// RenderPage rasterizes one page. The reader is not safe for concurrent
// use, so renders are serialized.
func (s *PDFSource) RenderPage(ctx context.Context, page int) (image.Image, error) {
	if page < 1 || page > s.pages {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, s.pages)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader == nil {
		return nil, fmt.Errorf("%s is closed", s.Name())
	}
	return converter.NewConverter(s.reader).RenderPageToImage(page, units.DrawingDPI)
}

func (s *PDFSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}
