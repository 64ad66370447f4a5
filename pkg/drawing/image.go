package drawing

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource is a single-page source backed by a raster image file. The
// pixels are taken as already being at the drawing density.
type ImageSource struct {
	path string
}

// NewImageSource creates a source for an image file
func NewImageSource(path string) *ImageSource {
	return &ImageSource{path: path}
}

func (s *ImageSource) Name() string {
	return filepath.Base(s.path)
}

func (s *ImageSource) PageCount(context.Context) (int, error) {
	return 1, nil
}

func (s *ImageSource) RenderPage(ctx context.Context, page int) (image.Image, error) {
	if page != 1 {
		return nil, fmt.Errorf("%w: page %d of 1", ErrPageOutOfRange, page)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if err == image.ErrFormat {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Name())
		}
		return nil, fmt.Errorf("decode %s: %w", s.Name(), err)
	}
	return img, ctx.Err()
}

func (s *ImageSource) Close() error {
	return nil
}
