package report

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// WritePNG encodes a composite image
func WritePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("no image to export")
	}
	return png.Encode(w, img)
}

// SavePNG writes a composite image to a file
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
