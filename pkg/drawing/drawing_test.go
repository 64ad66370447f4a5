package drawing

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})
	path := filepath.Join(t.TempDir(), "plan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_PNG(t *testing.T) {
	path := writePNG(t, 120, 80)
	page, err := LoadFile(context.Background(), path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 1 || page.Number != 1 || page.Source != "plan.png" {
		t.Errorf("page = %+v", page)
	}
	if s := page.Size(); s.Width != 120 || s.Height != 80 {
		t.Errorf("size = %+v", s)
	}
}

func TestLoadFile_PageOutOfRange(t *testing.T) {
	path := writePNG(t, 10, 10)
	_, err := LoadFile(context.Background(), path, 2)
	if !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("error = %v, want ErrPageOutOfRange", err)
	}
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	_, err := Open("plan.dwg")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadFile_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(context.Background(), path, 1); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	path := writePNG(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadFile(ctx, path, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
