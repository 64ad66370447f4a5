package report

import (
	"fmt"
	"image"
	"io"
	"os"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics/color"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
)

// Page layout in PDF points
const (
	pageMargin  = 36.0
	titleSize   = 14.0
	textSize    = 8.0
	lineSpacing = 11.0
)

// Document is the content of a PDF report
type Document struct {
	Title string
	Info  []string    // scale, page and similar header lines
	Image image.Image // composite of drawing and overlay, may be nil
	Lines []string    // one per projector
}

// WritePDF renders the report onto a single landscape A4 page: the title,
// the composite scaled to fit, then the summary lines.
func WritePDF(w io.Writer, doc Document) error {
	paper := &pdf.Rectangle{URx: document.A4.URy, URy: document.A4.URx}
	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}

	helvetica := standard.Helvetica.New()
	y := paper.URy - pageMargin - titleSize

	showLine(page, helvetica, titleSize, y, doc.Title)
	y -= titleSize

	textBlock := lineSpacing * float64(len(doc.Info)+len(doc.Lines)+1)
	if doc.Image != nil {
		b := doc.Image.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			maxW := paper.URx - 2*pageMargin
			maxH := y - pageMargin - textBlock
			width, height := fitInside(float64(b.Dx()), float64(b.Dy()), maxW, maxH)
			if width > 0 && height > 0 {
				y -= height
				img := pdfimage.FromImage(doc.Image, color.SpaceDeviceRGB, 8)
				page.PushGraphicsState()
				page.Transform(matrix.Translate(pageMargin, y))
				page.Transform(matrix.Scale(width, height))
				page.DrawXObject(img)
				page.PopGraphicsState()
				y -= lineSpacing
			}
		}
	}

	for _, line := range append(append([]string{}, doc.Info...), doc.Lines...) {
		y -= lineSpacing
		if y < pageMargin {
			break
		}
		showLine(page, helvetica, textSize, y, line)
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the report to a file
func SavePDF(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// showLine writes one line of text at the left margin. Each line gets its
// own text object so positions are absolute.
func showLine(page *document.Page, f font.Layouter, size, y float64, text string) {
	page.TextBegin()
	page.TextSetFont(f, size)
	page.TextFirstLine(pageMargin, y)
	page.TextShow(text)
	page.TextEnd()
}

// fitInside scales w x h to fit maxW x maxH keeping the aspect ratio
func fitInside(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	s := maxW / w
	if h*s > maxH {
		s = maxH / h
	}
	return w * s, h * s
}
