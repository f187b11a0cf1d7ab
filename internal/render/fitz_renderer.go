// Package render rasterizes PDF pages to images via MuPDF.
package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"slidetutor/internal/domain"
	"slidetutor/internal/port"
)

// DefaultDPI matches the resolution the vision model is tuned for. MuPDF's
// base coordinate system is 72 DPI.
const DefaultDPI = 150

// FitzRenderer implements port.PageRenderer using MuPDF.
type FitzRenderer struct {
	dpi int
}

// NewFitzRenderer creates a renderer at the given DPI (DefaultDPI if <= 0).
// Every page of every document renders at the same resolution so the model
// sees consistently sized input.
func NewFitzRenderer(dpi int) *FitzRenderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FitzRenderer{dpi: dpi}
}

func (r *FitzRenderer) PageCount(pdf []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	defer func() { _ = doc.Close() }()
	return doc.NumPage(), nil
}

// RenderPage renders the 1-based pageNumber to PNG bytes. The document handle
// is closed on every exit path.
func (r *FitzRenderer) RenderPage(pdf []byte, pageNumber int) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	defer func() { _ = doc.Close() }()

	total := doc.NumPage()
	if pageNumber < 1 || pageNumber > total {
		return nil, &domain.PageOutOfRangeError{Page: pageNumber, TotalPages: total}
	}

	img, err := doc.ImageDPI(pageNumber-1, float64(r.dpi))
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", pageNumber, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page %d: %w", pageNumber, err)
	}
	return buf.Bytes(), nil
}

var _ port.PageRenderer = (*FitzRenderer)(nil)
