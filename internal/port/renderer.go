package port

// PageRenderer abstracts PDF page rasterization.
type PageRenderer interface {
	// PageCount opens the document and returns its number of pages.
	PageCount(pdf []byte) (int, error)
	// RenderPage renders the 1-based page to PNG bytes at the renderer's
	// configured DPI. A page outside [1, count] yields a
	// *domain.PageOutOfRangeError.
	RenderPage(pdf []byte, pageNumber int) ([]byte, error)
}
