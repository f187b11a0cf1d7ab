package domain

// PageType classifies a slide page.
type PageType string

const (
	PageTypeTitle   PageType = "TITLE"
	PageTypeContent PageType = "CONTENT"
	PageTypeEnd     PageType = "END"
)

// NormalizePageType maps an arbitrary model-produced value onto a valid
// PageType, defaulting to CONTENT.
func NormalizePageType(s string) PageType {
	switch PageType(s) {
	case PageTypeTitle, PageTypeContent, PageTypeEnd:
		return PageType(s)
	default:
		return PageTypeContent
	}
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
}
