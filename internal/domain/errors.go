package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrCorruptDocument     = errors.New("document cannot be opened")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrPageOutOfRange      = errors.New("page number out of range")
)

// PageOutOfRangeError reports a page request outside [1, TotalPages]. It is a
// client-input error, distinguishable from document-corruption failures.
type PageOutOfRangeError struct {
	Page       int
	TotalPages int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (valid: 1-%d)", e.Page, e.TotalPages)
}

// Is makes errors.Is(err, ErrPageOutOfRange) match.
func (e *PageOutOfRangeError) Is(target error) bool {
	return target == ErrPageOutOfRange
}
