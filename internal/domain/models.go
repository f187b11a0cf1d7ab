package domain

import "time"

// Document represents an uploaded slide deck. Its ID is derived from the file
// content, so re-uploading bit-identical bytes always resolves to the same row.
type Document struct {
	ID          string    `db:"id" json:"document_id"`
	Filename    string    `db:"filename" json:"filename"`
	TotalPages  int       `db:"total_pages" json:"total_pages"`
	StoragePath string    `db:"storage_path" json:"-"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// KeyPoint is a single concept extracted from a slide page.
type KeyPoint struct {
	Concept     string `json:"concept"`
	Explanation string `json:"explanation"`
	IsImportant bool   `json:"is_important"`
}

// Explanation is the structured result of explaining one page of a document.
// It is created once per (document, page) pair; a concurrent duplicate
// generation may overwrite it with an equivalent value but there is no
// client-facing update path.
type Explanation struct {
	DocumentID       string     `json:"document_id"`
	PageNumber       int        `json:"page_number"`
	PageType         PageType   `json:"page_type"`
	Summary          string     `json:"summary"`
	KeyPoints        []KeyPoint `json:"key_points"`
	Analogy          string     `json:"analogy"`
	Example          string     `json:"example"`
	OriginalLanguage string     `json:"original_language"`
	Degraded         bool       `json:"degraded"`
	CreatedAt        time.Time  `json:"created_at"`
}
