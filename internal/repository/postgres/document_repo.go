package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"slidetutor/internal/domain"
	"slidetutor/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Exists(ctx context.Context, documentID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1)", documentID)
	if err != nil {
		return false, fmt.Errorf("documentRepo.Exists: %w", err)
	}
	return exists, nil
}

func (r *documentRepo) GetByID(ctx context.Context, documentID string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) Save(ctx context.Context, doc *domain.Document) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}

	// Identity is content-derived, so a concurrent duplicate upload races to
	// the same row; the insert is a no-op for the loser.
	query := `INSERT INTO documents (id, filename, total_pages, storage_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.TotalPages, doc.StoragePath, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Save: %w", err)
	}
	return nil
}
