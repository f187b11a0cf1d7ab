package port

import (
	"context"

	"slidetutor/internal/domain"
)

// DocumentRepository defines the contract for document metadata persistence.
type DocumentRepository interface {
	Exists(ctx context.Context, documentID string) (bool, error)
	GetByID(ctx context.Context, documentID string) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

// ExplanationRepository is the cache backing store for per-page explanations.
// Once a row exists for (document, page) it is returned on every lookup and
// generation is never re-invoked; rows are only removed out-of-band.
type ExplanationRepository interface {
	Get(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error)
	ListByDocument(ctx context.Context, documentID string, beforePage int) ([]domain.Explanation, error)
	Upsert(ctx context.Context, exp *domain.Explanation) error
}
