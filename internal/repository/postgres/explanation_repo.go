package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"slidetutor/internal/domain"
	"slidetutor/internal/port"
)

type explanationRepo struct {
	db *sqlx.DB
}

// NewExplanationRepo creates a new PostgreSQL-backed ExplanationRepository.
func NewExplanationRepo(db *sqlx.DB) port.ExplanationRepository {
	return &explanationRepo{db: db}
}

// explanationRow is the database shape; key points live in a jsonb column.
type explanationRow struct {
	DocumentID       string          `db:"document_id"`
	PageNumber       int             `db:"page_number"`
	PageType         string          `db:"page_type"`
	Summary          string          `db:"summary"`
	KeyPoints        json.RawMessage `db:"key_points"`
	Analogy          string          `db:"analogy"`
	Example          string          `db:"example"`
	OriginalLanguage string          `db:"original_language"`
	Degraded         bool            `db:"degraded"`
	CreatedAt        time.Time       `db:"created_at"`
}

func (row *explanationRow) toDomain() (*domain.Explanation, error) {
	exp := &domain.Explanation{
		DocumentID:       row.DocumentID,
		PageNumber:       row.PageNumber,
		PageType:         domain.PageType(row.PageType),
		Summary:          row.Summary,
		KeyPoints:        []domain.KeyPoint{},
		Analogy:          row.Analogy,
		Example:          row.Example,
		OriginalLanguage: row.OriginalLanguage,
		Degraded:         row.Degraded,
		CreatedAt:        row.CreatedAt,
	}
	if len(row.KeyPoints) > 0 {
		if err := json.Unmarshal(row.KeyPoints, &exp.KeyPoints); err != nil {
			return nil, fmt.Errorf("decoding key points: %w", err)
		}
	}
	return exp, nil
}

func (r *explanationRepo) Get(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error) {
	var row explanationRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM explanations WHERE document_id = $1 AND page_number = $2",
		documentID, pageNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("explanationRepo.Get: %w", err)
	}
	exp, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("explanationRepo.Get: %w", err)
	}
	return exp, nil
}

func (r *explanationRepo) ListByDocument(ctx context.Context, documentID string, beforePage int) ([]domain.Explanation, error) {
	query := `SELECT * FROM explanations WHERE document_id = $1`
	args := []interface{}{documentID}
	if beforePage > 0 {
		query += ` AND page_number < $2`
		args = append(args, beforePage)
	}
	query += ` ORDER BY page_number ASC`

	var rows []explanationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("explanationRepo.ListByDocument: %w", err)
	}

	exps := make([]domain.Explanation, 0, len(rows))
	for i := range rows {
		exp, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("explanationRepo.ListByDocument: %w", err)
		}
		exps = append(exps, *exp)
	}
	return exps, nil
}

func (r *explanationRepo) Upsert(ctx context.Context, exp *domain.Explanation) error {
	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now().UTC()
	}
	keyPoints, err := json.Marshal(exp.KeyPoints)
	if err != nil {
		return fmt.Errorf("explanationRepo.Upsert: encoding key points: %w", err)
	}

	// Single-row upsert: concurrent generations for the same page are an
	// accepted race and the last write wins.
	query := `INSERT INTO explanations
		(document_id, page_number, page_type, summary, key_points, analogy, example,
		 original_language, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (document_id, page_number) DO UPDATE SET
			page_type = EXCLUDED.page_type,
			summary = EXCLUDED.summary,
			key_points = EXCLUDED.key_points,
			analogy = EXCLUDED.analogy,
			example = EXCLUDED.example,
			original_language = EXCLUDED.original_language,
			degraded = EXCLUDED.degraded`

	_, err = r.db.ExecContext(ctx, query,
		exp.DocumentID, exp.PageNumber, exp.PageType, exp.Summary, keyPoints,
		exp.Analogy, exp.Example, exp.OriginalLanguage, exp.Degraded, exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("explanationRepo.Upsert: %w", err)
	}
	return nil
}
