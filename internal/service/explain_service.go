package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"slidetutor/internal/domain"
	"slidetutor/internal/explain"
	"slidetutor/internal/port"
	"slidetutor/internal/prompt"
)

// contextSummaryLen caps each prior-page summary folded into the prompt.
const contextSummaryLen = 200

// ExplainService defines the page explanation contract.
type ExplainService interface {
	Explain(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error)
}

type explainService struct {
	docRepo      port.DocumentRepository
	expRepo      port.ExplanationRepository
	storage      port.ObjectStorage
	renderer     port.PageRenderer
	generator    port.RawGenerator
	prompts      *prompt.Builder
	contextPages int
}

// NewExplainService creates a new ExplainService implementation.
// contextPages limits how many prior-page summaries feed the prompt; 0 means
// all prior pages.
func NewExplainService(
	docRepo port.DocumentRepository,
	expRepo port.ExplanationRepository,
	storage port.ObjectStorage,
	renderer port.PageRenderer,
	generator port.RawGenerator,
	prompts *prompt.Builder,
	contextPages int,
) ExplainService {
	return &explainService{
		docRepo:      docRepo,
		expRepo:      expRepo,
		storage:      storage,
		renderer:     renderer,
		generator:    generator,
		prompts:      prompts,
		contextPages: contextPages,
	}
}

// Explain returns the cached explanation for the page or generates one on a
// cache miss. After input validation the result is always a valid
// Explanation; model and parse failures degrade instead of erroring.
//
// Two concurrent misses for the same page may both generate and both write.
// That race is accepted: generation is a pure function of its inputs, the
// cache write is a single-row upsert, and the last write wins.
func (s *explainService) Explain(ctx context.Context, documentID string, pageNumber int) (*domain.Explanation, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if pageNumber < 1 || pageNumber > doc.TotalPages {
		return nil, &domain.PageOutOfRangeError{Page: pageNumber, TotalPages: doc.TotalPages}
	}

	cached, err := s.expRepo.Get(ctx, documentID, pageNumber)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	pdf, err := s.storage.Download(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("loading deck %s: %w", documentID, err)
	}

	image, err := s.renderer.RenderPage(pdf, pageNumber)
	if err != nil {
		return nil, err
	}

	promptText := s.prompts.Build(pageNumber, s.priorSummaries(ctx, documentID, pageNumber))

	log.Printf("explainService.Explain: generating page %d/%d of deck %s",
		pageNumber, doc.TotalPages, documentID)

	raw := s.generator.Generate(ctx, image, promptText, pageNumber)

	exp := explain.Normalize(raw, s.prompts.Mode())
	exp.DocumentID = documentID
	exp.PageNumber = pageNumber
	exp.CreatedAt = time.Now().UTC()

	if err := s.expRepo.Upsert(ctx, exp); err != nil {
		// The caller still gets a valid result; the next request recomputes.
		log.Printf("explainService.Explain: failed to cache page %d of deck %s: %v",
			pageNumber, documentID, err)
	}

	return exp, nil
}

// priorSummaries condenses already-cached explanations of earlier pages into
// short context strings, ordered oldest to newest. Failures here only cost
// continuity, never the request.
func (s *explainService) priorSummaries(ctx context.Context, documentID string, pageNumber int) []string {
	prior, err := s.expRepo.ListByDocument(ctx, documentID, pageNumber)
	if err != nil {
		log.Printf("explainService.priorSummaries: listing prior pages of %s: %v", documentID, err)
		return nil
	}
	if s.contextPages > 0 && len(prior) > s.contextPages {
		prior = prior[len(prior)-s.contextPages:]
	}

	summaries := make([]string, 0, len(prior))
	for i := range prior {
		summaries = append(summaries, condense(&prior[i]))
	}
	return summaries
}

func condense(exp *domain.Explanation) string {
	summary := exp.Summary
	if runes := []rune(summary); len(runes) > contextSummaryLen {
		summary = string(runes[:contextSummaryLen]) + "..."
	}
	return fmt.Sprintf("Page %d (%s): %s", exp.PageNumber, exp.PageType, summary)
}
