// Package explain turns rendered slide pages into structured explanations.
//
// The generator half invokes the vision model with bounded retries and always
// returns some raw text; the normalizer half coerces that text into a
// domain.Explanation, repairing malformed JSON where it can and degrading
// gracefully where it cannot.
package explain

import (
	"context"
	"fmt"
	"log"
	"time"

	"slidetutor/internal/port"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
	DefaultMinTextLen  = 50
)

// blockedReasons are finish reasons that indicate the response was filtered.
var blockedReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
}

// GeneratorConfig tunes the retry and output-acceptance behavior.
type GeneratorConfig struct {
	MaxAttempts     int
	RetryDelay      time.Duration
	MinTextLen      int
	Temperature     float64
	MaxOutputTokens int
}

// Generator invokes the vision model and absorbs its failures. After
// construction it never returns an error: transport failures and soft
// failures (empty, blocked, too-short responses) are retried up to the
// budget and then resolved into a degraded placeholder so the result is
// always cacheable.
type Generator struct {
	model port.VisionModel
	cfg   GeneratorConfig
}

// NewGenerator creates a Generator, filling zero config fields with defaults.
func NewGenerator(model port.VisionModel, cfg GeneratorConfig) *Generator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = DefaultMinTextLen
	}
	return &Generator{model: model, cfg: cfg}
}

// Generate submits the page image and prompt, retrying on both transport
// errors and soft failures with a fixed inter-attempt delay. When the budget
// is exhausted it returns a human-readable placeholder embedding the page
// number and the last failure reason.
func (g *Generator) Generate(ctx context.Context, image []byte, prompt string, pageNumber int) string {
	opts := port.GenerateOptions{
		Temperature:     g.cfg.Temperature,
		MaxOutputTokens: g.cfg.MaxOutputTokens,
	}

	var lastFailure string
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(g.cfg.RetryDelay):
			case <-ctx.Done():
				lastFailure = ctx.Err().Error()
				return g.placeholder(pageNumber, lastFailure)
			}
		}

		result, err := g.model.Generate(ctx, image, prompt, opts)
		if err != nil {
			lastFailure = err.Error()
			log.Printf("explain.Generator: page %d attempt %d/%d transport error: %v",
				pageNumber, attempt, g.cfg.MaxAttempts, err)
			continue
		}

		text, reason := g.accept(result)
		if reason == "" {
			return text
		}
		lastFailure = reason
		log.Printf("explain.Generator: page %d attempt %d/%d soft failure: %s",
			pageNumber, attempt, g.cfg.MaxAttempts, reason)
	}

	return g.placeholder(pageNumber, lastFailure)
}

// accept classifies a model response. It returns the extracted text on
// success, or a non-empty soft-failure reason.
func (g *Generator) accept(result *port.GenerateResult) (string, string) {
	if result == nil || len(result.Candidates) == 0 {
		return "", "model returned no candidates"
	}
	if reason := result.Candidates[0].FinishReason; blockedReasons[reason] {
		return "", fmt.Sprintf("response blocked by content filter (%s)", reason)
	}
	text := ExtractText(result)
	if text == "" {
		return "", "no text could be extracted from the response"
	}
	if len(text) < g.cfg.MinTextLen {
		return "", fmt.Sprintf("response too short (%d chars, minimum %d)", len(text), g.cfg.MinTextLen)
	}
	return text, ""
}

func (g *Generator) placeholder(pageNumber int, reason string) string {
	if reason == "" {
		reason = "unknown failure"
	}
	return fmt.Sprintf("Unable to generate an explanation for page %d after %d attempts: %s",
		pageNumber, g.cfg.MaxAttempts, reason)
}

var _ port.RawGenerator = (*Generator)(nil)
