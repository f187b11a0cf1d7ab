package explain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/domain"
	"slidetutor/internal/explain"
	"slidetutor/internal/prompt"
)

const validStructuredOutput = `{
  "page_type": "CONTENT",
  "summary": "This page introduces binary heaps.",
  "key_points": [
    {"concept": "Heap property", "explanation": "Parents dominate children.", "is_important": true},
    {"concept": "Array layout", "explanation": "A heap fits in a flat array.", "is_important": false}
  ],
  "analogy": "A company org chart where every manager outranks their reports.",
  "example": "Inserting 5 into [1, 3, 8] sifts it up past 8.",
  "original_language": "en"
}`

func TestNormalize_ValidStructuredJSON(t *testing.T) {
	exp := explain.Normalize(validStructuredOutput, prompt.ModeStructured)

	assert.Equal(t, domain.PageTypeContent, exp.PageType)
	assert.Equal(t, "This page introduces binary heaps.", exp.Summary)
	require.Len(t, exp.KeyPoints, 2)
	assert.Equal(t, "Heap property", exp.KeyPoints[0].Concept)
	assert.True(t, exp.KeyPoints[0].IsImportant)
	assert.False(t, exp.KeyPoints[1].IsImportant)
	assert.Equal(t, "en", exp.OriginalLanguage)
	assert.False(t, exp.Degraded)
}

func TestNormalize_FencedEqualsBare(t *testing.T) {
	// The same JSON wrapped in a fence with commentary must normalize to
	// the same record as the bare object.
	wrapped := "Sure, here is the analysis:\n```json\n" + validStructuredOutput + "\n```"

	bare := explain.Normalize(validStructuredOutput, prompt.ModeStructured)
	fenced := explain.Normalize(wrapped, prompt.ModeStructured)

	assert.Equal(t, bare, fenced)
}

func TestNormalize_UnparseableDegrades(t *testing.T) {
	raw := "The slide shows a diagram of a B-tree with fan-out 4..."
	exp := explain.Normalize(raw, prompt.ModeStructured)

	assert.True(t, exp.Degraded)
	assert.Equal(t, domain.PageTypeContent, exp.PageType)
	assert.Equal(t, raw, exp.Summary)
	require.Len(t, exp.KeyPoints, 1)
	assert.Equal(t, "AI-generated explanation", exp.KeyPoints[0].Concept)
	assert.Equal(t, raw, exp.KeyPoints[0].Explanation)
	assert.True(t, exp.KeyPoints[0].IsImportant)
	assert.Equal(t, "mixed", exp.OriginalLanguage)
}

func TestNormalize_DegradedSummaryCapped(t *testing.T) {
	raw := strings.Repeat("长", 600)
	exp := explain.Normalize(raw, prompt.ModeStructured)

	assert.True(t, exp.Degraded)
	assert.Len(t, []rune(exp.Summary), 500)
	// The key point keeps the full raw text.
	assert.Equal(t, raw, exp.KeyPoints[0].Explanation)
}

func TestNormalize_Defaults(t *testing.T) {
	exp := explain.Normalize(`{"summary": "just a summary"}`, prompt.ModeStructured)

	assert.False(t, exp.Degraded)
	assert.Equal(t, domain.PageTypeContent, exp.PageType)
	assert.Equal(t, "mixed", exp.OriginalLanguage)
	assert.NotNil(t, exp.KeyPoints)
	assert.Empty(t, exp.KeyPoints)
}

func TestNormalize_UnknownPageType(t *testing.T) {
	exp := explain.Normalize(`{"page_type": "APPENDIX", "summary": "s"}`, prompt.ModeStructured)
	assert.Equal(t, domain.PageTypeContent, exp.PageType)
}

func TestNormalize_NarrativeWrapsRaw(t *testing.T) {
	raw := "## Topic Overview\nThis page covers hash tables."
	exp := explain.Normalize(raw, prompt.ModeNarrative)

	assert.Equal(t, raw, exp.Summary)
	assert.Equal(t, domain.PageTypeContent, exp.PageType)
	assert.Empty(t, exp.KeyPoints)
	assert.Equal(t, "mixed", exp.OriginalLanguage)
	assert.False(t, exp.Degraded)
}
