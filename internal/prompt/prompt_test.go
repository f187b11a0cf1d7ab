package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/prompt"
)

func TestParseMode(t *testing.T) {
	mode, err := prompt.ParseMode("structured")
	require.NoError(t, err)
	assert.Equal(t, prompt.ModeStructured, mode)

	mode, err = prompt.ParseMode("narrative")
	require.NoError(t, err)
	assert.Equal(t, prompt.ModeNarrative, mode)

	_, err = prompt.ParseMode("verbose")
	assert.Error(t, err)
}

func TestBuild_StructuredSchema(t *testing.T) {
	b := prompt.NewBuilder(prompt.ModeStructured)
	p := b.Build(3, nil)

	assert.Contains(t, p, "page 3")
	for _, key := range []string{
		`"page_type"`, `"summary"`, `"key_points"`,
		`"concept"`, `"explanation"`, `"is_important"`,
		`"analogy"`, `"example"`, `"original_language"`,
	} {
		assert.Contains(t, p, key)
	}
	assert.NotContains(t, p, "Context from earlier pages")
}

func TestBuild_NarrativeSections(t *testing.T) {
	b := prompt.NewBuilder(prompt.ModeNarrative)
	p := b.Build(1, nil)

	for _, section := range []string{
		"## Topic Overview",
		"## Core Concepts",
		"## Formulas & Diagrams",
		"## Difficulty Points",
		"## Summary",
		"## Continuity Note",
	} {
		assert.Contains(t, p, section)
	}
	assert.NotContains(t, p, "page_type")
}

func TestBuild_ContextBlockOrder(t *testing.T) {
	b := prompt.NewBuilder(prompt.ModeStructured)
	p := b.Build(4, []string{"intro to sorting", "bubble sort", "quick sort"})

	assert.Contains(t, p, "Context from earlier pages")
	assert.Contains(t, p, "1. intro to sorting")
	assert.Contains(t, p, "2. bubble sort")
	assert.Contains(t, p, "3. quick sort")

	// Oldest first in the rendered block.
	assert.Less(t,
		strings.Index(p, "intro to sorting"),
		strings.Index(p, "quick sort"),
	)
}
