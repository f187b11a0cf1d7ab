// Package prompt assembles the instruction text sent to the vision model.
package prompt

import (
	"fmt"
	"strings"
)

// Mode selects the output contract the model is instructed to follow. It is
// fixed once per deployment; the two modes are never merged.
type Mode string

const (
	// ModeStructured instructs the model to return a specific JSON shape.
	ModeStructured Mode = "structured"
	// ModeNarrative instructs the model to return free-form Markdown prose.
	ModeNarrative Mode = "narrative"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStructured, ModeNarrative:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown explanation mode: %q (allowed: structured, narrative)", s)
	}
}

// Builder produces page-explanation prompts in a single mode.
type Builder struct {
	mode Mode
}

// NewBuilder creates a Builder for the given mode.
func NewBuilder(mode Mode) *Builder {
	return &Builder{mode: mode}
}

// Mode returns the builder's configured mode.
func (b *Builder) Mode() Mode {
	return b.mode
}

// Build assembles the prompt for pageNumber. priorSummaries are condensed
// summaries of earlier pages of the same deck, ordered oldest to newest; when
// present they are appended as a context block so the model can keep
// narrative continuity across the deck.
func (b *Builder) Build(pageNumber int, priorSummaries []string) string {
	var sb strings.Builder

	switch b.mode {
	case ModeNarrative:
		sb.WriteString(narrativeInstructions)
	default:
		sb.WriteString(structuredInstructions)
	}

	sb.WriteString(fmt.Sprintf("\n\nAnalyze page %d of the provided slide deck and generate the explanation.", pageNumber))

	if len(priorSummaries) > 0 {
		sb.WriteString("\n\nContext from earlier pages (oldest first):\n")
		for i, s := range priorSummaries {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
		sb.WriteString("Use this context to keep the explanation consistent with the deck so far.")
	}

	return sb.String()
}

const structuredInstructions = `You are a university courseware tutor. Your task is to turn dense academic slide content into a plain-language explanation a first-year student can follow.

Analyze the slide page image and return ONLY a JSON object with this exact shape:
{
  "page_type": "TITLE or CONTENT or END",
  "summary": "a concise 2-3 sentence summary of the page",
  "key_points": [
    {
      "concept": "name of the core concept",
      "explanation": "plain-language explanation of the concept",
      "is_important": true or false
    }
  ],
  "analogy": "an everyday-life analogy for the core idea",
  "example": "a concrete example illustrating the concept",
  "original_language": "en or fr or zh or mixed"
}

Rules:
1. Use "TITLE" for cover/title pages and "END" for closing or reference pages.
2. Keep analogies grounded in daily life.
3. Pick the 2-3 most important concepts only.
4. Return raw JSON with no markdown fences and no commentary.`

const narrativeInstructions = `You are a university courseware tutor. Your task is to turn dense academic slide content into a plain-language explanation a first-year student can follow.

Analyze the slide page image and write a structured Markdown explanation with exactly these sections:

## Topic Overview
What this page is about and where it sits in the deck.

## Core Concepts
The 2-3 most important ideas, each explained in plain language.

## Formulas & Diagrams
Walk through any formulas or diagrams on the page; skip if none.

## Difficulty Points
What students typically find hard here and how to think about it.

## Summary
A 2-3 sentence recap.

## Continuity Note
One line connecting this page to what came before.`
