package explain

import (
	"encoding/json"
	"log"

	"slidetutor/internal/domain"
	"slidetutor/internal/prompt"
)

// degradedSummaryLen caps the summary taken from raw text in the degraded fallback.
const degradedSummaryLen = 500

// structuredPayload mirrors the JSON shape the structured prompt asks for.
type structuredPayload struct {
	PageType         string `json:"page_type"`
	Summary          string `json:"summary"`
	KeyPoints        []struct {
		Concept     string `json:"concept"`
		Explanation string `json:"explanation"`
		IsImportant bool   `json:"is_important"`
	} `json:"key_points"`
	Analogy          string `json:"analogy"`
	Example          string `json:"example"`
	OriginalLanguage string `json:"original_language"`
}

// Normalize coerces raw model output into an Explanation. It is total: any
// input yields a valid Explanation, never an error. In narrative mode the raw
// text is wrapped as-is; in structured mode the raw text goes through the
// repair pipeline and defensive field mapping, falling back to a degraded
// record when even repaired text does not parse.
func Normalize(raw string, mode prompt.Mode) *domain.Explanation {
	if mode == prompt.ModeNarrative {
		return &domain.Explanation{
			PageType:         domain.PageTypeContent,
			Summary:          raw,
			KeyPoints:        []domain.KeyPoint{},
			OriginalLanguage: "mixed",
		}
	}

	repaired := Repair(raw)

	var payload structuredPayload
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		log.Printf("explain.Normalize: structured output not parseable after repair, degrading: %v", err)
		return Degraded(raw)
	}

	// Every field has a defined default so a partially-valid object still
	// normalizes.
	exp := &domain.Explanation{
		PageType:         domain.NormalizePageType(payload.PageType),
		Summary:          payload.Summary,
		KeyPoints:        make([]domain.KeyPoint, 0, len(payload.KeyPoints)),
		Analogy:          payload.Analogy,
		Example:          payload.Example,
		OriginalLanguage: payload.OriginalLanguage,
	}
	for _, kp := range payload.KeyPoints {
		exp.KeyPoints = append(exp.KeyPoints, domain.KeyPoint{
			Concept:     kp.Concept,
			Explanation: kp.Explanation,
			IsImportant: kp.IsImportant,
		})
	}
	if exp.OriginalLanguage == "" {
		exp.OriginalLanguage = "mixed"
	}
	return exp
}

// Degraded builds the fallback Explanation used when structured parsing
// cannot succeed. It preserves the raw model text verbatim in a single key
// point and is cached like any other result, so failed parses are not
// retried on every client call.
func Degraded(raw string) *domain.Explanation {
	summary := raw
	if runes := []rune(summary); len(runes) > degradedSummaryLen {
		summary = string(runes[:degradedSummaryLen])
	}
	return &domain.Explanation{
		PageType: domain.PageTypeContent,
		Summary:  summary,
		KeyPoints: []domain.KeyPoint{
			{
				Concept:     "AI-generated explanation",
				Explanation: raw,
				IsImportant: true,
			},
		},
		Analogy:          "",
		Example:          "",
		OriginalLanguage: "mixed",
		Degraded:         true,
	}
}
