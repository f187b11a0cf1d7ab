package explain

import (
	"strings"

	"slidetutor/internal/port"
)

// An extractor pulls text out of one shape of model response, returning ""
// when that shape is absent.
type extractor func(*port.GenerateResult) string

// extractors are tried in order; the first non-empty result wins. The model
// API can represent a successful response in more than one shape, so a single
// accessor is not enough.
var extractors = []extractor{
	directText,
	candidateParts,
	alternateOutput,
}

// ExtractText returns the response text via the first extraction strategy
// that yields anything, or "" when none do.
func ExtractText(result *port.GenerateResult) string {
	for _, ex := range extractors {
		if text := strings.TrimSpace(ex(result)); text != "" {
			return text
		}
	}
	return ""
}

func directText(r *port.GenerateResult) string {
	return r.Text
}

func candidateParts(r *port.GenerateResult) string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var texts []string
	for _, p := range r.Candidates[0].Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func alternateOutput(r *port.GenerateResult) string {
	if len(r.Candidates) == 0 {
		return ""
	}
	return r.Candidates[0].Output
}
