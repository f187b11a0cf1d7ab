package explain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slidetutor/internal/explain"
	"slidetutor/internal/port"
)

func TestExtractText_DirectTextWins(t *testing.T) {
	result := &port.GenerateResult{
		Text: "direct",
		Candidates: []port.Candidate{
			{Parts: []port.Part{{Text: "from parts"}}, Output: "from output"},
		},
	}
	assert.Equal(t, "direct", explain.ExtractText(result))
}

func TestExtractText_FallsBackToParts(t *testing.T) {
	result := &port.GenerateResult{
		Candidates: []port.Candidate{
			{Parts: []port.Part{{Text: "part one"}, {Text: "part two"}}, Output: "from output"},
		},
	}
	assert.Equal(t, "part one\npart two", explain.ExtractText(result))
}

func TestExtractText_FallsBackToOutput(t *testing.T) {
	result := &port.GenerateResult{
		Candidates: []port.Candidate{
			{Output: "alternate shape"},
		},
	}
	assert.Equal(t, "alternate shape", explain.ExtractText(result))
}

func TestExtractText_Empty(t *testing.T) {
	assert.Equal(t, "", explain.ExtractText(&port.GenerateResult{}))
	assert.Equal(t, "", explain.ExtractText(&port.GenerateResult{
		Candidates: []port.Candidate{{}},
	}))
}
