package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidetutor/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 9)
	assert.Equal(t, "Page", row[0])
	assert.Equal(t, "Page Type", row[1])
	assert.Equal(t, "Created At", row[8])
}

func TestWriteExplanations(t *testing.T) {
	exps := []domain.Explanation{
		{
			PageNumber: 1,
			PageType:   domain.PageTypeTitle,
			Summary:    "Course overview",
			KeyPoints: []domain.KeyPoint{
				{Concept: "Scope", Explanation: "What the course covers", IsImportant: true},
				{Concept: "Grading", Explanation: "How grades are computed", IsImportant: false},
			},
			Analogy:          "A map before a road trip",
			Example:          "Syllabus page",
			OriginalLanguage: "en",
			Degraded:         false,
			CreatedAt:        time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			PageNumber:       2,
			PageType:         domain.PageTypeContent,
			Summary:          "raw model text",
			KeyPoints:        []domain.KeyPoint{{Concept: "AI-generated explanation", Explanation: "raw model text", IsImportant: true}},
			OriginalLanguage: "mixed",
			Degraded:         true,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteExplanations(exps))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "TITLE", first[1])
	assert.Equal(t, "Course overview", first[2])
	assert.Equal(t, "[!] Scope: What the course covers; Grading: How grades are computed", first[3])
	assert.Equal(t, "en", first[6])
	assert.Equal(t, "false", first[7])
	assert.Equal(t, "2026-03-01 10:30:00", first[8])

	second := rows[2]
	assert.Equal(t, "2", second[0])
	assert.Equal(t, "true", second[7])
	assert.Equal(t, "", second[8])
}

func TestJoinKeyPoints_Empty(t *testing.T) {
	assert.Equal(t, "", joinKeyPoints(nil))
}
