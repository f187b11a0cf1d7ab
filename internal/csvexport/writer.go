// Package csvexport renders cached deck explanations as CSV study sheets.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"slidetutor/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Page",
	"Page Type",
	"Summary",
	"Key Points",
	"Analogy",
	"Example",
	"Language",
	"Degraded",
	"Created At",
}

// Writer wraps csv.Writer for exporting explanations as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteExplanations converts a batch of explanations to CSV rows and writes them.
func (w *Writer) WriteExplanations(exps []domain.Explanation) error {
	for i := range exps {
		if err := w.csv.Write(explanationToRow(&exps[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func explanationToRow(exp *domain.Explanation) []string {
	row := make([]string, len(columns))
	row[0] = strconv.Itoa(exp.PageNumber)
	row[1] = string(exp.PageType)
	row[2] = exp.Summary
	row[3] = joinKeyPoints(exp.KeyPoints)
	row[4] = exp.Analogy
	row[5] = exp.Example
	row[6] = exp.OriginalLanguage
	row[7] = strconv.FormatBool(exp.Degraded)
	if !exp.CreatedAt.IsZero() {
		row[8] = exp.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return row
}

func joinKeyPoints(points []domain.KeyPoint) string {
	parts := make([]string, 0, len(points))
	for _, kp := range points {
		s := kp.Concept + ": " + kp.Explanation
		if kp.IsImportant {
			s = "[!] " + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
