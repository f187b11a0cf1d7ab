package service

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"slidetutor/internal/csvexport"
	"slidetutor/internal/domain"
	"slidetutor/internal/port"
)

// ExportService renders a deck's cached explanations as downloadable study sheets.
type ExportService interface {
	ExportCSV(ctx context.Context, documentID string, w io.Writer) error
	ExportXLSX(ctx context.Context, documentID string) ([]byte, error)
}

type exportService struct {
	docRepo port.DocumentRepository
	expRepo port.ExplanationRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(docRepo port.DocumentRepository, expRepo port.ExplanationRepository) ExportService {
	return &exportService{docRepo: docRepo, expRepo: expRepo}
}

func (s *exportService) load(ctx context.Context, documentID string) ([]domain.Explanation, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.expRepo.ListByDocument(ctx, documentID, 0)
}

func (s *exportService) ExportCSV(ctx context.Context, documentID string, w io.Writer) error {
	exps, err := s.load(ctx, documentID)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteExplanations(exps); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

var xlsxHeader = []string{"Page", "Page Type", "Summary", "Key Points", "Analogy", "Example", "Language", "Degraded"}

func (s *exportService) ExportXLSX(ctx context.Context, documentID string) ([]byte, error) {
	exps, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Explanations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range xlsxHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i := range exps {
		exp := &exps[i]
		values := []interface{}{
			exp.PageNumber,
			string(exp.PageType),
			exp.Summary,
			keyPointsCell(exp.KeyPoints),
			exp.Analogy,
			exp.Example,
			exp.OriginalLanguage,
			exp.Degraded,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func keyPointsCell(points []domain.KeyPoint) string {
	out := ""
	for i, kp := range points {
		out += strconv.Itoa(i+1) + ". " + kp.Concept + ": " + kp.Explanation + "\n"
	}
	return out
}
