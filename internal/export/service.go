package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"resumerank/internal/repository"
)

// Service is a tiny façade over the results repository that produces XLSX
// bytes for ranked-batch exports.
type Service struct {
	results repository.RankedResumeRepository
	logger  *slog.Logger
}

func NewService(results repository.RankedResumeRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{results: results, logger: logger}
}

// ExportRankedResumesXLSX returns an XLSX workbook (as bytes) with one row
// per resume in the batch, already ordered best candidates first.
func (s *Service) ExportRankedResumesXLSX(ctx context.Context, batchID uuid.UUID) ([]byte, error) {
	start := time.Now()

	rows, err := s.results.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("query ranked resumes: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Ranked Resumes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Rank",
		"File Name",
		"Candidate Name",
		"Candidate Email",
		"Compatibility Score",
		"Status",
		"Error Detail",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, i+1)
		write(2, r.FileName)
		write(3, r.CandidateName)
		write(4, r.CandidateEmail)
		write(5, r.CompatibilityScore)
		write(6, string(r.Status))
		if r.ErrorDetail != nil {
			write(7, truncate(*r.ErrorDetail, 140))
		} else {
			write(7, "")
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)  // rank
	_ = f.SetColWidth(sheet, "B", "B", 36) // file name
	_ = f.SetColWidth(sheet, "C", "C", 24) // candidate
	_ = f.SetColWidth(sheet, "D", "D", 30) // email
	_ = f.SetColWidth(sheet, "E", "F", 18) // score, status
	_ = f.SetColWidth(sheet, "G", "G", 48) // error detail

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"batch_id", batchID.String(),
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
