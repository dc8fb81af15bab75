package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor pulls plain text out of a PDF, page by page. It is read-only
// and keeps every parse fault inside its own boundary: callers see either a
// result or an error, never a panic from the underlying reader.
type PDFExtractor struct {
	log *slog.Logger
}

func NewPDFExtractor(log *slog.Logger) *PDFExtractor {
	if log == nil {
		log = slog.Default()
	}
	return &PDFExtractor{log: log}
}

// Extract reads all pages of the PDF at path and returns their text joined by
// newlines, trimmed of surrounding whitespace. A document that parses but
// contains no extractable text yields an empty Text with no error.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (res TextExtractionResult, err error) {
	start := time.Now()

	// The pdf reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("pdf.extract.panic", "path", path, "panic", r)
			res = TextExtractionResult{}
			err = fmt.Errorf("parse pdf %q: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		e.log.Warn("pdf.extract.open_failed", "path", path, "error", err)
		return TextExtractionResult{}, fmt.Errorf("open pdf %q: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	var warnings []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		select {
		case <-ctx.Done():
			return TextExtractionResult{}, ctx.Err()
		default:
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: missing", i))
			continue
		}
		pageText, pErr := page.GetPlainText(nil)
		if pErr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, pErr))
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}

	res = TextExtractionResult{
		Text:     strings.TrimSpace(b.String()),
		Pages:    numPages,
		Method:   "pdf-text",
		Duration: time.Since(start),
		Warnings: warnings,
	}
	e.log.Debug("pdf.extract.ok",
		"path", path,
		"pages", numPages,
		"text_bytes", len(res.Text),
		"warnings", len(warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
