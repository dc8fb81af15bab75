package jobdesc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"resumerank/constants"
	"resumerank/internal/extract"
	"resumerank/internal/llm"
	"resumerank/internal/repository"
)

// Pipeline turns an uploaded job-description PDF into usable job context:
// the full description text plus a short title for prompting.
type Pipeline struct {
	Logger    *slog.Logger
	Repo      repository.JobRequirementRepository
	Extractor extract.TextExtractor
	Analyzer  llm.ResumeAnalyzer
}

func NewPipeline(logger *slog.Logger, repo repository.JobRequirementRepository, tx extract.TextExtractor, az llm.ResumeAnalyzer) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Repo: repo, Extractor: tx, Analyzer: az}
}

// Run processes one job requirement end to end. Failures are recorded on the
// record itself; the returned error is for the caller's log line only.
func (p *Pipeline) Run(ctx context.Context, jobRequirementID uuid.UUID, taskID string) (err error) {
	log := p.Logger.With("job_requirement_id", jobRequirementID, "task_id", taskID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("jobdesc.panic", "panic", r)
			err = fmt.Errorf("job description processing: %v", r)
			// Re-read before writing: the record may already be terminal.
			cur, gerr := p.Repo.GetByID(ctx, jobRequirementID)
			if gerr == nil && (cur.Status == constants.JDStatusProcessed || cur.Status == constants.JDStatusFailed) {
				return
			}
			detail := fmt.Sprintf("unexpected fault: %v", r)
			if ferr := p.Repo.MarkFailed(ctx, jobRequirementID, detail); ferr != nil {
				log.Error("jobdesc.mark_failed_error", "error", ferr)
			}
		}
	}()

	jr, err := p.Repo.GetByID(ctx, jobRequirementID)
	if err != nil {
		log.Error("jobdesc.load_failed", "error", err)
		return err
	}

	if err := p.Repo.MarkProcessing(ctx, jobRequirementID, taskID); err != nil {
		log.Error("jobdesc.mark_processing_failed", "error", err)
		return err
	}

	ext, err := p.Extractor.Extract(ctx, jr.PDFPath)
	if err != nil || ext.Text == "" {
		detail := "no text could be extracted from the job description PDF"
		if err != nil {
			detail = err.Error()
		}
		log.Warn("jobdesc.extraction_failed", "error", err)
		if ferr := p.Repo.MarkFailed(ctx, jobRequirementID, detail); ferr != nil {
			log.Error("jobdesc.mark_failed_error", "error", ferr)
			return ferr
		}
		return fmt.Errorf("job description extraction: %s", detail)
	}

	title, err := p.Analyzer.ExtractJobTitle(ctx, ext.Text)
	if err != nil || title == "" {
		// A missing title degrades prompting quality but does not block
		// downstream batches, so the record still completes.
		log.Warn("jobdesc.title_fallback", "error", err)
		title = llm.PlaceholderJobTitle
	}

	if err := p.Repo.MarkProcessed(ctx, jobRequirementID, title, ext.Text); err != nil {
		log.Error("jobdesc.mark_processed_failed", "error", err)
		return err
	}

	log.Info("jobdesc.ok", "title", title, "text_len", len(ext.Text), "pages", ext.Pages)
	return nil
}
