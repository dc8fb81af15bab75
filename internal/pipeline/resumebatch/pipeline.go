package resumebatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"resumerank/constants"
	"resumerank/internal/archive"
	"resumerank/internal/common"
	"resumerank/internal/entity"
	"resumerank/internal/pipeline/resumeproc"
	"resumerank/internal/repository"
)

// Config tunes the batch orchestrator.
type Config struct {
	Concurrency int    // max resumes evaluated at once; default 5
	ScratchDir  string // parent for per-batch scratch dirs; os.TempDir when empty
}

// Pipeline orchestrates one resume batch: unpack the archive, evaluate every
// member against the batch's job requirement, and commit the full result set
// atomically.
type Pipeline struct {
	Logger    *slog.Logger
	Cfg       Config
	Batches   repository.ResumeBatchRepository
	JobReqs   repository.JobRequirementRepository
	Results   repository.RankedResumeRepository
	Unpacker  *archive.Unpacker
	Processor *resumeproc.Processor
}

func NewPipeline(
	logger *slog.Logger,
	cfg Config,
	batches repository.ResumeBatchRepository,
	jobReqs repository.JobRequirementRepository,
	results repository.RankedResumeRepository,
	unpacker *archive.Unpacker,
	processor *resumeproc.Processor,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	return &Pipeline{
		Logger:    logger,
		Cfg:       cfg,
		Batches:   batches,
		JobReqs:   jobReqs,
		Results:   results,
		Unpacker:  unpacker,
		Processor: processor,
	}
}

// Run processes one batch end to end. The batch record carries the outcome;
// the returned error only feeds the caller's log line. If the batch's job
// requirement is not yet processed the batch is left untouched so it can be
// resubmitted later.
func (p *Pipeline) Run(ctx context.Context, batchID uuid.UUID, taskID string) (err error) {
	log := p.Logger.With("batch_id", batchID, "task_id", taskID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("resumebatch.panic", "panic", r)
			detail := fmt.Sprintf("unexpected fault: %v", r)
			if ferr := p.Batches.MarkFailed(ctx, batchID, detail); ferr != nil {
				log.Error("resumebatch.mark_failed_error", "error", ferr)
			}
			err = fmt.Errorf("resume batch processing: %v", r)
		}
	}()

	batch, err := p.Batches.GetByID(ctx, batchID)
	if err != nil {
		log.Error("resumebatch.load_failed", "error", err)
		return err
	}

	jr, err := p.JobReqs.GetByID(ctx, batch.JobRequirementID)
	if err != nil {
		log.Error("resumebatch.job_requirement_load_failed", "error", err)
		return err
	}
	if jr.Status != constants.JDStatusProcessed || jr.DescriptionText == nil || *jr.DescriptionText == "" {
		log.Warn("resumebatch.job_requirement_not_ready", "jd_status", jr.Status)
		return common.ErrJobDescriptionNotReady
	}
	jobDescription := *jr.DescriptionText
	jobTitle := ""
	if jr.Title != nil {
		jobTitle = *jr.Title
	}

	if err := p.Batches.MarkExtracting(ctx, batchID, taskID); err != nil {
		return err
	}

	extraction, err := p.Unpacker.Unpack(ctx, batch.ZipPath, p.Cfg.ScratchDir)
	if err != nil {
		if errors.Is(err, common.ErrCorruptArchive) || errors.Is(err, common.ErrNoPDFFiles) {
			if ferr := p.Batches.MarkFailed(ctx, batchID, err.Error()); ferr != nil {
				log.Error("resumebatch.mark_failed_error", "error", ferr)
				return ferr
			}
			return err
		}
		log.Error("resumebatch.unpack_failed", "error", err)
		if ferr := p.Batches.MarkFailed(ctx, batchID, err.Error()); ferr != nil {
			log.Error("resumebatch.mark_failed_error", "error", ferr)
		}
		return err
	}
	defer extraction.Close()

	if err := p.Batches.MarkProcessing(ctx, batchID); err != nil {
		return err
	}

	results := p.processAll(ctx, extraction.Members, jobDescription, jobTitle)

	rows := make([]*entity.RankedResume, 0, len(results))
	for _, res := range results {
		rows = append(rows, resultToEntity(res))
	}

	if err := p.Results.CreateForBatch(ctx, batchID, rows); err != nil {
		log.Error("resumebatch.persist_failed", "error", err)
		if ferr := p.Batches.MarkFailed(ctx, batchID, "failed to persist ranked resumes: "+err.Error()); ferr != nil {
			log.Error("resumebatch.mark_failed_error", "error", ferr)
		}
		return err
	}

	if err := p.Batches.MarkCompleted(ctx, batchID); err != nil {
		return err
	}

	log.Info("resumebatch.ok", "resumes", len(rows), "skipped_members", len(extraction.Skipped))
	return nil
}

// processAll evaluates every extracted member with bounded concurrency and
// returns results in a stable file-name order. Individual resume faults are
// absorbed by the processor, so the group never fails.
func (p *Pipeline) processAll(ctx context.Context, members map[string]string, jobDescription, jobTitle string) []resumeproc.Result {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	// Each goroutine writes its own slot, so no lock is needed.
	results := make([]resumeproc.Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Cfg.Concurrency)
	for i, name := range names {
		i, path := i, members[name]
		g.Go(func() error {
			results[i] = p.Processor.Process(gctx, path, jobDescription, jobTitle)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func resultToEntity(res resumeproc.Result) *entity.RankedResume {
	row := &entity.RankedResume{
		FileName:           res.FileName,
		Status:             res.Status,
		ExtractedInfo:      res.ExtractedInfo,
		RankingAnalysis:    res.RankingAnalysis,
		CompatibilityScore: res.CompatibilityScore,
		CandidateName:      res.CandidateName,
		CandidateEmail:     res.CandidateEmail,
	}
	if res.ErrorDetail != "" {
		detail := res.ErrorDetail
		row.ErrorDetail = &detail
	}
	return row
}
