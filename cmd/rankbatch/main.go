package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"resumerank/constants"
	"resumerank/internal/archive"
	"resumerank/internal/async"
	"resumerank/internal/common"
	"resumerank/internal/entity"
	"resumerank/internal/export"
	"resumerank/internal/extract"
	"resumerank/internal/llm/openai"
	"resumerank/internal/pipeline/jobdesc"
	"resumerank/internal/pipeline/resumebatch"
	"resumerank/internal/pipeline/resumeproc"
	repo "resumerank/internal/repository"
	"resumerank/internal/service"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		jdPath  = flag.String("jd", "", "job description PDF path (required)")
		zipPath = flag.String("resumes", "", "resume batch ZIP path (required)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults next to the ZIP)")
		user    = flag.String("user", "", "user UUID recorded on the uploads (optional, generated when empty)")
		wait    = flag.Duration("wait", 15*time.Minute, "maximum time to wait for the batch to finish")
	)
	flag.Parse()

	if *jdPath == "" || *zipPath == "" {
		printError("Error: --jd and --resumes are required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*zipPath), "ranked-resumes.xlsx")
	}
	if *user == "" {
		*user = uuid.NewString()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, pool, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := db.WithContext(ctx).AutoMigrate(
		&entity.JobRequirement{},
		&entity.ResumeBatch{},
		&entity.RankedResume{},
	); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	jobReqsRepo := repo.NewJobRequirementRepository(db, logger)
	batchesRepo := repo.NewResumeBatchRepository(db, logger)
	resultsRepo := repo.NewRankedResumeRepository(db, logger)

	extractor := extract.NewPDFExtractor(logger)
	analyzer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	processor := resumeproc.NewProcessor(logger, resumeproc.Config{
		MinTextLength: cfg.LLM.MinTextLength,
	}, extractor, analyzer)

	jobDescPipe := jobdesc.NewPipeline(logger, jobReqsRepo, extractor, analyzer)
	batchPipe := resumebatch.NewPipeline(logger, resumebatch.Config{
		Concurrency: cfg.Processing.Concurrency,
		ScratchDir:  cfg.Processing.ScratchDir,
	}, batchesRepo, jobReqsRepo, resultsRepo, archive.NewUnpacker(logger), processor)

	queue := async.NewPipelineQueue(jobDescPipe, batchPipe, logger,
		async.WithWorkers(2),
		async.WithProcessTimeout(cfg.Processing.ProcessTimeout),
	)
	defer queue.Shutdown(context.Background())

	svc := service.NewService(jobReqsRepo, batchesRepo, resultsRepo, queue, logger)

	jr, err := svc.CreateJobRequirement(ctx, service.CreateJobRequirementRequest{
		UserID:  *user,
		PDFPath: *jdPath,
	})
	if err != nil {
		logger.Error("failed to register job description", "error", err)
		os.Exit(1)
	}
	if _, err := svc.SubmitJobRequirement(ctx, jr.ID); err != nil {
		logger.Error("failed to submit job description", "error", err)
		os.Exit(1)
	}

	deadline := time.Now().Add(*wait)
	if !waitFor(ctx, deadline, func() (bool, error) {
		cur, err := svc.GetJobRequirement(ctx, jr.ID)
		if err != nil {
			return false, err
		}
		switch cur.Status {
		case constants.JDStatusProcessed:
			return true, nil
		case constants.JDStatusFailed:
			detail := ""
			if cur.ErrorDetail != nil {
				detail = *cur.ErrorDetail
			}
			return false, fmt.Errorf("job description processing failed: %s", detail)
		}
		return false, nil
	}) {
		os.Exit(1)
	}
	logger.Info("job description processed", "job_requirement_id", jr.ID)

	rb, err := svc.CreateResumeBatch(ctx, service.CreateResumeBatchRequest{
		UserID:           *user,
		JobRequirementID: jr.ID,
		ZipPath:          *zipPath,
	})
	if err != nil {
		logger.Error("failed to register resume batch", "error", err)
		os.Exit(1)
	}
	if _, err := svc.SubmitResumeBatch(ctx, rb.ID); err != nil {
		logger.Error("failed to submit resume batch", "error", err)
		os.Exit(1)
	}

	if !waitFor(ctx, deadline, func() (bool, error) {
		cur, err := svc.GetResumeBatch(ctx, rb.ID)
		if err != nil {
			return false, err
		}
		switch cur.Status {
		case constants.BatchStatusCompleted:
			return true, nil
		case constants.BatchStatusFailed:
			detail := ""
			if cur.ErrorDetail != nil {
				detail = *cur.ErrorDetail
			}
			return false, fmt.Errorf("resume batch processing failed: %s", detail)
		}
		return false, nil
	}) {
		os.Exit(1)
	}

	rows, err := svc.ListRankedResumes(ctx, rb.ID)
	if err != nil {
		logger.Error("failed to list ranked resumes", "error", err)
		os.Exit(1)
	}

	exportService := export.NewService(resultsRepo, logger)
	xlsxBytes, err := exportService.ExportRankedResumesXLSX(ctx, rb.ID)
	if err != nil {
		logger.Error("failed to export ranked resumes", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Resumes ranked: %d\n", len(rows))
	for i, r := range rows {
		fmt.Printf("  %2d. %-40s %3d  %s\n", i+1, r.FileName, r.CompatibilityScore, r.Status)
	}
	fmt.Printf("- Output: %s\n", *out)
}

// waitFor polls until done, the deadline passes, or the check fails.
func waitFor(ctx context.Context, deadline time.Time, check func() (bool, error)) bool {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		done, err := check()
		if err != nil {
			printError("Error: %v\n", err)
			return false
		}
		if done {
			return true
		}
		if time.Now().After(deadline) {
			printError("Error: timed out waiting for processing to finish\n")
			return false
		}
		select {
		case <-ctx.Done():
			printError("Error: %v\n", ctx.Err())
			return false
		case <-ticker.C:
		}
	}
}
