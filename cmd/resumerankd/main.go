package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"resumerank/internal/archive"
	"resumerank/internal/async"
	"resumerank/internal/common"
	"resumerank/internal/entity"
	"resumerank/internal/extract"
	"resumerank/internal/llm/openai"
	"resumerank/internal/pipeline/jobdesc"
	"resumerank/internal/pipeline/resumebatch"
	"resumerank/internal/pipeline/resumeproc"
	repo "resumerank/internal/repository"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConfig := repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}
	db, pool, err := repo.Open(ctx, dbConfig, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := repo.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

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
		async.WithWorkers(cfg.Processing.Workers),
		async.WithQueueSize(cfg.Processing.QueueSize),
		async.WithProcessTimeout(cfg.Processing.ProcessTimeout),
	)

	logger.Info("resumerankd ready",
		"workers", cfg.Processing.Workers,
		"concurrency", cfg.Processing.Concurrency,
		"model", cfg.LLM.Model,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	queue.Shutdown(context.Background())
}
