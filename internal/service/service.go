package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"resumerank/constants"
	"resumerank/internal/async"
	"resumerank/internal/common"
	"resumerank/internal/entity"
	"resumerank/internal/repository"
)

// Service is the application facade: it registers uploaded files, submits
// background work, and reads statuses and results back out.
type Service struct {
	jobReqs repository.JobRequirementRepository
	batches repository.ResumeBatchRepository
	results repository.RankedResumeRepository
	queue   async.Queue
	logger  *slog.Logger
}

func NewService(
	jobReqs repository.JobRequirementRepository,
	batches repository.ResumeBatchRepository,
	results repository.RankedResumeRepository,
	queue async.Queue,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jobReqs: jobReqs,
		batches: batches,
		results: results,
		queue:   queue,
		logger:  logger,
	}
}

// CreateJobRequirementRequest registers an uploaded job-description PDF.
type CreateJobRequirementRequest struct {
	UserID  string
	PDFPath string
}

// CreateJobRequirement records the upload and returns the new record in
// status uploaded. The PDF is not parsed here; that happens on submit.
func (s *Service) CreateJobRequirement(ctx context.Context, req CreateJobRequirementRequest) (*entity.JobRequirement, error) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		s.logger.Warn("invalid user_id format", "user_id", req.UserID, "error", err)
		return nil, common.NewAppError("INVALID_INPUT", "user_id must be a UUID", common.ErrInvalidInput)
	}
	path := strings.TrimSpace(req.PDFPath)
	if err := validateUpload(path, constants.PDFExtension); err != nil {
		s.logger.Warn("job requirement upload rejected", "user_id", userID, "path", path, "error", err)
		return nil, err
	}

	jr := &entity.JobRequirement{
		UserID:     userID,
		PDFPath:    path,
		Status:     constants.JDStatusUploaded,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.jobReqs.Create(ctx, jr); err != nil {
		return nil, err
	}
	return jr, nil
}

// CreateResumeBatchRequest registers an uploaded resume ZIP against an
// existing job requirement.
type CreateResumeBatchRequest struct {
	UserID           string
	JobRequirementID uuid.UUID
	ZipPath          string
}

// CreateResumeBatch records the upload in status uploaded. The referenced job
// requirement must exist, but it does not have to be processed yet; that is
// checked when the batch runs.
func (s *Service) CreateResumeBatch(ctx context.Context, req CreateResumeBatchRequest) (*entity.ResumeBatch, error) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		s.logger.Warn("invalid user_id format", "user_id", req.UserID, "error", err)
		return nil, common.NewAppError("INVALID_INPUT", "user_id must be a UUID", common.ErrInvalidInput)
	}
	path := strings.TrimSpace(req.ZipPath)
	if err := validateUpload(path, constants.ZipExtension); err != nil {
		s.logger.Warn("resume batch upload rejected", "user_id", userID, "path", path, "error", err)
		return nil, err
	}
	if _, err := s.jobReqs.GetByID(ctx, req.JobRequirementID); err != nil {
		return nil, err
	}

	rb := &entity.ResumeBatch{
		UserID:           userID,
		JobRequirementID: req.JobRequirementID,
		ZipPath:          path,
		Status:           constants.BatchStatusUploaded,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.batches.Create(ctx, rb); err != nil {
		return nil, err
	}
	return rb, nil
}

// SubmitJobRequirement queues background processing for a job requirement and
// returns the task ID that will appear on the record.
func (s *Service) SubmitJobRequirement(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.jobReqs.GetByID(ctx, id); err != nil {
		return "", err
	}
	taskID := uuid.New().String()
	if err := s.queue.Enqueue(ctx, async.Job{
		Kind:        async.KindJobRequirement,
		EntityID:    id,
		TaskID:      taskID,
		SubmittedAt: time.Now(),
	}); err != nil {
		s.logger.Error("enqueue failed for job requirement", "id", id, "error", err)
		return "", common.WrapError(err, "enqueue job requirement")
	}
	return taskID, nil
}

// SubmitResumeBatch queues background processing for a resume batch.
func (s *Service) SubmitResumeBatch(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.batches.GetByID(ctx, id); err != nil {
		return "", err
	}
	taskID := uuid.New().String()
	if err := s.queue.Enqueue(ctx, async.Job{
		Kind:        async.KindResumeBatch,
		EntityID:    id,
		TaskID:      taskID,
		SubmittedAt: time.Now(),
	}); err != nil {
		s.logger.Error("enqueue failed for resume batch", "id", id, "error", err)
		return "", common.WrapError(err, "enqueue resume batch")
	}
	return taskID, nil
}

// GetJobRequirement returns the record with its current status.
func (s *Service) GetJobRequirement(ctx context.Context, id uuid.UUID) (*entity.JobRequirement, error) {
	return s.jobReqs.GetByID(ctx, id)
}

// GetResumeBatch returns the record with its current status.
func (s *Service) GetResumeBatch(ctx context.Context, id uuid.UUID) (*entity.ResumeBatch, error) {
	return s.batches.GetByID(ctx, id)
}

// ListRankedResumes returns a batch's results, best candidates first.
func (s *Service) ListRankedResumes(ctx context.Context, batchID uuid.UUID) ([]*entity.RankedResume, error) {
	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.results.ListByBatch(ctx, batchID)
}

// validateUpload checks the path is present, has the expected extension and
// points at an existing regular file.
func validateUpload(path, wantExt string) error {
	if path == "" {
		return common.NewAppError("INVALID_INPUT", "file path is required", common.ErrInvalidInput)
	}
	if constants.NormalizeExt(filepath.Ext(path)) != wantExt {
		return common.NewAppError("INVALID_FILE_TYPE",
			fmt.Sprintf("expected a .%s file, got %q", wantExt, path), common.ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		return common.NewAppError("FILE_NOT_FOUND", path, common.ErrInvalidInput)
	}
	if info.IsDir() {
		return common.NewAppError("INVALID_INPUT", path+" is a directory", common.ErrInvalidInput)
	}
	return nil
}
