package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumerank/constants"
	"resumerank/internal/common"
	"resumerank/internal/entity"
)

// ResumeBatchRepository persists resume batches. The status sequence is
// strictly uploaded -> extracting -> processing -> completed|failed; only the
// batch orchestrator drives it.
type ResumeBatchRepository interface {
	Create(ctx context.Context, rb *entity.ResumeBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeBatch, error)
	MarkExtracting(ctx context.Context, id uuid.UUID, taskID string) error
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, detail string) error
}

type resumeBatchRepo struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewResumeBatchRepository(db *gorm.DB, log *slog.Logger) ResumeBatchRepository {
	if log == nil {
		log = slog.Default()
	}
	return &resumeBatchRepo{db: db, log: log}
}

func (r *resumeBatchRepo) Create(ctx context.Context, rb *entity.ResumeBatch) error {
	if rb.ID == uuid.Nil {
		rb.ID = uuid.New()
	}
	if rb.Status == "" {
		rb.Status = constants.BatchStatusUploaded
	}
	if err := r.db.WithContext(ctx).Create(rb).Error; err != nil {
		r.log.Error("resume_batch create failed", "user_id", rb.UserID, "job_requirement_id", rb.JobRequirementID, "error", err)
		return common.WrapError(err, "create resume batch")
	}
	r.log.Info("resume_batch created", "id", rb.ID, "job_requirement_id", rb.JobRequirementID)
	return nil
}

func (r *resumeBatchRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeBatch, error) {
	var rb entity.ResumeBatch
	err := r.db.WithContext(ctx).First(&rb, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewAppError("RESUME_BATCH_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("resume_batch get failed", "id", id, "error", err)
		return nil, common.WrapError(err, "get resume batch")
	}
	return &rb, nil
}

func (r *resumeBatchRepo) MarkExtracting(ctx context.Context, id uuid.UUID, taskID string) error {
	return r.setStatus(ctx, id, map[string]any{
		"status":             constants.BatchStatusExtracting,
		"processing_task_id": taskID,
	})
}

func (r *resumeBatchRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, map[string]any{"status": constants.BatchStatusProcessing})
}

func (r *resumeBatchRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, map[string]any{"status": constants.BatchStatusCompleted})
}

func (r *resumeBatchRepo) MarkFailed(ctx context.Context, id uuid.UUID, detail string) error {
	err := r.setStatus(ctx, id, map[string]any{
		"status":       constants.BatchStatusFailed,
		"error_detail": detail,
	})
	if err == nil {
		r.log.Warn("resume_batch failed", "id", id, "detail", detail)
	}
	return err
}

func (r *resumeBatchRepo) setStatus(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	err := r.db.WithContext(ctx).Model(&entity.ResumeBatch{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		r.log.Error("resume_batch status update failed", "id", id, "fields", fields, "error", err)
		return common.WrapError(err, "update resume batch status")
	}
	r.log.Info("resume_batch status updated", "id", id, "status", fields["status"])
	return nil
}
