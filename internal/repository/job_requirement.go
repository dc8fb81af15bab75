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

// JobRequirementRepository persists job descriptions and their status
// lifecycle. Only the job-description orchestrator mutates rows; title and
// description text are written together, exactly once, on MarkProcessed.
type JobRequirementRepository interface {
	Create(ctx context.Context, jr *entity.JobRequirement) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JobRequirement, error)
	MarkProcessing(ctx context.Context, id uuid.UUID, taskID string) error
	MarkProcessed(ctx context.Context, id uuid.UUID, title, descriptionText string) error
	MarkFailed(ctx context.Context, id uuid.UUID, detail string) error
}

type jobRequirementRepo struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewJobRequirementRepository(db *gorm.DB, log *slog.Logger) JobRequirementRepository {
	if log == nil {
		log = slog.Default()
	}
	return &jobRequirementRepo{db: db, log: log}
}

func (r *jobRequirementRepo) Create(ctx context.Context, jr *entity.JobRequirement) error {
	if jr.ID == uuid.Nil {
		jr.ID = uuid.New()
	}
	if jr.Status == "" {
		jr.Status = constants.JDStatusUploaded
	}
	if err := r.db.WithContext(ctx).Create(jr).Error; err != nil {
		r.log.Error("job_requirement create failed", "user_id", jr.UserID, "error", err)
		return common.WrapError(err, "create job requirement")
	}
	r.log.Info("job_requirement created", "id", jr.ID, "user_id", jr.UserID)
	return nil
}

func (r *jobRequirementRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.JobRequirement, error) {
	var jr entity.JobRequirement
	err := r.db.WithContext(ctx).First(&jr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewAppError("JOB_REQUIREMENT_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	if err != nil {
		r.log.Error("job_requirement get failed", "id", id, "error", err)
		return nil, common.WrapError(err, "get job requirement")
	}
	return &jr, nil
}

func (r *jobRequirementRepo) MarkProcessing(ctx context.Context, id uuid.UUID, taskID string) error {
	err := r.db.WithContext(ctx).Model(&entity.JobRequirement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":             constants.JDStatusProcessing,
			"processing_task_id": taskID,
		}).Error
	if err != nil {
		r.log.Error("job_requirement mark processing failed", "id", id, "error", err)
		return common.WrapError(err, "mark job requirement processing")
	}
	r.log.Info("job_requirement processing", "id", id, "task_id", taskID)
	return nil
}

func (r *jobRequirementRepo) MarkProcessed(ctx context.Context, id uuid.UUID, title, descriptionText string) error {
	err := r.db.WithContext(ctx).Model(&entity.JobRequirement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           constants.JDStatusProcessed,
			"title":            title,
			"description_text": descriptionText,
		}).Error
	if err != nil {
		r.log.Error("job_requirement mark processed failed", "id", id, "error", err)
		return common.WrapError(err, "mark job requirement processed")
	}
	r.log.Info("job_requirement processed", "id", id, "title", title, "text_len", len(descriptionText))
	return nil
}

func (r *jobRequirementRepo) MarkFailed(ctx context.Context, id uuid.UUID, detail string) error {
	err := r.db.WithContext(ctx).Model(&entity.JobRequirement{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       constants.JDStatusFailed,
			"error_detail": detail,
		}).Error
	if err != nil {
		r.log.Error("job_requirement mark failed failed", "id", id, "error", err)
		return common.WrapError(err, "mark job requirement failed")
	}
	r.log.Warn("job_requirement failed", "id", id, "detail", detail)
	return nil
}
