package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumerank/internal/common"
	"resumerank/internal/entity"
)

// RankedResumeRepository persists per-resume results. Writes are append-only
// per (batch, file name); the whole result set for one batch is committed in a
// single transaction so partial sets are never visible.
type RankedResumeRepository interface {
	CreateForBatch(ctx context.Context, batchID uuid.UUID, rows []*entity.RankedResume) error
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*entity.RankedResume, error)
	CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
}

type rankedResumeRepo struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewRankedResumeRepository(db *gorm.DB, log *slog.Logger) RankedResumeRepository {
	if log == nil {
		log = slog.Default()
	}
	return &rankedResumeRepo{db: db, log: log}
}

// CreateForBatch inserts all rows for a batch atomically. Any failure rolls
// the whole set back.
func (r *rankedResumeRepo) CreateForBatch(ctx context.Context, batchID uuid.UUID, rows []*entity.RankedResume) error {
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.ResumeBatchID = batchID
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("ranked_resume batch insert failed", "batch_id", batchID, "rows", len(rows), "error", err)
		return common.WrapError(err, "persist ranked resumes")
	}
	r.log.Info("ranked_resume batch inserted", "batch_id", batchID, "rows", len(rows))
	return nil
}

// ListByBatch returns a batch's results ordered by compatibility score,
// best candidates first.
func (r *rankedResumeRepo) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*entity.RankedResume, error) {
	var rows []*entity.RankedResume
	err := r.db.WithContext(ctx).
		Where("resume_batch_id = ?", batchID).
		Order("compatibility_score DESC").
		Find(&rows).Error
	if err != nil {
		r.log.Error("ranked_resume list failed", "batch_id", batchID, "error", err)
		return nil, common.WrapError(err, "list ranked resumes")
	}
	return rows, nil
}

func (r *rankedResumeRepo) CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.RankedResume{}).
		Where("resume_batch_id = ?", batchID).
		Count(&n).Error
	if err != nil {
		r.log.Error("ranked_resume count failed", "batch_id", batchID, "error", err)
		return 0, common.WrapError(err, "count ranked resumes")
	}
	return n, nil
}
