package entity

import (
	"time"

	"github.com/google/uuid"

	"resumerank/constants"
)

// ResumeBatch is one uploaded ZIP of candidate resumes tied to a JobRequirement.
type ResumeBatch struct {
	ID               uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	JobRequirementID uuid.UUID             `gorm:"type:uuid;not null;index" json:"job_requirement_id"`
	ZipPath          string                `gorm:"type:text;not null" json:"zip_path"`
	Status           constants.BatchStatus `gorm:"type:varchar(20);not null;default:uploaded" json:"status"`
	ProcessingTaskID *string               `gorm:"type:varchar(255)" json:"processing_task_id,omitempty"`
	ErrorDetail      *string               `gorm:"type:text" json:"error_detail,omitempty"`
	UploadedAt       time.Time             `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (ResumeBatch) TableName() string { return "resume_batches" }
