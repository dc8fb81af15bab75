package entity

import (
	"time"

	"github.com/google/uuid"

	"resumerank/constants"
)

// JobRequirement is one uploaded job-description PDF and its derived title/text.
type JobRequirement struct {
	ID               uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            *string                        `gorm:"type:varchar(255)" json:"title,omitempty"`
	DescriptionText  *string                        `gorm:"type:text" json:"description_text,omitempty"`
	PDFPath          string                         `gorm:"type:text;not null" json:"pdf_path"`
	Status           constants.JobRequirementStatus `gorm:"type:varchar(20);not null;default:uploaded" json:"status"`
	ProcessingTaskID *string                        `gorm:"type:varchar(255)" json:"processing_task_id,omitempty"`
	ErrorDetail      *string                        `gorm:"type:text" json:"error_detail,omitempty"`
	UploadedAt       time.Time                      `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (JobRequirement) TableName() string { return "job_requirements" }
