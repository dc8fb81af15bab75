package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"resumerank/constants"
)

// RankedResume is the per-candidate extraction and scoring result within a
// batch. Rows are write-once: the orchestrator persists the whole batch in one
// transaction and nothing in the core updates them afterwards.
//
// CompatibilityScore, CandidateName and CandidateEmail mirror values nested in
// the JSON columns. They exist only so listings can sort and filter without
// unpacking JSON; they are never authored independently.
type RankedResume struct {
	ID                 uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	ResumeBatchID      uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:uq_ranked_resumes_batch_file" json:"resume_batch_id"`
	FileName           string                 `gorm:"type:varchar(255);not null;uniqueIndex:uq_ranked_resumes_batch_file" json:"file_name"`
	Status             constants.ResumeStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	ExtractedInfo      json.RawMessage        `gorm:"type:jsonb" json:"extracted_info,omitempty"`
	RankingAnalysis    json.RawMessage        `gorm:"type:jsonb" json:"ranking_analysis,omitempty"`
	CompatibilityScore int                    `gorm:"not null;default:0;index" json:"compatibility_score"`
	CandidateName      string                 `gorm:"type:varchar(255);not null;default:'N/A'" json:"candidate_name"`
	CandidateEmail     string                 `gorm:"type:varchar(255);not null;default:'N/A'" json:"candidate_email"`
	ErrorDetail        *string                `gorm:"type:text" json:"error_detail,omitempty"`
	CreatedAt          time.Time              `gorm:"autoCreateTime" json:"created_at"`
}

func (RankedResume) TableName() string { return "ranked_resumes" }
