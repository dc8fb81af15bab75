package constants

// JobRequirementStatus is the canonical status for rows in job_requirements.
type JobRequirementStatus string

// Stable values (store these exact strings in DB).
const (
	JDStatusUploaded   JobRequirementStatus = "uploaded"      // PDF received, nothing processed yet
	JDStatusProcessing JobRequirementStatus = "processing_jd" // text/title extraction in progress
	JDStatusProcessed  JobRequirementStatus = "processed_jd"  // text + title persisted, batches may run
	JDStatusFailed     JobRequirementStatus = "failed_jd"     // terminal failure
)

// BatchStatus is the canonical status for rows in resume_batches.
type BatchStatus string

const (
	BatchStatusUploaded   BatchStatus = "uploaded"   // ZIP received
	BatchStatusExtracting BatchStatus = "extracting" // unpacking archive members
	BatchStatusProcessing BatchStatus = "processing" // per-resume extraction/scoring in flight
	BatchStatusCompleted  BatchStatus = "completed"  // terminal: all results persisted
	BatchStatusFailed     BatchStatus = "failed"     // terminal failure, reachable from any step
)

// ResumeStatus is the per-document outcome stored on ranked_resumes.
type ResumeStatus string

const (
	ResumeStatusPending          ResumeStatus = "pending"
	ResumeStatusExtracted        ResumeStatus = "extracted"
	ResumeStatusRanked           ResumeStatus = "ranked"
	ResumeStatusFailedExtraction ResumeStatus = "failed_extraction"
	ResumeStatusFailedRanking    ResumeStatus = "failed_ranking"
	ResumeStatusTextTooShort     ResumeStatus = "text_too_short"
)
