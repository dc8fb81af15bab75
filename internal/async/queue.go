package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobKind selects which pipeline a queued job runs.
type JobKind string

const (
	KindJobRequirement JobKind = "job_requirement"
	KindResumeBatch    JobKind = "resume_batch"
)

// Job is one unit of background work: process a job-description PDF or a
// resume batch. TaskID ties the record's processing_task_id to log lines.
type Job struct {
	Kind        JobKind
	EntityID    uuid.UUID
	TaskID      string
	SubmittedAt time.Time
}

// Queue accepts background jobs. Enqueue returns once the job is accepted;
// the work itself runs on the pool's workers.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
