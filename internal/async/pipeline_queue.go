package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"resumerank/internal/common"
	"resumerank/internal/pipeline/jobdesc"
	"resumerank/internal/pipeline/resumebatch"
)

// Runner is the pipeline entry point a worker invokes for one record.
type Runner interface {
	Run(ctx context.Context, entityID uuid.UUID, taskID string) error
}

var (
	_ Runner = (*jobdesc.Pipeline)(nil)
	_ Runner = (*resumebatch.Pipeline)(nil)
)

// PipelineQueue is an in-process worker pool dispatching jobs to the
// job-description and resume-batch pipelines. Workers start immediately and
// run until Shutdown drains the channel.
type PipelineQueue struct {
	jobDescs Runner
	batches  Runner
	logger   *slog.Logger
	workers  int
	timeout  time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*PipelineQueue)

func WithWorkers(n int) Option {
	return func(q *PipelineQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *PipelineQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *PipelineQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewPipelineQueue(jobDescs, batches Runner, logger *slog.Logger, opts ...Option) *PipelineQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &PipelineQueue{
		jobDescs: jobDescs,
		batches:  batches,
		logger:   logger,
		workers:  4,
		timeout:  10 * time.Minute,
		ch:       make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *PipelineQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					q.runJob(workerID, job)
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *PipelineQueue) runJob(workerID int, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()
	ctx = common.WithTaskID(ctx, job.TaskID)

	var err error
	switch job.Kind {
	case KindJobRequirement:
		err = q.jobDescs.Run(ctx, job.EntityID, job.TaskID)
	case KindResumeBatch:
		err = q.batches.Run(ctx, job.EntityID, job.TaskID)
	default:
		q.logger.Error("unknown job kind", "worker_id", workerID, "kind", job.Kind, "entity_id", job.EntityID)
		return
	}

	wait := time.Since(job.SubmittedAt)
	if err != nil {
		q.logger.Error("job failed", "worker_id", workerID, "kind", job.Kind, "entity_id", job.EntityID, "task_id", job.TaskID, "wait_ms", wait.Milliseconds(), "error", err)
	} else {
		q.logger.Info("job completed", "worker_id", workerID, "kind", job.Kind, "entity_id", job.EntityID, "task_id", job.TaskID, "wait_ms", wait.Milliseconds())
	}
}

func (q *PipelineQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "kind", job.Kind, "entity_id", job.EntityID)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued job", "kind", job.Kind, "entity_id", job.EntityID, "task_id", job.TaskID)
	default:
		q.logger.Warn("queue full, applying backpressure", "kind", job.Kind, "entity_id", job.EntityID)
		q.ch <- job
	}
	return nil
}

func (q *PipelineQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
