package schedkit

import (
	"context"
	"time"
)

// JobStatus is the lifecycle state of a submitted job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusRetrying  JobStatus = "retrying"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// terminal reports whether a job in this status is finished as far as
// the queue is concerned. Failed jobs may still be revived by Retry.
func (s JobStatus) terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// ScheduledJob is a unit of schedulable work.
//
// ID must be unique within one Scheduler instance. Priority orders
// dispatch (lower value first). ScheduledAt defers dispatch until the
// given time; the zero value means eligible immediately. MaxRetries
// bounds how many attempts Retry may grant beyond the first.
//
// The job is owned by the caller and treated as immutable once
// submitted; the scheduler keeps its mutable lifecycle state in an
// internal record instead.
//
// Ctx is optional and is used for logger propagation only; the
// scheduler never blocks on it.
type ScheduledJob[T any] struct {
	ID          string
	Priority    float64
	ScheduledAt time.Time
	MaxRetries  int

	Payload T
	Ctx     context.Context
}

// jobRecord is the scheduler-private lifecycle state for one job id.
// Records are created on Submit, mutated only under the scheduler
// mutex, and never deleted: terminal jobs stay queryable by id.
type jobRecord[T any] struct {
	job         *ScheduledJob[T]
	status      JobStatus
	attempt     int
	lastAttempt time.Time
	nextRetry   time.Time
}

// ready reports whether the job may be dispatched at the given time.
func (r *jobRecord[T]) ready(now time.Time) bool {
	switch r.status {
	case StatusPending:
		return !r.job.ScheduledAt.After(now)
	case StatusRetrying:
		return !r.nextRetry.After(now)
	default:
		return false
	}
}

func (j *ScheduledJob[T]) context() context.Context {
	if j.Ctx != nil {
		return j.Ctx
	}
	return context.Background()
}
