package schedkit

import (
	"sync"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
)

// Scheduler owns the lifecycle of submitted jobs: a minimum-priority
// queue of not-yet-dispatched work plus one record per job id.
//
// All exported methods are safe for concurrent use; the (queue,
// records) pair is a single critical section guarded by one mutex.
// Methods never block on anything but that mutex and never fail:
// invalid preconditions surface as boolean or zero returns.
type Scheduler[T any] struct {
	mu      sync.Mutex
	queue   *Queue[*ScheduledJob[T]]
	records map[string]*jobRecord[T]
	retry   RetryPolicy
	metrics MetricsPolicy
}

// NewScheduler creates an empty scheduler. Zero opts fields fall back
// to defaults (see Options).
func NewScheduler[T any](opts Options) *Scheduler[T] {
	opts.FillDefaults()
	return &Scheduler[T]{
		queue:   NewQueue[*ScheduledJob[T]](),
		records: make(map[string]*jobRecord[T]),
		retry:   opts.DefaultRetry,
		metrics: opts.Metrics,
	}
}

// Submit enqueues a job and creates its pending lifecycle record.
// Submit never fails. Job ids must be unique within one scheduler;
// resubmitting an id replaces the previous record and leaves the old
// heap entry to be discarded lazily.
func (s *Scheduler[T]) Submit(job *ScheduledJob[T]) {
	s.mu.Lock()
	s.records[job.ID] = &jobRecord[T]{job: job, status: StatusPending}
	s.queue.Push(job, job.Priority)
	depth := s.queue.Len()
	s.mu.Unlock()

	s.metrics.IncSubmitted()
	s.metrics.SetQueueDepth(int64(depth))
	lg.FromContext(job.context()).Info("job submitted",
		lg.String("id", job.ID),
		lg.Any("priority", job.Priority),
	)
}

// Next pops queued jobs until it finds one that is ready at now:
// pending with ScheduledAt reached, or retrying with its retry
// deadline reached. The ready job transitions to running, its attempt
// counter increments, and every job examined but not returned is
// re-pushed at its original priority. Entries whose record is missing
// or already terminal are discarded permanently.
//
// If nothing is ready, Next returns nil and false. The scan is linear
// in the number of not-yet-ready entries ahead of the next ready one;
// this is a documented cost, not a bug.
func (s *Scheduler[T]) Next(now time.Time) (*ScheduledJob[T], bool) {
	s.mu.Lock()

	var picked *ScheduledJob[T]
	var skipped []*ScheduledJob[T]
	for {
		job, ok := s.queue.Pop()
		if !ok {
			break
		}
		rec, known := s.records[job.ID]
		if !known || rec.status.terminal() {
			continue // zombie heap entry
		}
		if rec.ready(now) {
			rec.status = StatusRunning
			rec.attempt++
			rec.lastAttempt = now
			picked = job
			break
		}
		skipped = append(skipped, job)
	}
	for _, job := range skipped {
		s.queue.Push(job, job.Priority)
	}
	depth := s.queue.Len()
	var attempt int
	if picked != nil {
		attempt = s.records[picked.ID].attempt
	}
	s.mu.Unlock()

	s.metrics.SetQueueDepth(int64(depth))
	if picked == nil {
		return nil, false
	}
	s.metrics.IncDispatched()
	lg.FromContext(picked.context()).Info("job dispatched",
		lg.String("id", picked.ID),
		lg.Int("attempt", attempt),
	)
	return picked, true
}

// Complete records the outcome of a running job. Only StatusCompleted
// and StatusFailed are accepted; any other value is ignored, as is an
// unknown id. Completion is an idempotent no-op report, not an error
// path.
func (s *Scheduler[T]) Complete(id string, status JobStatus) {
	if status != StatusCompleted && status != StatusFailed {
		return
	}
	s.mu.Lock()
	rec, ok := s.records[id]
	if ok {
		rec.status = status
	}
	s.mu.Unlock()

	if ok {
		lg.FromContext(rec.job.context()).Info("job finished",
			lg.String("id", id),
			lg.String("status", string(status)),
		)
	}
}

// Retry re-queues a failed job with an exponentially growing delay.
//
// A job still marked running is also accepted, so callers may declare
// a presumed-stuck attempt lost and schedule another one.
//
// Retry returns false, without mutating anything, if the id is
// unknown, the status is neither failed nor running, or the attempt
// budget (MaxRetries) is exhausted. The delay comes from the
// scheduler-level default policy; per-job policies are not consulted.
func (s *Scheduler[T]) Retry(id string, now time.Time) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok || (rec.status != StatusFailed && rec.status != StatusRunning) {
		s.mu.Unlock()
		return false
	}
	if rec.attempt >= rec.job.MaxRetries {
		s.mu.Unlock()
		return false
	}
	delay := ComputeRetryDelay(s.retry, rec.attempt)
	rec.status = StatusRetrying
	rec.nextRetry = now.Add(delay)
	s.queue.Push(rec.job, rec.job.Priority)
	depth := s.queue.Len()
	attempt := rec.attempt
	s.mu.Unlock()

	s.metrics.IncRetried()
	s.metrics.SetQueueDepth(int64(depth))
	lg.FromContext(rec.job.context()).Warn("job retry scheduled",
		lg.String("id", id),
		lg.Int("attempt", attempt),
		lg.String("delay", delay.String()),
	)
	return true
}

// Cancel marks a job cancelled and reports whether it did so. Jobs
// already completed, failed or cancelled (and unknown ids) are left
// untouched and reported as false. The heap entry, if any, is
// discarded lazily by a later Next.
func (s *Scheduler[T]) Cancel(id string) bool {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok || rec.status.terminal() {
		s.mu.Unlock()
		return false
	}
	rec.status = StatusCancelled
	s.mu.Unlock()

	s.metrics.IncCancelled()
	lg.FromContext(rec.job.context()).Info("job cancelled", lg.String("id", id))
	return true
}

// Status returns the current lifecycle status of a job, or false if
// the id was never submitted.
func (s *Scheduler[T]) Status(id string) (JobStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return "", false
	}
	return rec.status, true
}

// Job returns the submitted job for an id, or false if unknown.
// Terminal jobs remain queryable; records are never deleted.
func (s *Scheduler[T]) Job(id string) (*ScheduledJob[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return rec.job, true
}

// QueueDepth returns the current heap size. The count may include
// entries for terminal jobs awaiting lazy discard.
func (s *Scheduler[T]) QueueDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// PendingJobs returns every job whose status is pending or retrying.
// The scan covers the whole records map; order is unspecified.
func (s *Scheduler[T]) PendingJobs() []*ScheduledJob[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []*ScheduledJob[T]
	for _, rec := range s.records {
		if rec.status == StatusPending || rec.status == StatusRetrying {
			jobs = append(jobs, rec.job)
		}
	}
	return jobs
}
