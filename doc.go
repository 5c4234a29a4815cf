// Package schedkit provides an in-process work-scheduling core: a
// priority-ordered job queue with retry/backoff lifecycle management.
// The companion workflow package adds a dependency-graph engine for
// sequencing named steps of a larger job.
//
// Design goals
//
// The package is a decision engine, not an executor:
//
//   - Callers submit jobs and poll for the next ready one
//   - Execution of the job payload happens entirely outside the core
//   - Outcomes are reported back (complete, retry, cancel) and drive
//     an explicit per-job state machine
//   - All state is in memory; nothing is persisted or distributed
//
// Architecture overview
//
// The scheduler is composed of three layers:
//
//  1. Queue
//     A generic minimum-priority heap. Lower priority values are
//     dequeued first. Payloads are opaque and duplicates are legal.
//
//  2. Scheduler
//     Owns one lifecycle record per submitted job id and the queue of
//     not-yet-dispatched jobs. Submit, Next, Complete, Retry and
//     Cancel are serialized by a single mutex; the (queue, records)
//     pair is one critical section.
//
//  3. Job lifecycle
//     pending -> running -> completed | failed, with failed or running
//     jobs re-entering the queue as retrying until their retry budget
//     is exhausted, and pending or retrying jobs being cancellable.
//
// Readiness model
//
// Next performs a linear scan in the worst case: it pops entries until
// it finds one whose schedule (ScheduledAt, or the retry deadline set
// by Retry) has arrived, then re-pushes everything it skipped at the
// original priorities. The priority heap alone cannot answer "next
// ready item", so the scan cost is bounded by the number of
// not-yet-ready entries ahead of the next ready one. This is a known
// cost; callers needing hard latency bounds should cap the entries
// scanned per call or maintain a secondary time-ordered index.
//
// Entries for jobs that have already reached a terminal state are left
// in the heap and discarded lazily when popped, so QueueDepth may
// overcount live work.
//
// Error handling
//
// Scheduler operations do not fail: invalid preconditions surface as
// boolean or zero returns, and reporting an outcome for an unknown job
// id is a no-op. Structural errors exist only in the workflow engine,
// where a dependency cycle is reported as an error by the topological
// sort and absorbed by its callers.
package schedkit
