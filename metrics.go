package schedkit

import (
	"sync/atomic"
)

// MetricsPolicy defines hooks used by the scheduler to report
// queueing and lifecycle activity.
//
// Implementations must be safe for concurrent use.
// All methods are expected to be lightweight and non-blocking.
type MetricsPolicy interface {

	// IncSubmitted increments the submitted jobs counter.
	IncSubmitted()

	// IncDispatched increments the dispatched jobs counter.
	//
	// A job is counted once per attempt handed out by Next, so a
	// retried job is dispatched more than once.
	IncDispatched()

	// IncRetried increments the granted retries counter.
	IncRetried()

	// IncCancelled increments the cancelled jobs counter.
	IncCancelled()

	// SetQueueDepth records the current heap size, including entries
	// awaiting lazy discard.
	SetQueueDepth(n int64)
}

// AtomicMetrics is a lock-free metrics implementation backed by atomics.
//
// Writes are optimized for hot paths.
// Reads are intended for cold-path observation.
type AtomicMetrics struct {
	// submitted is the total number of jobs accepted by Submit.
	submitted atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	// dispatched is the total number of attempts handed out by Next.
	dispatched atomic.Uint64

	_ [56]byte

	retried   atomic.Uint64
	cancelled atomic.Uint64

	// queueDepth is the last observed heap size.
	queueDepth atomic.Int64
}

// Submitted returns the total number of submitted jobs.
func (m *AtomicMetrics) Submitted() uint64 { return m.submitted.Load() }

// Dispatched returns the total number of dispatched attempts.
func (m *AtomicMetrics) Dispatched() uint64 { return m.dispatched.Load() }

// Retried returns the total number of granted retries.
func (m *AtomicMetrics) Retried() uint64 { return m.retried.Load() }

// Cancelled returns the total number of cancelled jobs.
func (m *AtomicMetrics) Cancelled() uint64 { return m.cancelled.Load() }

// QueueDepth returns the last recorded heap size.
func (m *AtomicMetrics) QueueDepth() int64 { return m.queueDepth.Load() }

func (m *AtomicMetrics) IncSubmitted()         { m.submitted.Add(1) }
func (m *AtomicMetrics) IncDispatched()        { m.dispatched.Add(1) }
func (m *AtomicMetrics) IncRetried()           { m.retried.Add(1) }
func (m *AtomicMetrics) IncCancelled()         { m.cancelled.Add(1) }
func (m *AtomicMetrics) SetQueueDepth(n int64) { m.queueDepth.Store(n) }

//------------- NoopMetrics ----------------------------------

// NoopMetrics is a MetricsPolicy implementation that discards
// all metric updates.
//
// It can be used when metrics collection is disabled and
// zero overhead is desired.
type NoopMetrics struct{}

func (m *NoopMetrics) IncSubmitted()         {}
func (m *NoopMetrics) IncDispatched()        {}
func (m *NoopMetrics) IncRetried()           {}
func (m *NoopMetrics) IncCancelled()         {}
func (m *NoopMetrics) SetQueueDepth(n int64) {}
