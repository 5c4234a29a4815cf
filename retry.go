package schedkit

import (
	"math"
	"time"
)

const (
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 1000 * time.Millisecond
	defaultMultiplier     = 2.0
	defaultMaxBackoff     = 60 * time.Second
)

// RetryPolicy describes how often a failed job should be retried and
// how fast the delay between attempts grows.
// Zero values are treated as "use scheduler defaults".
type RetryPolicy struct {
	// MaxAttempts is the maximum number of tries for a job.
	MaxAttempts int

	// Initial is the backoff before the first retry.
	Initial time.Duration

	// Multiplier scales the backoff on every subsequent attempt.
	Multiplier float64

	// Max is the cap for the backoff duration.
	Max time.Duration
}

// DefaultRetryPolicy returns the policy the scheduler falls back to:
// 1s initial backoff, doubling per attempt, capped at 60s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		Initial:     defaultInitialBackoff,
		Multiplier:  defaultMultiplier,
		Max:         defaultMaxBackoff,
	}
}

func (p *RetryPolicy) fillDefaults() {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Initial <= 0 {
		p.Initial = defaultInitialBackoff
	}
	if p.Multiplier <= 0 {
		p.Multiplier = defaultMultiplier
	}
	if p.Max <= 0 {
		p.Max = defaultMaxBackoff
	}
}

// ComputeRetryDelay returns min(Initial * Multiplier^attempt, Max).
// It is a pure function: deterministic, no jitter. For Multiplier >= 1
// the result is non-decreasing in attempt.
func ComputeRetryDelay(p RetryPolicy, attempt int) time.Duration {
	d := float64(p.Initial) * math.Pow(p.Multiplier, float64(attempt))
	if d > float64(p.Max) {
		return p.Max
	}
	return time.Duration(d)
}
