package schedkit_test

import (
	"testing"
	"time"

	sk "github.com/avk/schedkit"
)

func TestComputeRetryDelay(t *testing.T) {
	p := sk.RetryPolicy{
		Initial:    1000 * time.Millisecond,
		Multiplier: 2,
		Max:        60 * time.Second,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{5, 32 * time.Second},
		{6, 60 * time.Second},  // 64s capped
		{20, 60 * time.Second}, // deep overflow territory, still capped
	}
	for _, tc := range tests {
		if got := sk.ComputeRetryDelay(p, tc.attempt); got != tc.want {
			t.Errorf("ComputeRetryDelay(attempt=%d) = %v, want %v", tc.attempt, got, tc.want)
		}
	}
}

func TestComputeRetryDelayNonDecreasing(t *testing.T) {
	p := sk.RetryPolicy{
		Initial:    200 * time.Millisecond,
		Multiplier: 1.5,
		Max:        5 * time.Second,
	}

	prev := time.Duration(0)
	for attempt := 0; attempt < 30; attempt++ {
		d := sk.ComputeRetryDelay(p, attempt)
		if d < prev {
			t.Fatalf("delay decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		if d > p.Max {
			t.Fatalf("delay exceeds cap at attempt %d: %v", attempt, d)
		}
		prev = d
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := sk.DefaultRetryPolicy()

	if p.Initial != time.Second || p.Multiplier != 2 || p.Max != 60*time.Second {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if got := sk.ComputeRetryDelay(p, 0); got != time.Second {
		t.Fatalf("first retry delay = %v, want 1s", got)
	}
}
