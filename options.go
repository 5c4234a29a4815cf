package schedkit

// Options configure a Scheduler.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type Options struct {
	// DefaultRetry is the policy consulted by Retry for every job.
	//
	// Note: per-job retry configuration is intentionally not
	// supported; Retry always uses this scheduler-level policy.
	DefaultRetry RetryPolicy

	// Metrics receives lifecycle counters. Nil disables collection.
	Metrics MetricsPolicy
}

func (o *Options) FillDefaults() {
	o.DefaultRetry.fillDefaults()
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}
