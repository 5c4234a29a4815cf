package workflow

import "math"

// EstimateDuration returns the critical-path length of the definition
// in milliseconds: the minimum total duration assuming unlimited
// parallelism and every step taking exactly its Timeout.
//
// For each step in topological order the earliest finish time is the
// latest finish among its dependencies plus its own timeout; the
// estimate is the maximum over all steps. Phantom dependencies
// (references to undefined steps) contribute zero. A cyclic definition
// has no finite schedule, so the estimate is +Inf.
func (d *Definition) EstimateDuration() float64 {
	order, err := TopologicalSort(d.Steps)
	if err != nil {
		return math.Inf(1)
	}

	timeouts := make(map[string]float64, len(d.Steps))
	deps := make(map[string][]string, len(d.Steps))
	for _, s := range d.Steps {
		timeouts[s.Name] = float64(s.Timeout.Milliseconds())
		deps[s.Name] = s.DependsOn
	}

	finish := make(map[string]float64, len(order))
	var total float64
	for _, name := range order {
		var latest float64
		for _, dep := range deps[name] {
			if finish[dep] > latest {
				latest = finish[dep]
			}
		}
		finish[name] = latest + timeouts[name]
		if finish[name] > total {
			total = finish[name]
		}
	}
	return total
}
