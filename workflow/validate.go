package workflow

import "fmt"

// Validate checks the definition's structure and returns a list of
// human-readable violations, empty when the definition is valid. It
// reports, in order: duplicate step names, self-dependencies,
// references to undefined steps, and dependency cycles.
//
// Validation is advisory. Nothing else in the engine calls it: a
// caller may drive an invalid definition, with the documented
// consequences (phantom dependencies never complete, cycles make the
// duration estimate infinite).
func (d *Definition) Validate() []string {
	var violations []string

	defined := make(map[string]bool, len(d.Steps))
	for _, s := range d.Steps {
		if defined[s.Name] {
			violations = append(violations, fmt.Sprintf("duplicate step name: %q", s.Name))
		}
		defined[s.Name] = true
	}

	for _, s := range d.Steps {
		for _, dep := range s.DependsOn {
			if dep == s.Name {
				violations = append(violations, fmt.Sprintf("step %q depends on itself", s.Name))
			}
		}
	}

	for _, s := range d.Steps {
		for _, dep := range s.DependsOn {
			if !defined[dep] {
				violations = append(violations,
					fmt.Sprintf("step %q depends on undefined step %q", s.Name, dep))
			}
		}
	}

	if _, err := TopologicalSort(d.Steps); err != nil {
		violations = append(violations, err.Error())
	}

	return violations
}
