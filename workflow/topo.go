package workflow

import (
	"errors"
	"fmt"
)

// ErrCycle reports that the dependency relation is not acyclic.
var ErrCycle = errors.New("dependency cycle detected")

// TopologicalSort orders step names so that every step appears after
// all names in its DependsOn, using Kahn's algorithm.
//
// Nodes are the union of all step names and all names referenced by
// any DependsOn: a dependency on an undefined step becomes a phantom
// node with no dependencies of its own and is silently included in the
// result. Catching such references is Validate's job, not the sort's.
//
// The ordering is deterministic: nodes are released in first-appearance
// order. If the graph contains a cycle the produced ordering is shorter
// than the node count and an error wrapping ErrCycle is returned.
func TopologicalSort(steps []Step) ([]string, error) {
	var names []string // distinct nodes, first-appearance order
	indegree := make(map[string]int)
	dependents := make(map[string][]string)

	addNode := func(name string) {
		if _, ok := indegree[name]; !ok {
			indegree[name] = 0
			names = append(names, name)
		}
	}
	for _, s := range steps {
		addNode(s.Name)
		for _, dep := range s.DependsOn {
			addNode(dep)
			dependents[dep] = append(dependents[dep], s.Name)
			indegree[s.Name]++
		}
	}

	var queue []string
	for _, name := range names {
		if indegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	order := make([]string, 0, len(names))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		for _, next := range dependents[name] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) < len(names) {
		return nil, fmt.Errorf("sorting %d steps left %d unordered: %w",
			len(names), len(names)-len(order), ErrCycle)
	}
	return order, nil
}
