package workflow

import (
	"time"
)

// Step is one named unit of work inside a Definition. Names must be
// unique within a definition; DependsOn lists the names of steps that
// must complete first. Timeout is the step's expected upper duration
// bound, used for critical-path estimation and by external drivers.
type Step struct {
	Name      string
	DependsOn []string
	Timeout   time.Duration
}

// Definition is a named, immutable collection of steps forming a DAG.
// Construct it once, optionally Validate it, then drive any number of
// executions against it.
type Definition struct {
	Name  string
	Steps []Step
}

// Status is the overall state of one workflow execution.
type Status string

const (
	StatusRunning Status = "running"
	StatusFailed  Status = "failed"
)

// Execution is the mutable progress record of one run of a
// Definition. It is owned by the engine: callers mutate it only
// through CompleteStep and FailStep, and read it through accessors
// that return copies. An Execution is not safe for concurrent use;
// the owner must serialize access.
type Execution struct {
	workflowID  string
	status      Status
	completed   []string
	completedBy map[string]struct{}
	currentStep string
	startedAt   time.Time
}

// NewExecution starts a fresh execution of the definition.
func NewExecution(def *Definition) *Execution {
	return &Execution{
		workflowID:  def.Name,
		status:      StatusRunning,
		completedBy: make(map[string]struct{}),
		startedAt:   time.Now(),
	}
}

// WorkflowID returns the name of the definition being executed.
func (e *Execution) WorkflowID() string { return e.workflowID }

// Status returns the overall execution status. Once failed it never
// reverts to running.
func (e *Execution) Status() Status { return e.status }

// CompletedSteps returns the names of completed steps in completion
// order. The slice is a copy; it never shrinks and holds no
// duplicates.
func (e *Execution) CompletedSteps() []string {
	out := make([]string, len(e.completed))
	copy(out, e.completed)
	return out
}

// CurrentStep returns the step recorded by the last FailStep, or ""
// when no step is current.
func (e *Execution) CurrentStep() string { return e.currentStep }

// StartedAt returns when the execution was created.
func (e *Execution) StartedAt() time.Time { return e.startedAt }

// Completed reports whether the named step has completed.
func (e *Execution) Completed(name string) bool {
	_, ok := e.completedBy[name]
	return ok
}

// CompleteStep records a step as completed and clears the current
// step. Completing a step twice is a no-op. CompleteStep never flips
// the overall status: whole-workflow completion is a separate check
// (see Definition.IsComplete).
func (e *Execution) CompleteStep(name string) {
	if _, ok := e.completedBy[name]; !ok {
		e.completed = append(e.completed, name)
		e.completedBy[name] = struct{}{}
	}
	e.currentStep = ""
}

// FailStep marks the execution failed at the named step. Previously
// completed steps are left as they are: failure is fail-fast, not
// transactional.
func (e *Execution) FailStep(name string) {
	e.status = StatusFailed
	e.currentStep = name
}

// ReadySteps returns every step that has not completed and whose
// dependencies have all completed, in definition order.
func (d *Definition) ReadySteps(e *Execution) []Step {
	var ready []Step
	for _, s := range d.Steps {
		if e.Completed(s.Name) {
			continue
		}
		blocked := false
		for _, dep := range s.DependsOn {
			if !e.Completed(dep) {
				blocked = true
				break
			}
		}
		if !blocked {
			ready = append(ready, s)
		}
	}
	return ready
}

// IsComplete reports whether every defined step has completed. A
// failed execution is never complete.
func (d *Definition) IsComplete(e *Execution) bool {
	if e.status == StatusFailed {
		return false
	}
	for _, s := range d.Steps {
		if !e.Completed(s.Name) {
			return false
		}
	}
	return true
}
