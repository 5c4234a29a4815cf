package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipelineDef() *Definition {
	return &Definition{
		Name: "pipeline",
		Steps: []Step{
			{Name: "fetch", Timeout: 10 * time.Millisecond},
			{Name: "build", DependsOn: []string{"fetch"}, Timeout: 5 * time.Millisecond},
			{Name: "lint", DependsOn: []string{"fetch"}, Timeout: 3 * time.Millisecond},
			{Name: "publish", DependsOn: []string{"build", "lint"}, Timeout: 7 * time.Millisecond},
		},
	}
}

func stepNames(steps []Step) []string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.Name
	}
	return names
}

func TestNewExecution(t *testing.T) {
	def := pipelineDef()
	e := NewExecution(def)

	require.NotNil(t, e)
	assert.Equal(t, "pipeline", e.WorkflowID())
	assert.Equal(t, StatusRunning, e.Status())
	assert.Empty(t, e.CompletedSteps())
	assert.Equal(t, "", e.CurrentStep())
	assert.False(t, e.StartedAt().IsZero())
}

func TestReadySteps(t *testing.T) {
	def := pipelineDef()
	e := NewExecution(def)

	assert.Equal(t, []string{"fetch"}, stepNames(def.ReadySteps(e)))

	e.CompleteStep("fetch")
	assert.Equal(t, []string{"build", "lint"}, stepNames(def.ReadySteps(e)))

	e.CompleteStep("build")
	assert.Equal(t, []string{"lint"}, stepNames(def.ReadySteps(e)))

	e.CompleteStep("lint")
	assert.Equal(t, []string{"publish"}, stepNames(def.ReadySteps(e)))

	e.CompleteStep("publish")
	assert.Empty(t, def.ReadySteps(e))
}

func TestCompleteStepIsIdempotent(t *testing.T) {
	def := pipelineDef()
	e := NewExecution(def)

	e.CompleteStep("fetch")
	e.CompleteStep("fetch")

	assert.Equal(t, []string{"fetch"}, e.CompletedSteps())
	// Completing a step never flips the overall status.
	assert.Equal(t, StatusRunning, e.Status())
}

func TestCompletedStepsReturnsCopy(t *testing.T) {
	def := pipelineDef()
	e := NewExecution(def)
	e.CompleteStep("fetch")

	got := e.CompletedSteps()
	got[0] = "mutated"
	assert.Equal(t, []string{"fetch"}, e.CompletedSteps())
}

func TestFailStepIsFailFast(t *testing.T) {
	def := pipelineDef()
	e := NewExecution(def)

	e.CompleteStep("fetch")
	e.FailStep("build")

	assert.Equal(t, StatusFailed, e.Status())
	assert.Equal(t, "build", e.CurrentStep())
	// No rollback of prior completions.
	assert.Equal(t, []string{"fetch"}, e.CompletedSteps())

	// Failed status never reverts, even if more steps complete.
	e.CompleteStep("lint")
	assert.Equal(t, StatusFailed, e.Status())
}

func TestIsComplete(t *testing.T) {
	def := pipelineDef()

	t.Run("all steps completed", func(t *testing.T) {
		e := NewExecution(def)
		for _, s := range def.Steps {
			e.CompleteStep(s.Name)
		}
		assert.True(t, def.IsComplete(e))
	})

	t.Run("steps outstanding", func(t *testing.T) {
		e := NewExecution(def)
		e.CompleteStep("fetch")
		assert.False(t, def.IsComplete(e))
	})

	t.Run("failed execution is never complete", func(t *testing.T) {
		e := NewExecution(def)
		for _, s := range def.Steps {
			e.CompleteStep(s.Name)
		}
		e.FailStep("publish")
		assert.False(t, def.IsComplete(e))
	})
}
