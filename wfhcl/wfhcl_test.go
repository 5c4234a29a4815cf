package wfhcl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avk/schedkit/workflow"
)

const sampleHCL = `
workflow "deploy" {
  step "fetch" {
    timeout = 500
    run     = "git fetch --all"
  }

  step "build" {
    depends_on = ["fetch"]
    timeout    = "45s"
    run        = "make build"
  }

  step "notify" {
    depends_on = ["build"]
  }
}
`

func TestLoad(t *testing.T) {
	wf, err := Load([]byte(sampleHCL), "deploy.hcl")
	require.NoError(t, err)

	def := wf.Definition
	assert.Equal(t, "deploy", def.Name)
	require.Len(t, def.Steps, 3)

	assert.Equal(t, workflow.Step{
		Name:    "fetch",
		Timeout: 500 * time.Millisecond,
	}, def.Steps[0])
	assert.Equal(t, workflow.Step{
		Name:      "build",
		DependsOn: []string{"fetch"},
		Timeout:   45 * time.Second,
	}, def.Steps[1])
	assert.Equal(t, workflow.Step{
		Name:      "notify",
		DependsOn: []string{"build"},
	}, def.Steps[2])

	assert.Equal(t, map[string]string{
		"fetch": "git fetch --all",
		"build": "make build",
	}, wf.Commands)

	assert.Empty(t, def.Validate())
}

func TestLoadRejectsMalformedSource(t *testing.T) {
	_, err := Load([]byte(`workflow "x" {`), "broken.hcl")
	require.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	src := `
workflow "x" {
  step "a" {
    timeout = "not-a-duration"
  }
}
`
	_, err := Load([]byte(src), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "a"`)
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	src := `
workflow "x" {
  step "a" {
    timeout = -5
  }
}
`
	_, err := Load([]byte(src), "bad.hcl")
	require.Error(t, err)
}

func TestLoadedDefinitionFeedsValidation(t *testing.T) {
	src := `
workflow "cyclic" {
  step "a" {
    depends_on = ["b"]
  }
  step "b" {
    depends_on = ["a"]
  }
}
`
	wf, err := Load([]byte(src), "cyclic.hcl")
	require.NoError(t, err)

	violations := wf.Definition.Validate()
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "cycle")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does/not/exist.hcl")
	require.Error(t, err)
}
