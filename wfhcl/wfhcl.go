// Package wfhcl loads workflow definitions from HCL.
//
// A definition file contains a single workflow block with one step
// block per unit of work:
//
//	workflow "deploy" {
//	  step "fetch" {
//	    timeout = 500 // milliseconds, or a duration string like "2s"
//	    run     = "git fetch --all"
//	  }
//	  step "build" {
//	    depends_on = ["fetch"]
//	    timeout    = "45s"
//	  }
//	}
//
// run is optional and opaque to the engine: it is carried alongside
// the definition for external drivers that execute steps as shell
// commands.
package wfhcl

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/avk/schedkit/workflow"
)

// Workflow pairs an engine definition with the per-step run commands
// declared next to it.
type Workflow struct {
	Definition workflow.Definition

	// Commands maps step name to its optional run command. Steps
	// without a run attribute are absent from the map.
	Commands map[string]string
}

type rootHCL struct {
	Workflow workflowHCL `hcl:"workflow,block"`
}

type workflowHCL struct {
	Name  string    `hcl:"name,label"`
	Steps []stepHCL `hcl:"step,block"`
}

type stepHCL struct {
	Name      string         `hcl:"name,label"`
	DependsOn []string       `hcl:"depends_on,optional"`
	Timeout   hcl.Expression `hcl:"timeout,optional"`
	Run       string         `hcl:"run,optional"`
}

// LoadFile reads and decodes one workflow definition file.
// Decoding is purely structural; run Definition.Validate separately
// to check the dependency graph.
func LoadFile(path string) (*Workflow, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file: %w", err)
	}
	return Load(src, path)
}

// Load decodes a workflow definition from HCL source. The filename is
// used in diagnostics only.
func Load(src []byte, filename string) (*Workflow, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}

	var root rootHCL
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", filename, diags)
	}

	wf := &Workflow{
		Definition: workflow.Definition{Name: root.Workflow.Name},
		Commands:   make(map[string]string),
	}
	for _, s := range root.Workflow.Steps {
		timeout, err := stepTimeout(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", s.Name, err)
		}
		wf.Definition.Steps = append(wf.Definition.Steps, workflow.Step{
			Name:      s.Name,
			DependsOn: s.DependsOn,
			Timeout:   timeout,
		})
		if s.Run != "" {
			wf.Commands[s.Name] = s.Run
		}
	}
	return wf, nil
}

// stepTimeout evaluates the timeout expression. A number is taken as
// milliseconds; a string is parsed with time.ParseDuration.
func stepTimeout(expr hcl.Expression) (time.Duration, error) {
	if expr == nil {
		return 0, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("evaluating timeout: %w", diags)
	}
	if v.IsNull() {
		return 0, nil
	}
	switch v.Type() {
	case cty.Number:
		ms, _ := v.AsBigFloat().Float64()
		if ms < 0 {
			return 0, fmt.Errorf("timeout must not be negative, got %v", ms)
		}
		return time.Duration(ms * float64(time.Millisecond)), nil
	case cty.String:
		d, err := time.ParseDuration(v.AsString())
		if err != nil {
			return 0, fmt.Errorf("parsing timeout: %w", err)
		}
		if d < 0 {
			return 0, fmt.Errorf("timeout must not be negative, got %v", d)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("timeout must be a number of milliseconds or a duration string, got %s",
			v.Type().FriendlyName())
	}
}
