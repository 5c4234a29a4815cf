package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	boff "github.com/Andrej220/go-utils/backoff"
	lg "github.com/Andrej220/go-utils/zlog"

	sk "github.com/avk/schedkit"
	"github.com/avk/schedkit/config"
	"github.com/avk/schedkit/wfhcl"
	"github.com/avk/schedkit/workflow"
)

// stepJob is the payload the runner schedules: one workflow step plus
// its optional shell command.
type stepJob struct {
	step workflow.Step
	run  string
}

// runner drives a workflow through the scheduler: ready steps are
// submitted as jobs (priority = definition order, so earlier-declared
// steps win ties between unblocked work), the next ready job is
// executed as a shell command, and the outcome is reported back to
// both the scheduler and the workflow execution. The scheduler and
// engine only decide; all execution happens here.
type runner struct {
	cfg     *config.Config
	wf      *wfhcl.Workflow
	sched   *sk.Scheduler[stepJob]
	exec    *workflow.Execution
	retries int
}

func newRunner(cfg *config.Config, wf *wfhcl.Workflow) *runner {
	retries := cfg.Retry.MaxAttempts
	if retries <= 0 {
		retries = sk.DefaultRetryPolicy().MaxAttempts
	}
	return &runner{
		cfg: cfg,
		wf:  wf,
		sched: sk.NewScheduler[stepJob](sk.Options{
			DefaultRetry: cfg.RetryPolicy(),
			Metrics:      &sk.AtomicMetrics{},
		}),
		retries: retries,
	}
}

// Run executes the workflow until it completes, fails, or ctx is
// cancelled.
func (r *runner) Run(ctx context.Context) error {
	def := &r.wf.Definition
	if violations := def.Validate(); len(violations) > 0 {
		return fmt.Errorf("invalid workflow %q: %s", def.Name, strings.Join(violations, "; "))
	}

	r.exec = workflow.NewExecution(def)
	logger := lg.FromContext(ctx)
	logger.Info("workflow started",
		lg.String("workflow", def.Name),
		lg.Int("steps", len(def.Steps)),
	)

	order := make(map[string]int, len(def.Steps))
	for i, s := range def.Steps {
		order[s.Name] = i
	}

	submitted := make(map[string]bool, len(def.Steps))
	bo := boff.New(r.cfg.PollInterval(), r.cfg.IdleBackoffMax(), time.Now().UnixNano())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.exec.Status() == workflow.StatusFailed {
			return fmt.Errorf("workflow %q failed at step %q", def.Name, r.exec.CurrentStep())
		}
		if def.IsComplete(r.exec) {
			logger.Info("workflow completed", lg.String("workflow", def.Name))
			return nil
		}

		for _, s := range def.ReadySteps(r.exec) {
			if submitted[s.Name] {
				continue
			}
			submitted[s.Name] = true
			r.sched.Submit(&sk.ScheduledJob[stepJob]{
				ID:         s.Name,
				Priority:   float64(order[s.Name]),
				MaxRetries: r.retries,
				Payload:    stepJob{step: s, run: r.wf.Commands[s.Name]},
				Ctx:        ctx,
			})
		}

		job, ok := r.sched.Next(time.Now())
		if !ok {
			// Nothing ready: pending retry deadlines or an empty
			// queue. Back off before polling again.
			delay := bo.Next()
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			}
			continue
		}
		// Fresh backoff window after real work.
		bo = boff.New(r.cfg.PollInterval(), r.cfg.IdleBackoffMax(), time.Now().UnixNano())

		if err := r.runStep(ctx, job.Payload); err != nil {
			if r.sched.Retry(job.ID, time.Now()) {
				logger.Warn("step failed; retry scheduled",
					lg.String("step", job.ID),
					lg.Any("error", err),
				)
				continue
			}
			r.sched.Complete(job.ID, sk.StatusFailed)
			r.exec.FailStep(job.ID)
			logger.Error("step failed permanently",
				lg.String("step", job.ID),
				lg.Any("error", err),
			)
			continue
		}
		r.sched.Complete(job.ID, sk.StatusCompleted)
		r.exec.CompleteStep(job.ID)
	}
}

// runStep executes one step's run command through the shell, bounded
// by the step timeout. Steps without a run command complete
// immediately.
func (r *runner) runStep(ctx context.Context, j stepJob) error {
	if j.run == "" {
		return nil
	}

	if j.step.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.step.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", j.run)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("step %q: %w: %s", j.step.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
