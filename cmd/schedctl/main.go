package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avk/schedkit/config"
	"github.com/avk/schedkit/wfhcl"
	"github.com/avk/schedkit/workflow"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "schedctl",
	Short: "Inspect and run schedkit workflow definitions",
	Long:  `schedctl loads workflow definitions written in HCL, validates and analyzes their dependency graphs, and can drive them locally through the schedkit scheduler.`,
}

var validateCmd = &cobra.Command{
	Use:   "validate workflow-file",
	Short: "Check a workflow definition for structural problems",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wf := mustLoad(args[0])
		violations := wf.Definition.Validate()
		if len(violations) == 0 {
			fmt.Printf("Workflow %q is valid (%d steps)\n", wf.Definition.Name, len(wf.Definition.Steps))
			return
		}
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "- %s\n", v)
		}
		os.Exit(1)
	},
}

var orderCmd = &cobra.Command{
	Use:   "order workflow-file",
	Short: "Print a dependency-respecting step order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wf := mustLoad(args[0])
		order, err := workflow.TopologicalSort(wf.Definition.Steps)
		if err != nil {
			log.Fatalf("Failed to order steps: %v", err)
		}
		fmt.Println(strings.Join(order, " -> "))
	},
}

var estimateCmd = &cobra.Command{
	Use:   "estimate workflow-file",
	Short: "Print the critical-path duration estimate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		wf := mustLoad(args[0])
		est := wf.Definition.EstimateDuration()
		if math.IsInf(est, 1) {
			log.Fatalf("Workflow %q contains a dependency cycle; no finite schedule exists", wf.Definition.Name)
		}
		fmt.Printf("Estimated duration of %q: %.0f ms\n", wf.Definition.Name, est)
	},
}

var runCmd = &cobra.Command{
	Use:   "run workflow-file",
	Short: "Drive a workflow to completion, executing step run commands",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Default()
		if cfgPath != "" {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
		}
		wf := mustLoad(args[0])

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := newRunner(cfg, wf)
		if err := r.Run(ctx); err != nil {
			log.Fatalf("Workflow failed: %v", err)
		}
		fmt.Printf("Workflow %q completed: %s\n",
			wf.Definition.Name, strings.Join(r.exec.CompletedSteps(), ", "))
	},
}

func mustLoad(path string) *wfhcl.Workflow {
	wf, err := wfhcl.LoadFile(path)
	if err != nil {
		log.Fatalf("Failed to load workflow: %v", err)
	}
	return wf
}

func main() {
	runCmd.Flags().StringVar(&cfgPath, "config", "", "path to a schedctl YAML config file")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
