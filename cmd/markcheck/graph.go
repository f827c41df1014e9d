package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/internal/presentation/graph"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/script"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph SCRIPT",
	Short: "Export the check script visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the chains of a check script.
With --student and --solution the steps that ran are highlighted and the
step that stopped the evaluation is marked as failed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := script.Load(args[0])
		if err != nil {
			return err
		}

		studentPath, _ := cmd.Flags().GetString("student")
		solutionPath, _ := cmd.Flags().GetString("solution")

		var overlay *graph.Overlay
		if studentPath != "" || solutionPath != "" {
			overlay, err = traceOverlay(cmd.Context(), s, studentPath, solutionPath)
			if err != nil {
				return err
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s, overlay))
		return nil
	},
}

// traceOverlay evaluates the script once and records the steps that ran.
// Authoring errors still produce an overlay: the failing step is what the
// diagram is meant to show.
func traceOverlay(ctx context.Context, s *script.Script, studentPath, solutionPath string) (*graph.Overlay, error) {
	if studentPath == "" || solutionPath == "" {
		return nil, fmt.Errorf("--student and --solution must be given together")
	}
	student, err := os.ReadFile(studentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission: %w", err)
	}
	solution, err := os.ReadFile(solutionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution: %w", err)
	}

	var (
		mu     sync.Mutex
		events []domain.StepEvent
	)
	eng := markcheck.New(markcheck.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			mu.Lock()
			events = append(events, *e)
			mu.Unlock()
		},
	}))
	if _, err := eng.EvaluateScript(ctx, s, string(student), string(solution)); err != nil {
		fmt.Fprintf(os.Stderr, "evaluation error: %v\n", err)
	}
	return graph.OverlayFromEvents(events), nil
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("student", "", "Submission to trace through the script")
	graphCmd.Flags().String("solution", "", "Reference solution of the trace")
}
