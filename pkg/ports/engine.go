package ports

import (
	"context"

	"github.com/aretw0/markcheck/pkg/exercise"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/aretw0/markcheck/pkg/script"
)

// Evaluator defines the interface of the grading core as seen by driving
// adapters (HTTP, MCP, CLI). Each call is independent; nothing is retained
// between evaluations except cached results.
type Evaluator interface {
	// Evaluate parses a script source and grades studentCode against solutionCode.
	// A submission failure is a Result, never an error. Errors are authoring
	// problems (invalid script, reference missing a required element) or
	// infrastructure failures.
	Evaluate(ctx context.Context, src, studentCode, solutionCode string) (feedback.Result, error)

	// EvaluateScript is Evaluate for an already parsed script.
	EvaluateScript(ctx context.Context, s *script.Script, studentCode, solutionCode string) (feedback.Result, error)

	// EvaluateExercise grades studentCode against a stored exercise.
	EvaluateExercise(ctx context.Context, ex *exercise.Exercise, studentCode string) (feedback.Result, error)
}
