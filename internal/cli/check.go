package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/internal/presentation/tui"
	"github.com/aretw0/markcheck/pkg/adapters/file"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/aretw0/markcheck/pkg/script"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Output modes of the check command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// stdinName designates standard input in the submission list.
const stdinName = "-"

// CheckOptions contains the configuration for the check command.
type CheckOptions struct {
	// Either ScriptPath and SolutionPath, or Exercise.
	ScriptPath   string
	SolutionPath string
	Exercise     string
	ExercisesDir string

	// Submission files, "-" being standard input.
	Submissions []string
	Output      string
	// Maximum number of submissions graded at once, 0 meaning GOMAXPROCS.
	Concurrency int
}

// Report is the outcome of one submission.
type Report struct {
	Submission      string `json:"submission" yaml:"submission"`
	feedback.Result `yaml:",inline"`
}

type gradeFunc func(ctx context.Context, studentCode string) (feedback.Result, error)

// RunCheck grades every submission and writes the reports to out.
// It returns ErrIncorrect when a submission fails; authoring errors abort the
// run and are returned as is.
func RunCheck(ctx context.Context, eng *markcheck.Engine, opts CheckOptions, in io.Reader, out io.Writer) error {
	if len(opts.Submissions) == 0 {
		return fmt.Errorf("no submission given")
	}
	switch opts.Output {
	case "", OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output %q (expected %s, %s or %s)", opts.Output, OutputText, OutputJSON, OutputYAML)
	}

	grade, err := resolveGrader(ctx, eng, opts)
	if err != nil {
		return err
	}

	codes := make([]string, len(opts.Submissions))
	for i, name := range opts.Submissions {
		codes[i], err = readSubmission(name, in)
		if err != nil {
			return err
		}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, code := range codes {
		g.Go(func() error {
			res, err := grade(gctx, code)
			if err != nil {
				return fmt.Errorf("%s: %w", opts.Submissions[i], err)
			}
			reports[i] = Report{Submission: opts.Submissions[i], Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeReports(out, opts.Output, reports); err != nil {
		return err
	}
	for _, r := range reports {
		if !r.Correct {
			return ErrIncorrect
		}
	}
	return nil
}

func resolveGrader(ctx context.Context, eng *markcheck.Engine, opts CheckOptions) (gradeFunc, error) {
	if opts.Exercise != "" {
		if opts.ScriptPath != "" || opts.SolutionPath != "" {
			return nil, fmt.Errorf("an exercise cannot be combined with a script or solution")
		}
		ex, err := file.NewLoader(opts.ExercisesDir).GetExercise(ctx, opts.Exercise)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, code string) (feedback.Result, error) {
			return eng.EvaluateExercise(ctx, ex, code)
		}, nil
	}

	if opts.ScriptPath == "" || opts.SolutionPath == "" {
		return nil, fmt.Errorf("a script and a solution are required without an exercise")
	}
	s, err := script.Load(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	solution, err := os.ReadFile(opts.SolutionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read solution: %w", err)
	}
	return func(ctx context.Context, code string) (feedback.Result, error) {
		return eng.EvaluateScript(ctx, s, code, string(solution))
	}, nil
}

func readSubmission(name string, in io.Reader) (string, error) {
	if name == stdinName {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read submission: %w", err)
	}
	return string(data), nil
}

func writeReports(out io.Writer, mode string, reports []Report) error {
	switch mode {
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case OutputYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(reports)
	default:
		p := tui.NewPrinter(out, isTerminal(out), terminalWidth(out))
		label := len(reports) > 1
		for _, r := range reports {
			name := ""
			if label {
				name = r.Submission
			}
			if err := p.Print(name, r.Result); err != nil {
				return err
			}
		}
		return nil
	}
}
