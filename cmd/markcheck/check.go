package main

import (
	"os"

	"github.com/aretw0/markcheck/internal/cli"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] SUBMISSION...",
	Short: "Grade submissions from the command line",
	Long: `Grades each SUBMISSION file ("-" reads standard input) with a check script
and a reference solution, or with a stored exercise.

Exit status is 0 when every submission passes, 1 when one fails and 2 when the
script, the solution or the invocation is defective.`,
	Example: `  markcheck check --script checks.yaml --solution solution.html index.html
  markcheck check --exercises exercises --exercise portfolio -o json alice.html bob.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.CheckOptions{Submissions: args, ExercisesDir: cfg.ExercisesDir}
		opts.ScriptPath, _ = cmd.Flags().GetString("script")
		opts.SolutionPath, _ = cmd.Flags().GetString("solution")
		opts.Exercise, _ = cmd.Flags().GetString("exercise")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")

		// The terminal printer works on the escaped explanation.
		if opts.Output == "" || opts.Output == cli.OutputText {
			cfg.Format = string(feedback.FormatEscape)
		}

		logger, err := cli.NewLogger(cfg.LogLevel, false)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		eng, cleanup, err := cli.NewEngine(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		return cli.RunCheck(ctx, eng, opts, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("script", "s", "", "Check script file (YAML or JSON)")
	checkCmd.Flags().String("solution", "", "Reference solution file")
	checkCmd.Flags().StringP("exercise", "e", "", "Exercise id, instead of --script and --solution")
	checkCmd.Flags().StringP("output", "o", cli.OutputText, "Output: text, json or yaml")
	checkCmd.Flags().String("format", "", "Message format: escape or markdown (json and yaml output)")
	checkCmd.Flags().Int("concurrency", 0, "Submissions graded at once (0 = number of CPUs)")
}
