package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/markcheck/internal/cli"
	"github.com/aretw0/markcheck/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitIncorrect = 1
	exitError     = 2
)

var rootCmd = &cobra.Command{
	Use:   "markcheck",
	Short: "markcheck grades HTML submissions against a reference document",
	Long: `markcheck runs check scripts that compare a submitted HTML document with a
reference solution and explain the first difference to the student.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrIncorrect) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrIncorrect):
		return exitIncorrect
	default:
		return exitError
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "markcheck.yaml", "Configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("exercises", "", "Directory of exercise files")
	rootCmd.PersistentFlags().String("cache", "", "Result cache backend: none, memory or redis")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address of the redis cache backend")
}

// loadConfig reads the configuration file and applies the persistent flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("exercises") {
		cfg.ExercisesDir, _ = flags.GetString("exercises")
	}
	if flags.Changed("cache") {
		cfg.Cache.Backend, _ = flags.GetString("cache")
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
