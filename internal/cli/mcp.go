package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/markcheck/internal/config"
	"github.com/aretw0/markcheck/pkg/adapters/file"
	"github.com/aretw0/markcheck/pkg/adapters/mcp"
	"github.com/aretw0/markcheck/pkg/ports"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// RunMCP serves the engine as an MCP server over transport.
func RunMCP(ctx context.Context, cfg *config.Config, logger *slog.Logger, transport string, port int) error {
	eng, cleanup, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var exercises ports.ExerciseLoader
	if cfg.ExercisesDir != "" {
		exercises = file.NewLoader(cfg.ExercisesDir)
	}
	srv := mcp.NewServer(eng, exercises)

	switch transport {
	case TransportStdio:
		logger.Info("Starting markcheck MCP Server (Stdio)...")
		return srv.ServeStdio()
	case TransportSSE:
		logger.Info("Starting markcheck MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportStdio, TransportSSE)
	}
}
