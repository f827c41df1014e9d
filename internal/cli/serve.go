package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/markcheck/internal/config"
	"github.com/aretw0/markcheck/pkg/adapters/file"
	httpAdapter "github.com/aretw0/markcheck/pkg/adapters/http"
	"github.com/aretw0/markcheck/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// NewServerHandler wires the engine, the metrics and the exercise catalog
// into the HTTP API.
func NewServerHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	eng, cleanup, err := NewEngine(ctx, cfg, logger, metrics.Hooks())
	if err != nil {
		return nil, nil, err
	}

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}
	if cfg.ExercisesDir != "" {
		opts = append(opts, httpAdapter.WithExercises(file.NewLoader(cfg.ExercisesDir)))
	}

	handler, err := httpAdapter.NewHandler(eng, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return handler, cleanup, nil
}

// RunServe serves the HTTP API on cfg.Addr until ctx is done, then drains
// outstanding requests.
func RunServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	handler, cleanup, err := NewServerHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("markcheck server listening", "address", cfg.Addr, "exercises", cfg.ExercisesDir, "cache", cfg.Cache.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		logger.Info("markcheck server stopped gracefully")
		return nil
	})
	return g.Wait()
}
