package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/markcheck"
	"github.com/aretw0/markcheck/internal/config"
	"github.com/aretw0/markcheck/pkg/adapters/memory"
	"github.com/aretw0/markcheck/pkg/adapters/redis"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/ports"
)

// NewEngine initializes an engine from the configuration. The returned
// cleanup releases the cache connection and must be called once the engine
// is no longer used.
func NewEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*markcheck.Engine, func(), error) {
	opts := []markcheck.Option{
		markcheck.WithLogger(logger),
		markcheck.WithReporter(cfg.Reporter()),
	}
	for _, h := range hooks {
		opts = append(opts, markcheck.WithLifecycleHooks(h))
	}

	cache, cleanup, err := createCache(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cache != nil {
		opts = append(opts, markcheck.WithCache(cache))
	}

	return markcheck.New(opts...), cleanup, nil
}

func createCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ResultCache, func(), error) {
	noop := func() {}

	switch cfg.Cache.Backend {
	case config.CacheRedis:
		c := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.GetCacheTTL()),
			redis.WithPrefix(cfg.Cache.Prefix),
		)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("redis cache at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("result cache enabled", "backend", config.CacheRedis, "addr", cfg.Redis.Addr)
		return c, func() {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close redis cache", "error", err)
			}
		}, nil
	case config.CacheMemory:
		logger.Debug("result cache enabled", "backend", config.CacheMemory)
		return memory.NewCache(), noop, nil
	default:
		return nil, noop, nil
	}
}
