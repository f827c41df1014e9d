package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/markcheck/internal/config"
	"github.com/aretw0/markcheck/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		backend string
		keys    int
	}{
		{name: "none", backend: config.CacheNone},
		{name: "memory", backend: config.CacheMemory},
		{name: "redis", backend: config.CacheRedis, keys: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr.FlushAll()
			cfg := config.DefaultConfig()
			cfg.Cache.Backend = tt.backend
			cfg.Redis.Addr = mr.Addr()

			eng, cleanup, err := NewEngine(context.Background(), cfg, logging.NewNop())
			require.NoError(t, err)
			defer cleanup()

			res, err := eng.Evaluate(context.Background(), checkScript, "<html><body><h1>Jane Doe</h1></body></html>", checkRef)
			require.NoError(t, err)
			assert.True(t, res.Correct)
			assert.Len(t, mr.Keys(), tt.keys)
		})
	}
}

func TestNewEngine_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.DefaultConfig()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Redis.Addr = addr

	_, _, err := NewEngine(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "redis cache")
}

func TestNewEngine_Reporter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SuccessMessage = "Nice!"

	eng, cleanup, err := NewEngine(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	res, err := eng.Evaluate(context.Background(), "", "<p></p>", "<p></p>")
	require.NoError(t, err)
	assert.Equal(t, "Nice!", res.Message)
}
