package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/markcheck/pkg/adapters/redis"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/feedback"
	"github.com/aretw0/markcheck/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := newClient(t)
	cache := redis.NewFromClient(client)
	ports.RunResultCacheContract(t, cache)
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	err := cache.Set(ctx, "k", feedback.Result{Correct: true, Message: "Great work!"})
	require.NoError(t, err)

	_, err = cache.Get(ctx, "k")
	require.NoError(t, err)

	// Fast forward time in miniredis for key expiration
	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := cache.Set(ctx, "digest", feedback.Result{Correct: false, Message: "nope"})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:digest"), "Expected key with custom prefix to exist")
	assert.False(t, mr.Exists(redis.DefaultPrefix+"digest"))

	raw, err := mr.Get("custom:app:digest")
	require.NoError(t, err)
	assert.JSONEq(t, `{"correct":false,"message":"nope"}`, raw)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	cache := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", "{not json"))

	_, err := cache.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Ping(t *testing.T) {
	_, client := newClient(t)
	cache := redis.NewFromClient(client)

	assert.NoError(t, cache.Ping(context.Background()))
}
