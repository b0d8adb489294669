package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache connects to REDIS_URL. Runs only with RUN_INTEGRATION_TESTS=true.
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("set RUN_INTEGRATION_TESTS=true to run redis tests")
	}
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}
	c, err := NewRedisCache(url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCounterLifecycle(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "test:attempts:" + t.Name()
	t.Cleanup(func() { c.Delete(ctx, key) })

	require.NoError(t, c.Ping(ctx))

	n, err := c.Increment(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.Increment(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, c.Expire(ctx, key, time.Minute))
	ttl, err := c.TTL(ctx, key)
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	val, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	require.NoError(t, c.Delete(ctx, key))
	exists, err := c.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisSetWithExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	key := "test:lock:" + t.Name()
	t.Cleanup(func() { c.Delete(ctx, key) })

	require.NoError(t, c.Set(ctx, key, "1", time.Minute))
	exists, err := c.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
}
