package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestMemoryRateLimitStore(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store := NewMemoryRateLimitStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := store.Increment(ctx, "ip", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := store.Increment(ctx, "other", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, other)

	now = now.Add(time.Minute)
	got, err := store.Increment(ctx, "ip", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "window restarts once expired")

	require.NoError(t, store.Reset(ctx, "ip"))
	got, _ = store.Increment(ctx, "ip", time.Minute)
	assert.Equal(t, 1, got)
}

func TestMemoryRateLimitStore_SweepsExpiredCounters(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)
	store := NewMemoryRateLimitStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = store.Increment(ctx, "a", time.Second)
	_, _ = store.Increment(ctx, "b", time.Hour)

	now = now.Add(2 * time.Minute)
	_, _ = store.Increment(ctx, "c", time.Hour)

	assert.NotContains(t, store.counters, "a")
	assert.Contains(t, store.counters, "b")
	assert.Contains(t, store.counters, "c")
}

func TestRedisRateLimitStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		got, err := store.Increment(ctx, "login:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:10.0.0.1"))

	mr.FastForward(time.Minute)
	got, err := store.Increment(ctx, "login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	require.NoError(t, store.Reset(ctx, "login:10.0.0.1"))
	assert.False(t, mr.Exists("ratelimit:login:10.0.0.1"))
}
