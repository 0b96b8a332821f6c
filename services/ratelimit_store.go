package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore counts hits per key within a fixed window that starts at the first hit.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// RedisRateLimitStore shares counters between processes.
type RedisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	key = "ratelimit:" + key

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// Set expiration only on first increment
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (s *RedisRateLimitStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, "ratelimit:"+key).Err()
}

type memoryCounter struct {
	count     int
	expiresAt time.Time
}

// MemoryRateLimitStore keeps counters in process; used when no cache is configured.
type MemoryRateLimitStore struct {
	mu        sync.Mutex
	counters  map[string]*memoryCounter
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		counters: make(map[string]*memoryCounter),
		now:      time.Now,
	}
}

func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	c, ok := s.counters[key]
	if !ok || !now.Before(c.expiresAt) {
		c = &memoryCounter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

func (s *MemoryRateLimitStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.counters, key)
	s.mu.Unlock()
	return nil
}

// sweep drops expired counters at most once a minute. Caller holds mu.
func (s *MemoryRateLimitStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < time.Minute {
		return
	}
	s.lastSweep = now
	for key, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, key)
		}
	}
}
