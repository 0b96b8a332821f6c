package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a pooled client from the cache configuration.
func NewRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		// Connection pool settings
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Retry settings
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

// CacheService is a thin Redis cache. With a nil client every read misses and
// every write is dropped, so callers never branch on whether caching is enabled.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, client *redis.Client) *CacheService {
	return &CacheService{
		logger: logger,
		client: client,
	}
}

func (cs *CacheService) Enabled() bool {
	return cs != nil && cs.client != nil
}

func (cs *CacheService) Close() error {
	if !cs.Enabled() {
		return nil
	}
	return cs.client.Close()
}

// withRetry executes a Redis operation with exponential backoff and jitter
func (cs *CacheService) withRetry(ctx context.Context, operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == maxRetries || !isRetryableRedisError(err) {
			break
		}

		backoff := min(100*(1<<attempt), 2000)
		wait := backoff / 2
		var jitter [4]byte
		if _, err := rand.Read(jitter[:]); err == nil {
			wait += int(binary.BigEndian.Uint32(jitter[:]) % uint32(backoff/2+1))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(wait) * time.Millisecond):
		}
	}

	return fmt.Errorf("redis operation failed: %w", lastErr)
}

// isRetryableRedisError retries network failures only, never a cache miss.
func isRetryableRedisError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}

	errStr := err.Error()
	for _, retryable := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	} {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}
	return false
}

func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, 3)
}

// Get returns "" on a miss.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	if !cs.Enabled() {
		return "", nil
	}

	var result string
	err := cs.withRetry(ctx, func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	return result, err
}

func (cs *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !cs.Enabled() || len(keys) == 0 {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Del(ctx, keys...).Err()
	}, 3)
}

// DeletePattern removes every key matching pattern using SCAN.
func (cs *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	if !cs.Enabled() {
		return nil
	}
	return cs.withRetry(ctx, func() error {
		var cursor uint64
		for {
			keys, next, err := cs.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			if len(keys) > 0 {
				if err := cs.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}
			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	}, 3)
}

func (cs *CacheService) Ping(ctx context.Context) error {
	if !cs.Enabled() {
		return errors.New("cache disabled")
	}
	return cs.withRetry(ctx, func() error {
		return cs.client.Ping(ctx).Err()
	}, 3)
}

func (cs *CacheService) GetConnectionStats() map[string]any {
	if !cs.Enabled() {
		return map[string]any{"enabled": false}
	}
	stats := cs.client.PoolStats()

	return map[string]any{
		"enabled":     true,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// BlacklistToken revokes a token id until its expiry.
func (cs *CacheService) BlacklistToken(ctx context.Context, jti uuid.UUID, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return cs.Set(ctx, "blacklist:"+jti.String(), "true", ttl)
}

func (cs *CacheService) IsTokenBlacklisted(ctx context.Context, jti uuid.UUID) (bool, error) {
	val, err := cs.Get(ctx, "blacklist:"+jti.String())
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

// getJSON returns nil on a miss.
func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil || val == "" {
		return nil, err
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
