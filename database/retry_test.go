package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
		EnableRetry:  true,
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", sql.ErrNoRows, false},
		{"wrapped no rows", fmt.Errorf("lookup: %w", sql.ErrNoRows), false},
		{"context cancelled", context.Canceled, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"too many connections", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "53300"}), true},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), true},
		{"bare eof", errors.New("EOF"), true},
		{"logic error", errors.New("value out of range"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestRetryWithBackoff_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &pgconn.PgError{Code: "23505"}
	err := RetryWithBackoff(context.Background(), fastRetry(5), func() error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), fastRetry(2), func() error {
		calls++
		return errors.New("i/o timeout")
	})

	assert.EqualError(t, err, "i/o timeout")
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetry(3)
	cfg.InitialDelay = time.Hour
	err := RetryWithBackoff(ctx, cfg, func() error {
		return errors.New("connection refused")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryWithBackoff_Disabled(t *testing.T) {
	calls := 0
	cfg := fastRetry(3)
	cfg.EnableRetry = false
	_ = RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		return errors.New("connection refused")
	})

	assert.Equal(t, 1, calls)
}
