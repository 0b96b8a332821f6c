package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsTimeDuration(t *testing.T) {
	t.Setenv("TEST_DURATION_STRING", "90s")
	t.Setenv("TEST_DURATION_SECONDS", "45")
	t.Setenv("TEST_DURATION_BAD", "soon")

	assert.Equal(t, 90*time.Second, getEnvAsTimeDuration("TEST_DURATION_STRING", time.Minute))
	assert.Equal(t, 45*time.Second, getEnvAsTimeDuration("TEST_DURATION_SECONDS", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_DURATION_BAD", time.Minute))
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("TEST_DURATION_UNSET", time.Minute))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_SLICE", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_SLICE_UNSET", []string{"x"}))
}

func TestGetEnvAsDecimal(t *testing.T) {
	t.Setenv("TEST_DECIMAL", "12.50")
	t.Setenv("TEST_DECIMAL_BAD", "douze")

	assert.True(t, decimal.RequireFromString("12.5").Equal(getEnvAsDecimal("TEST_DECIMAL", decimal.Zero)))
	assert.True(t, decimal.NewFromInt(10).Equal(getEnvAsDecimal("TEST_DECIMAL_BAD", decimal.NewFromInt(10))))
}

func TestGetEnvAsIntAndBool(t *testing.T) {
	t.Setenv("TEST_INT", "7")
	t.Setenv("TEST_BOOL", "true")

	assert.Equal(t, 7, getEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("TEST_INT_UNSET", 1))
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}
