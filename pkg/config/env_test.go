package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	assert.Equal(t, "value", GetEnvString("TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnvString("TEST_STR_UNSET", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("TEST_INT", 7))

	t.Setenv("TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvInt("TEST_INT", 7))

	assert.Equal(t, 7, GetEnvInt("TEST_INT_UNSET", 7))
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"True", true},
		{"0", false},
		{"false", false},
		{"garbage", true}, // falls back to default
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		assert.Equal(t, tt.expected, GetEnvBool("TEST_BOOL", true), "value %q", tt.value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DUR", time.Minute))

	t.Setenv("TEST_DUR", "ninety")
	assert.Equal(t, time.Minute, GetEnvDuration("TEST_DUR", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", "a, b ,, c")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", nil))

	fallback := []string{"x"}
	assert.Equal(t, fallback, GetEnvStringList("TEST_LIST_UNSET", fallback))
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))

	assert.NoError(t, ValidateNonNegativeDuration(0))
	assert.Error(t, ValidateNonNegativeDuration(-time.Second))

	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Second, time.Minute, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))
}

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "")
	t.Setenv("RATELIMIT_RPS", "")
	t.Setenv("RATELIMIT_BURST", "")
	t.Setenv("RATELIMIT_IDLE_TTL", "")

	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.RequestsPerSecond)
	assert.Equal(t, 10, cfg.Burst)
	assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
}

func TestLoadRateLimitConfig_InvalidValues(t *testing.T) {
	t.Setenv("RATELIMIT_RPS", "-3")
	t.Setenv("RATELIMIT_BURST", "1")
	t.Setenv("RATELIMIT_IDLE_TTL", "-5m")

	cfg := LoadRateLimitConfig()

	assert.Equal(t, 5, cfg.RequestsPerSecond)
	// burst is raised to at least the sustained rate
	assert.Equal(t, 5, cfg.Burst)
	assert.Equal(t, 10*time.Minute, cfg.IdleTTL)
}

func TestLoadRateLimitConfig_Disabled(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")

	cfg := LoadRateLimitConfig()

	assert.False(t, cfg.Enabled)
}
