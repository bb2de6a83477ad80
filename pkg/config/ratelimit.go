package config

import (
	"log/slog"
	"time"
)

// RateLimitConfig configures the per-client token bucket applied to the
// authentication endpoints.
type RateLimitConfig struct {
	// Enabled toggles rate limiting entirely.
	Enabled bool

	// RequestsPerSecond is the sustained refill rate per client IP.
	RequestsPerSecond int

	// Burst is the bucket capacity: how many requests a client may send
	// at once before the sustained rate applies.
	Burst int

	// IdleTTL is how long an inactive client's bucket is retained
	// before cleanup.
	IdleTTL time.Duration
}

// LoadRateLimitConfig loads rate limiting configuration from environment
// variables. Invalid values log a warning and fall back to safe defaults
// instead of failing startup.
//
// Environment variables:
//   - RATELIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATELIMIT_RPS: Sustained requests per second per IP (default: 5)
//   - RATELIMIT_BURST: Burst capacity per IP (default: 10)
//   - RATELIMIT_IDLE_TTL: Idle bucket retention (default: 10m)
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:           GetEnvBool("RATELIMIT_ENABLED", true),
		RequestsPerSecond: GetEnvInt("RATELIMIT_RPS", 5),
		Burst:             GetEnvInt("RATELIMIT_BURST", 10),
		IdleTTL:           GetEnvDuration("RATELIMIT_IDLE_TTL", 10*time.Minute),
	}

	if cfg.RequestsPerSecond <= 0 {
		slog.Warn("invalid RATELIMIT_RPS, using default",
			slog.Int("value", cfg.RequestsPerSecond),
			slog.Int("default", 5))
		cfg.RequestsPerSecond = 5
	}

	if cfg.Burst < cfg.RequestsPerSecond {
		slog.Warn("RATELIMIT_BURST below RATELIMIT_RPS, raising to match",
			slog.Int("value", cfg.Burst),
			slog.Int("rps", cfg.RequestsPerSecond))
		cfg.Burst = cfg.RequestsPerSecond
	}

	if err := ValidatePositiveDuration(cfg.IdleTTL); err != nil {
		slog.Warn("invalid RATELIMIT_IDLE_TTL, using default",
			slog.String("value", cfg.IdleTTL.String()),
			slog.String("default", "10m"))
		cfg.IdleTTL = 10 * time.Minute
	}

	return cfg
}
