package config

import "time"

// RateLimitConfig controls the token bucket applied to the login endpoint.
// The defaults allow 5 attempts per caller per 15 minute window.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:      envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		Capacity:     envInt("LOGIN_RATE_LIMIT_ATTEMPTS", 5),
		RefillTokens: 1,
		Prefix:       getenv("LOGIN_RATE_LIMIT_PREFIX", "rl:login"),
	}
	window := envDur("LOGIN_RATE_LIMIT_WINDOW", 15*time.Minute)
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	// One token refills every window/capacity, so a drained bucket recovers
	// fully over the configured window.
	cfg.RefillInterval = window / time.Duration(cfg.Capacity)
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Minute
	}
	cfg.TTL = 2 * window
	return cfg
}
