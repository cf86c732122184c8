package config

import "time"

// RateLimitConfig configures the Redis token bucket.  Capacity is the
// bucket size; RefillTokens are added every RefillInterval.  KeyStrategy
// is one of "ip", "shopper", "ip_route" or "shopper_route".
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

func LoadRateLimitConfig() RateLimitConfig {
    c := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", "shopper_route"),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "storefront:rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    return c.normalize()
}

// normalize clamps nonsensical values.  The key TTL is kept at least five
// refill intervals so an idle bucket is not dropped before it refills.
func (c RateLimitConfig) normalize() RateLimitConfig {
    if c.Capacity < 1 {
        c.Capacity = 1
    }
    if c.RefillTokens < 1 {
        c.RefillTokens = 1
    }
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    if floor := 5 * c.RefillInterval; c.TTL < floor {
        c.TTL = floor
    }
    return c
}
