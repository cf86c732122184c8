package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the catalog response cache.  Only
// requests whose path starts with one of Paths are cached; shopper state
// (view, cart, checkout) must never be served from cache.  KeyStrategy is
// "route_query" (path plus sorted query) or "route" (path only).
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    Paths        []string
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Method names are upper-cased.
func LoadCacheConfig() CacheConfig {
    methods := map[string]bool{}
    for _, m := range envList("CACHE_METHODS", "GET") {
        methods[strings.ToUpper(m)] = true
    }
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      methods,
        Paths:        envList("CACHE_PATHS", "/v1/events,/v1/categories"),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "storefront:cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
    }
}

// Cacheable reports whether a request with this method and path may be
// served from cache.
func (c CacheConfig) Cacheable(method, path string) bool {
    if !c.Enabled || !c.Methods[method] {
        return false
    }
    for _, p := range c.Paths {
        if strings.HasPrefix(path, p) {
            return true
        }
    }
    return false
}
