package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
    t.Setenv("DB_USER", "app")
    t.Setenv("DB_HOST", "localhost")
    t.Setenv("DB_PORT", "3306")
    t.Setenv("DB_NAME", "storefront")
    t.Setenv("JWT_SECRET", "secret")
    t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
    t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
}

func TestLoadDefaults(t *testing.T) {
    setRequired(t)
    t.Setenv("CATALOG_TIMEOUT", "3s")

    cfg, err := Load()
    require.NoError(t, err)
    assert.Equal(t, 15, cfg.AccessTTLMin)
    assert.Equal(t, 10, cfg.BcryptCost)
    assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
    assert.Equal(t, "https://duck-ticket-api-main.vercel.app", cfg.CatalogBaseURL)
    assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadReportsMissing(t *testing.T) {
    setRequired(t)
    t.Setenv("JWT_SECRET", "")
    t.Setenv("ACCESS_TOKEN_TTL_MIN", "soon")

    _, err := Load()
    require.Error(t, err)
    assert.Contains(t, err.Error(), "JWT_SECRET")
    assert.Contains(t, err.Error(), "ACCESS_TOKEN_TTL_MIN (not an int)")
}

func TestCacheable(t *testing.T) {
    t.Setenv("CACHE_METHODS", "get, head")
    c := LoadCacheConfig()
    assert.True(t, c.Cacheable("GET", "/v1/events/3"))
    assert.True(t, c.Cacheable("HEAD", "/v1/categories"))
    assert.False(t, c.Cacheable("POST", "/v1/events"))
    assert.False(t, c.Cacheable("GET", "/v1/cart"))

    c.Enabled = false
    assert.False(t, c.Cacheable("GET", "/v1/events"))
}

func TestRateLimitNormalize(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
    t.Setenv("RATE_LIMIT_TTL", "1m")
    c := LoadRateLimitConfig()
    assert.Equal(t, 1, c.Capacity)
    assert.Equal(t, 5*time.Minute, c.TTL)
}
