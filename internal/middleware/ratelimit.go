package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/ticket-storefront/internal/config"
)

// tokenBucket refills KEYS[1] by ARGV[3] tokens per ARGV[4] ms up to
// ARGV[2], takes one token if available and returns
// {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])
    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + intervals * refill_tokens)
        last_refill = last_refill + intervals * interval_ms
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
    end

    redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
    redis.call('EXPIRE', key, ttl_seconds)
    return { allowed, tokens, retry_after_ms }
`)

// NewTokenBucket limits requests per caller with a Redis token bucket.  A
// Redis failure lets the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    log = log.Named("ratelimit")

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)
            args := []any{
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL / time.Second),
            }
            vals, err := tokenBucket.Run(c.Request().Context(), rdb, []string{key}, args...).Int64Slice()
            if err != nil || len(vals) != 3 {
                log.Warn("limiter unavailable", zap.String("key", key), zap.Error(err))
                return next(c)
            }
            allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if !allowed {
                secs := retryAfterSeconds(retryMs)
                h.Set("Retry-After", strconv.Itoa(secs))
                log.Debug("blocked", zap.String("key", key), zap.Int64("retry_ms", retryMs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "rate limit exceeded",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

func retryAfterSeconds(ms int64) int {
    if ms <= 0 {
        return 0
    }
    return int(math.Ceil(float64(ms) / 1000))
}

// rateKey builds the bucket key for cfg.KeyStrategy.  Routes use the
// registered pattern so /v1/events/1 and /v1/events/2 share a bucket.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()
    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "shopper":
        parts = append(parts, "who", rateIdentity(c))
    case "ip_route":
        parts = append(parts, "ip", ip, "route", route)
    default: // shopper_route
        parts = append(parts, "who", rateIdentity(c), "route", route)
    }
    return strings.Join(parts, ":")
}
