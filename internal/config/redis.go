package config

// Redis backs the catalog response cache and the rate limiter.  When it is
// unreachable at startup the server runs without both.

import (
    "context"
    "crypto/tls"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"
)

// NewRedisClient builds a client from REDIS_ADDR (or REDIS_HOST and
// REDIS_PORT), REDIS_PASSWORD, REDIS_DB and REDIS_TLS.  It returns nil
// when the server does not answer a ping.
func NewRedisClient(log *zap.Logger) *redis.Client {
    addr := getenv("REDIS_ADDR", "localhost:6379")
    if host, port := getenv("REDIS_HOST", ""), getenv("REDIS_PORT", ""); host != "" && port != "" {
        addr = host + ":" + port
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: getenv("REDIS_PASSWORD", ""),
        DB:       envInt("REDIS_DB", 0),
    }
    if t := getenv("REDIS_TLS", ""); strings.EqualFold(t, "true") || t == "1" {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    client := redis.NewClient(opts)

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Warn("redis unavailable, cache and rate limit disabled", zap.String("addr", addr), zap.Error(err))
        _ = client.Close()
        return nil
    }
    log.Info("redis connected", zap.String("addr", addr))
    return client
}
