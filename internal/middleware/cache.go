package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/ticket-storefront/internal/config"
)

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// captureWriter tees the response body, up to limit bytes, while
// forwarding it to the client.  overflow is set when the body exceeded
// limit; such responses are not cached.
type captureWriter struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if !cw.overflow {
        if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
            cw.overflow = true
            cw.buf.Reset()
        } else {
            cw.buf.Write(b)
        }
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKey hashes the route (and query for "route_query") under cfg.Prefix.
// The query is re-encoded so parameter order does not split entries.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    tail := "route:" + r.URL.Path
    if !strings.EqualFold(cfg.KeyStrategy, "route") {
        tail += ":q:" + r.URL.Query().Encode()
    }
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdr, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdr)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
    copy(out[8:], hdr)
    copy(out[8+len(hdr):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// NewRedisCache caches 200 responses of catalog reads in Redis, headers
// included, and marks responses with X-Cache HIT or MISS.  Requests the
// config does not consider cacheable pass straight through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    log = log.Named("cache")

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            r := c.Request()
            if !cfg.Cacheable(strings.ToUpper(r.Method), r.URL.Path) {
                return next(c)
            }
            key := cacheKey(cfg, c)

            bs, err := rdb.Get(r.Context(), key).Bytes()
            if err != nil && err != redis.Nil {
                log.Debug("cache read failed", zap.String("key", key), zap.Error(err))
            }
            if status, hdr, body, ok := decodePayload(bs); err == nil && ok {
                h := c.Response().Header()
                for k, vals := range hdr {
                    if strings.EqualFold(k, echo.HeaderContentLength) {
                        continue
                    }
                    for _, v := range vals {
                        h.Add(k, v)
                    }
                }
                h.Set("X-Cache", "HIT")
                c.Response().WriteHeader(status)
                _, _ = c.Response().Write(body)
                return nil
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.overflow {
                return nil
            }
            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
            if err != nil {
                return nil
            }
            // the request context may already be cancelled once the client has its response
            if err := rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
                log.Debug("cache write failed", zap.String("key", key), zap.Error(err))
            }
            return nil
        }
    }
}
