package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "go.uber.org/zap/zaptest/observer"

    "github.com/iliyamo/ticket-storefront/internal/config"
    "github.com/iliyamo/ticket-storefront/internal/utils"
)

const secret = "test-secret"

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func shopperEcho(mw echo.MiddlewareFunc) *echo.Echo {
    e := echo.New()
    e.GET("/who", func(c echo.Context) error {
        return c.String(http.StatusOK, ShopperKey(c))
    }, mw, Shopper())
    return e
}

func TestShopperGuestGetsSessionID(t *testing.T) {
    t.Parallel()
    e := shopperEcho(OptionalAuth(secret))

    rec := serve(e, httptest.NewRequest(http.MethodGet, "/who", nil))
    require.Equal(t, http.StatusOK, rec.Code)
    sid := rec.Header().Get(HeaderSessionID)
    _, err := uuid.Parse(sid)
    require.NoError(t, err)
    assert.Equal(t, "guest:"+sid, rec.Body.String())

    req := httptest.NewRequest(http.MethodGet, "/who", nil)
    req.Header.Set(HeaderSessionID, sid)
    rec = serve(e, req)
    assert.Equal(t, "guest:"+sid, rec.Body.String(), "same id is kept")

    req = httptest.NewRequest(http.MethodGet, "/who", nil)
    req.Header.Set(HeaderSessionID, "not-a-uuid")
    rec = serve(e, req)
    assert.NotEqual(t, "not-a-uuid", rec.Header().Get(HeaderSessionID))
}

func TestShopperUser(t *testing.T) {
    t.Parallel()
    e := shopperEcho(OptionalAuth(secret))
    tok, err := utils.NewAccessToken(secret, 9, "CUSTOMER", 5)
    require.NoError(t, err)

    req := httptest.NewRequest(http.MethodGet, "/who", nil)
    req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
    rec := serve(e, req)
    assert.Equal(t, "user:9", rec.Body.String())
    assert.Empty(t, rec.Header().Get(HeaderSessionID))

    req = httptest.NewRequest(http.MethodGet, "/who", nil)
    req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
    assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)
}

func TestJWTAuthRequiresToken(t *testing.T) {
    t.Parallel()
    e := shopperEcho(JWTAuth(secret))
    assert.Equal(t, http.StatusUnauthorized, serve(e, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
}

func TestCacheKey(t *testing.T) {
    t.Parallel()
    e := echo.New()
    cfg := config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}
    key := func(target string) string {
        return cacheKey(cfg, e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder()))
    }
    assert.Equal(t, key("/v1/events?a=1&b=2"), key("/v1/events?b=2&a=1"))
    assert.NotEqual(t, key("/v1/events?a=1"), key("/v1/events?a=2"))
    assert.Contains(t, key("/v1/events"), "p:")

    cfg.KeyStrategy = "route"
    assert.Equal(t, key("/v1/events?a=1"), key("/v1/events?a=2"))
}

func TestPayloadRoundTrip(t *testing.T) {
    t.Parallel()
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(200, hdr, []byte(`{"ok":true}`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, 200, status)
    assert.Equal(t, hdr, got)
    assert.Equal(t, `{"ok":true}`, string(body))

    _, _, _, ok = decodePayload(bs[:5])
    assert.False(t, ok)
}

func TestCaptureWriterOverflow(t *testing.T) {
    t.Parallel()
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: 200, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    assert.False(t, cw.overflow)
    _, _ = cw.Write([]byte("de"))
    assert.True(t, cw.overflow)
    assert.Equal(t, "abcde", rec.Body.String())
}

func TestDisabledMiddlewaresPassThrough(t *testing.T) {
    t.Parallel()
    e := echo.New()
    e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
        NewRedisCache(config.CacheConfig{Enabled: true}, nil, zap.NewNop()),
        NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, zap.NewNop()))
    rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRateKey(t *testing.T) {
    t.Parallel()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/events/3", nil)
    req.RemoteAddr = "10.0.0.1:1234"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/events/:id")

    assert.Equal(t, "rl:ip:10.0.0.1", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
    assert.Equal(t, "rl:who:anon:route:GET /v1/events/:id", rateKey(config.RateLimitConfig{Prefix: "rl"}, c))
    c.Set(CtxUserID, uint64(4))
    assert.Equal(t, "rl:who:user:4", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "shopper"}, c))

    assert.Equal(t, 0, retryAfterSeconds(0))
    assert.Equal(t, 2, retryAfterSeconds(1001))
}

func TestRequestLogLevels(t *testing.T) {
    t.Parallel()
    core, logs := observer.New(zapcore.InfoLevel)
    e := echo.New()
    e.Use(RequestLog(zap.New(core)))
    e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
    e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "down") })

    serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
    rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
    assert.Equal(t, http.StatusBadGateway, rec.Code)

    entries := logs.All()
    require.Len(t, entries, 2)
    assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
    assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
    assert.Equal(t, int64(502), entries[1].ContextMap()["status"])
}
