package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
)

// RequestLog writes one zap entry per request.  Level follows the status:
// error for 5xx, warn for 4xx, info otherwise.  Place it after the
// RequestID middleware so the id is available.
func RequestLog(log *zap.Logger) echo.MiddlewareFunc {
    log = log.Named("http")
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err) // commit the response so the status below is final
            }

            req, res := c.Request(), c.Response()
            fields := []zap.Field{
                zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
                zap.Int("status", res.Status),
                zap.String("method", req.Method),
                zap.String("path", req.URL.Path),
                zap.String("route", c.Path()),
                zap.String("query", req.URL.RawQuery),
                zap.String("ip", c.RealIP()),
                zap.Duration("latency", time.Since(start)),
                zap.Int64("bytes_out", res.Size),
            }
            if s := ShopperKey(c); s != "" {
                fields = append(fields, zap.String("shopper", s))
            }
            if err != nil {
                fields = append(fields, zap.Error(err))
            }

            switch {
            case res.Status >= 500:
                log.Error("server error", fields...)
            case res.Status >= 400:
                log.Warn("client error", fields...)
            default:
                log.Info("request completed", fields...)
            }
            return nil
        }
    }
}
