package handler // handler holds the echo HTTP handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/catalog"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
	"github.com/iliyamo/ticket-storefront/internal/session"
)

// getUserID returns the authenticated user placed in the context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// pathInt64 parses a positive integer path parameter.
func pathInt64(c echo.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}

// queryInt parses an optional non-negative query parameter; absent means 0.
func queryInt(c echo.Context, name string) (int, bool) {
	s := c.QueryParam(name)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 0
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// catalogError maps catalog failures: 404 for unknown ids, 502 with a
// retryable flag for everything upstream.  The client decides whether to
// retry.
func catalogError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, catalog.ErrUpstream):
		log.Warn("catalog upstream failure", zap.String("path", c.Request().URL.Path), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalog unavailable", "retryable": true})
	default:
		log.Error("catalog call failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// workspace returns the caller's workspace as resolved by middleware.Shopper.
func workspace(c echo.Context, spaces *session.Registry) *session.Workspace {
	return spaces.Get(middleware.ShopperKey(c))
}

var errCheckoutRunning = echo.Map{"error": "checkout in progress"}
