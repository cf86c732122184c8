package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-storefront/internal/handler"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the auth routes.  Register and login carry the
// optional guest session so its cart can follow the user.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.OptionalAuth(jwtSecret))

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}
