package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-storefront/internal/handler"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
)

// RegisterCatalog mounts the public catalog reads.  cache is the response
// cache middleware; it only stores what its config marks cacheable.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/events", h.ListEvents)
	g.GET("/events/:id", h.GetEvent)
	g.GET("/events/:id/performances/:idx/seating", h.Seating)
	g.GET("/categories", h.ListCategories)
	g.GET("/categories/:id", h.GetCategory)
}

// RegisterShopper mounts the view and cart routes.  Guests and signed-in
// users both use them; the workspace is picked by middleware.Shopper.
func RegisterShopper(e *echo.Echo, s *handler.ShopperHandler, c *handler.CartHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.OptionalAuth(jwtSecret), middleware.Shopper())

	g.PUT("/view", s.OpenView)
	g.GET("/view", s.GetView)
	g.POST("/view/seats/toggle", s.ToggleSeat)
	g.POST("/view/seats/commit", s.CommitSeats)
	g.PUT("/view/quantities/:ticketId", s.SetQuantity)
	g.POST("/view/quantities/:ticketId/commit", s.CommitTicket)

	g.GET("/cart", c.Get)
	g.DELETE("/cart", c.Clear)
	g.DELETE("/cart/items/:key", c.Remove)
	g.PATCH("/cart/items/:key", c.SetQuantity)
	g.POST("/cart/open", c.Open)
	g.POST("/cart/close", c.Close)
	g.POST("/cart/toggle", c.Toggle)
}

// RegisterCheckout mounts the routes that need an account.
func RegisterCheckout(e *echo.Echo, h *handler.CheckoutHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.Shopper())
	g.POST("/checkout", h.Submit)
	g.GET("/purchases", h.Purchases)
}
