package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/session"
)

// CartHandler exposes the shopper's cart.  Cart mutations are refused
// while a checkout of the same cart is in flight.
type CartHandler struct {
	Spaces *session.Registry
}

func NewCartHandler(spaces *session.Registry) *CartHandler { return &CartHandler{Spaces: spaces} }

// cartBody renders the cart.  Call it inside Workspace.Do.
func cartBody(w *session.Workspace) cartJSON {
	total := w.Cart.Total()
	return cartJSON{
		Items:      toCartItems(w.Cart.Items()),
		TotalCents: total.Cents(),
		Total:      total.String(),
		Count:      w.Cart.Count(),
		IsOpen:     w.Cart.IsOpen(),
	}
}

// Get handles GET /v1/cart.
func (h *CartHandler) Get(c echo.Context) error {
	var body cartJSON
	workspace(c, h.Spaces).Do(func(w *session.Workspace) { body = cartBody(w) })
	return c.JSON(http.StatusOK, body)
}

// Remove handles DELETE /v1/cart/items/:key.  Unknown keys are a no-op.
func (h *CartHandler) Remove(c echo.Context) error {
	key, ok := model.ParseCartKey(c.Param("key"))
	if !ok {
		return badRequest(c, "invalid cart key")
	}
	return h.mutate(c, func(w *session.Workspace) { w.Cart.Remove(key) })
}

// SetQuantity handles PATCH /v1/cart/items/:key.  Quantities below 1 are
// raised to 1; removing a line is done with DELETE.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	key, ok := model.ParseCartKey(c.Param("key"))
	if !ok {
		return badRequest(c, "invalid cart key")
	}
	var req quantityReq
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return badRequest(c, "quantity required")
	}
	n := *req.Quantity
	if n < 1 {
		n = 1
	}
	return h.mutate(c, func(w *session.Workspace) { w.Cart.SetQuantity(key, n) })
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c echo.Context) error {
	return h.mutate(c, func(w *session.Workspace) { w.Cart.Clear() })
}

// Open, Close and Toggle only change the drawer flag and are allowed
// during checkout.
func (h *CartHandler) Open(c echo.Context) error {
	return h.visibility(c, func(w *session.Workspace) { w.Cart.Open() })
}

func (h *CartHandler) Close(c echo.Context) error {
	return h.visibility(c, func(w *session.Workspace) { w.Cart.Close() })
}

func (h *CartHandler) Toggle(c echo.Context) error {
	return h.visibility(c, func(w *session.Workspace) { w.Cart.Toggle() })
}

func (h *CartHandler) visibility(c echo.Context, fn func(w *session.Workspace)) error {
	var body cartJSON
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		fn(w)
		body = cartBody(w)
	})
	return c.JSON(http.StatusOK, body)
}

func (h *CartHandler) mutate(c echo.Context, fn func(w *session.Workspace)) error {
	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		if w.Busy(session.OpCheckout) {
			r = checkoutBusy
			return
		}
		fn(w)
		r = reply{http.StatusOK, cartBody(w)}
	})
	return r.send(c)
}
