package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/checkout"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/session"
)

// Checkouter is implemented by *checkout.Service.
type Checkouter interface {
	Submit(ctx context.Context, userID uint64, items []model.CartItem, total model.Money, c model.Customer) (model.Purchase, error)
	History(ctx context.Context, userID uint64) ([]model.Purchase, error)
}

type CheckoutHandler struct {
	Service Checkouter
	Spaces  *session.Registry
	Log     *zap.Logger
}

func NewCheckoutHandler(svc Checkouter, spaces *session.Registry, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{Service: svc, Spaces: spaces, Log: log.Named("checkout")}
}

type checkoutReq struct {
	Customer customerJSON `json:"customer"`
}

// Submit handles POST /v1/checkout.  The cart is snapshotted, submitted
// without holding the workspace lock, and cleared only on success.  While
// the submission runs the cart cannot be changed, so the cleared cart is
// exactly the one that was bought.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	ws := h.Spaces.Get(middleware.UserKey(uid))
	if !ws.Begin(session.OpCheckout) {
		return c.JSON(http.StatusConflict, errCheckoutRunning)
	}
	defer ws.End(session.OpCheckout)

	var (
		items []model.CartItem
		total model.Money
	)
	ws.Do(func(w *session.Workspace) {
		items = w.Cart.Items()
		total = w.Cart.Total()
	})

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	p, err := h.Service.Submit(ctx, uid, items, total, req.Customer.model())
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return badRequest(c, "cart is empty")
	case errors.Is(err, checkout.ErrInvalidCustomer):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case err != nil:
		h.Log.Error("checkout failed", zap.Uint64("user_id", uid), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
	}

	ws.Do(func(w *session.Workspace) {
		w.Cart.Clear()
		w.Cart.Close()
	})
	return c.JSON(http.StatusCreated, toPurchase(p))
}

// Purchases handles GET /v1/purchases.
func (h *CheckoutHandler) Purchases(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ps, err := h.Service.History(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("list purchases failed", zap.Uint64("user_id", uid), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list purchases failed"})
	}
	out := make([]purchaseJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPurchase(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
