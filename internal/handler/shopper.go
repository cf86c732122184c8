package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/catalog"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/selection"
	"github.com/iliyamo/ticket-storefront/internal/session"
)

// ShopperHandler drives the event detail page of a shopper: which
// performance is open and what is tentatively selected on it.
type ShopperHandler struct {
	Catalog catalog.Source
	Spaces  *session.Registry
	Log     *zap.Logger
}

func NewShopperHandler(src catalog.Source, spaces *session.Registry, log *zap.Logger) *ShopperHandler {
	return &ShopperHandler{Catalog: src, Spaces: spaces, Log: log.Named("shopper")}
}

type openViewReq struct {
	EventID          int64 `json:"event_id"`
	PerformanceIndex int   `json:"performance_index"`
}

type toggleSeatReq struct {
	RowLabel   string `json:"row_label"`
	SeatNumber int    `json:"seat_number"`
}

type quantityReq struct {
	Quantity *int `json:"quantity"`
}

// reply is a status and body computed under the workspace lock and written
// after it is released.
type reply struct {
	status int
	body   any
}

func (r reply) send(c echo.Context) error { return c.JSON(r.status, r.body) }

var (
	noView       = reply{http.StatusConflict, echo.Map{"error": "no event open"}}
	notSeatMap   = reply{http.StatusConflict, echo.Map{"error": "performance is not sold by seat"}}
	notQuantity  = reply{http.StatusConflict, echo.Map{"error": "performance is not sold by quantity"}}
	checkoutBusy = reply{http.StatusConflict, errCheckoutRunning}
)

// OpenView handles PUT /v1/view.  Opening a view, including the one already
// shown, discards the previous tentative selection.  An unknown
// performance index leaves the current view as it was.
func (h *ShopperHandler) OpenView(c echo.Context) error {
	var req openViewReq
	if err := c.Bind(&req); err != nil || req.EventID <= 0 {
		return badRequest(c, "event_id required")
	}
	e, err := h.Catalog.GetEvent(c.Request().Context(), req.EventID)
	if err != nil {
		return catalogError(c, h.Log, err)
	}
	v, ok := selection.Open(e, req.PerformanceIndex)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
	}

	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		w.View = v
		r = reply{http.StatusOK, toView(v)}
	})
	return r.send(c)
}

// GetView handles GET /v1/view.
func (h *ShopperHandler) GetView(c echo.Context) error {
	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		if w.View == nil {
			r = reply{http.StatusNotFound, echo.Map{"error": "no event open"}}
			return
		}
		r = reply{http.StatusOK, toView(w.View)}
	})
	return r.send(c)
}

// ToggleSeat handles POST /v1/view/seats/toggle.  Occupied and unknown
// seats leave the selection unchanged and report changed=false.
func (h *ShopperHandler) ToggleSeat(c echo.Context) error {
	var req toggleSeatReq
	if err := c.Bind(&req); err != nil || req.RowLabel == "" || req.SeatNumber <= 0 {
		return badRequest(c, "row_label and seat_number required")
	}
	key := model.SeatKey{RowLabel: req.RowLabel, SeatNumber: req.SeatNumber}

	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		var ok bool
		if r, ok = seatMapView(w); !ok {
			return
		}
		changed := w.View.ToggleSeat(key)
		r = reply{http.StatusOK, echo.Map{"changed": changed, "view": toView(w.View)}}
	})
	return r.send(c)
}

// SetQuantity handles PUT /v1/view/quantities/:ticketId.  The stored value
// is clamped to [0, quantity available].
func (h *ShopperHandler) SetQuantity(c echo.Context) error {
	ticketID, ok := pathInt64(c, "ticketId")
	if !ok {
		return badRequest(c, "invalid ticket id")
	}
	var req quantityReq
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return badRequest(c, "quantity required")
	}

	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		if r, ok = quantityView(w); !ok {
			return
		}
		if _, known := w.View.Quantities.Ticket(ticketID); !known {
			r = reply{http.StatusNotFound, echo.Map{"error": "ticket not found"}}
			return
		}
		stored := w.View.SetQuantity(ticketID, *req.Quantity)
		r = reply{http.StatusOK, echo.Map{"quantity": stored, "view": toView(w.View)}}
	})
	return r.send(c)
}

// CommitTicket handles POST /v1/view/quantities/:ticketId/commit.  A zero
// quantity commits nothing.
func (h *ShopperHandler) CommitTicket(c echo.Context) error {
	ticketID, ok := pathInt64(c, "ticketId")
	if !ok {
		return badRequest(c, "invalid ticket id")
	}

	var (
		r         reply
		committed bool
	)
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		if r, ok = quantityView(w); !ok {
			return
		}
		if w.Busy(session.OpCheckout) {
			r = checkoutBusy
			return
		}
		if _, known := w.View.Quantities.Ticket(ticketID); !known {
			r = reply{http.StatusNotFound, echo.Map{"error": "ticket not found"}}
			return
		}
		committed = w.View.CommitTicket(ticketID, w.Cart)
		r = reply{http.StatusOK, echo.Map{"committed": committed, "view": toView(w.View), "cart": cartBody(w)}}
	})
	if committed {
		h.Log.Debug("ticket committed", zap.String("shopper", middleware.ShopperKey(c)), zap.Int64("ticket_id", ticketID))
	}
	return r.send(c)
}

// CommitSeats handles POST /v1/view/seats/commit: every selected seat
// becomes a cart line and the selection is cleared.
func (h *ShopperHandler) CommitSeats(c echo.Context) error {
	var r reply
	workspace(c, h.Spaces).Do(func(w *session.Workspace) {
		var ok bool
		if r, ok = seatMapView(w); !ok {
			return
		}
		if w.Busy(session.OpCheckout) {
			r = checkoutBusy
			return
		}
		n := w.View.CommitSeats(w.Cart)
		r = reply{http.StatusOK, echo.Map{"committed": n, "view": toView(w.View), "cart": cartBody(w)}}
	})
	return r.send(c)
}

func quantityView(w *session.Workspace) (reply, bool) {
	if w.View == nil {
		return noView, false
	}
	if _, ok := w.View.Mode.(model.QuantityMode); !ok {
		return notQuantity, false
	}
	return reply{}, true
}

func seatMapView(w *session.Workspace) (reply, bool) {
	if w.View == nil {
		return noView, false
	}
	if _, ok := w.View.Mode.(model.SeatMapMode); !ok {
		return notSeatMap, false
	}
	return reply{}, true
}
