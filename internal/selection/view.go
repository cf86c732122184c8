package selection

import (
	"fmt"

	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/seating"
)

// DateLayout formats a performance start time for cart lines.
const DateLayout = "Monday, 02 January 2006 15:04"

// Merger receives committed selections.  *cart.Store satisfies it.
type Merger interface {
	AddOrMerge(item model.CartItem)
}

// View is the selection state of one event detail page: which performance
// is shown and what has been tentatively picked for it.  Exactly one of
// Seats (seat-map mode) or Quantities (quantity mode) is in use, matching
// Mode.
type View struct {
	Event            model.Event
	PerformanceIndex int
	Performance      model.Performance
	Mode             model.SellingMode
	Layout           seating.Layout
	Seats            *SeatSet
	Quantities       *QuantityMap
}

// Open starts a view on the performance at index idx of the event.  ok is
// false when the event has no such performance.
func Open(event model.Event, idx int) (*View, bool) {
	v := &View{Event: event}
	if !v.Switch(idx) {
		return nil, false
	}
	return v, true
}

// Switch moves the view to another performance of the same event and
// discards every tentative choice, even when idx is the current index.
// Out-of-range indexes leave the view unchanged and report false.
func (v *View) Switch(idx int) bool {
	if idx < 0 || idx >= len(v.Event.Performances) {
		return false
	}
	p := v.Event.Performances[idx]
	v.PerformanceIndex = idx
	v.Performance = p
	v.Mode = p.Mode()
	v.Seats = &SeatSet{}
	v.Quantities = NewQuantityMap(nil)
	v.Layout = seating.Layout{}
	switch m := v.Mode.(type) {
	case model.SeatMapMode:
		v.Layout = seating.Build(m.Sectors)
	case model.QuantityMode:
		v.Quantities = NewQuantityMap(m.Tickets)
	}
	return true
}

// ToggleSeat toggles the seat identified by key.  It is a no-op outside
// seat-map mode, for unknown seats and for occupied seats.
func (v *View) ToggleSeat(key model.SeatKey) bool {
	if _, ok := v.Mode.(model.SeatMapMode); !ok {
		return false
	}
	cell, ok := v.Layout.Lookup(key)
	if !ok {
		return false
	}
	return v.Seats.Toggle(cell.Seat, *cell.Sector)
}

// SetQuantity sets the quantity for a ticket type in quantity mode and
// returns the stored (clamped) value.
func (v *View) SetQuantity(ticketID int64, n int) int {
	if _, ok := v.Mode.(model.QuantityMode); !ok {
		return 0
	}
	return v.Quantities.SetQuantity(ticketID, n)
}

// CommitTicket merges the selected quantity of one ticket type into the
// cart and resets that quantity.  Nothing is merged when the quantity is 0.
func (v *View) CommitTicket(ticketID int64, to Merger) bool {
	if _, ok := v.Mode.(model.QuantityMode); !ok {
		return false
	}
	t, ok := v.Quantities.Ticket(ticketID)
	if !ok {
		return false
	}
	n, ok := v.Quantities.Commit(ticketID)
	if !ok {
		return false
	}
	item := v.baseItem()
	item.TicketID = t.ID
	item.TicketName = t.Name
	item.Price = t.Price
	item.Quantity = n
	to.AddOrMerge(item)
	return true
}

// CommitSeats merges every selected seat into the cart, one line per seat
// keyed by its sector, then clears the selection.  It returns the number
// of seats committed.
func (v *View) CommitSeats(to Merger) int {
	if _, ok := v.Mode.(model.SeatMapMode); !ok {
		return 0
	}
	picks := v.Seats.Picks()
	for _, p := range picks {
		item := v.baseItem()
		item.TicketID = p.Sector.ID
		item.TicketName = fmt.Sprintf("%s (Seat %s)", p.Sector.Name, p.Seat.Label())
		item.Price = p.Sector.Price
		item.Quantity = 1
		item.SelectedSeats = []string{p.Seat.Label()}
		to.AddOrMerge(item)
	}
	v.Seats.Clear()
	return len(picks)
}

// Subtotal is the price of the tentative selection in the active mode.
func (v *View) Subtotal() model.Money {
	switch v.Mode.(type) {
	case model.SeatMapMode:
		return v.Seats.TotalPrice()
	case model.QuantityMode:
		return v.Quantities.Subtotal()
	}
	return 0
}

func (v *View) baseItem() model.CartItem {
	return model.CartItem{
		EventID:       v.Event.ID,
		EventTitle:    v.Event.Title,
		PerformanceID: v.Performance.ID,
		Venue:         v.Performance.Venue.Name,
		Date:          v.Performance.StartTime.Format(DateLayout),
	}
}
