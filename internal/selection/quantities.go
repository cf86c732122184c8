package selection

import "github.com/iliyamo/ticket-storefront/internal/model"

// QuantityMap tracks the requested quantity per ticket type for a
// performance sold by quantity.  Quantities never go below zero and never
// above the ticket's finite availability.  Ticket ids that the performance
// does not sell are ignored.
type QuantityMap struct {
	tickets map[int64]model.Ticket
	qty     map[int64]int
}

// NewQuantityMap returns an empty map for the given ticket types.
func NewQuantityMap(tickets []model.Ticket) *QuantityMap {
	m := &QuantityMap{
		tickets: make(map[int64]model.Ticket, len(tickets)),
		qty:     make(map[int64]int, len(tickets)),
	}
	for _, t := range tickets {
		m.tickets[t.ID] = t
	}
	return m
}

// SetQuantity stores n for the ticket after clamping it to
// [0, QuantityAvailable].  It returns the stored value.
func (m *QuantityMap) SetQuantity(ticketID int64, n int) int {
	t, ok := m.tickets[ticketID]
	if !ok {
		return 0
	}
	if n < 0 {
		n = 0
	}
	if t.QuantityAvailable != nil && n > *t.QuantityAvailable {
		n = *t.QuantityAvailable
		if n < 0 {
			n = 0
		}
	}
	m.qty[ticketID] = n
	return n
}

// Quantity returns the current quantity for the ticket (0 when unset).
func (m *QuantityMap) Quantity(ticketID int64) int { return m.qty[ticketID] }

// Ticket returns the ticket type known to the map.
func (m *QuantityMap) Ticket(ticketID int64) (model.Ticket, bool) {
	t, ok := m.tickets[ticketID]
	return t, ok
}

// Commit takes the current quantity for the ticket and resets it to 0.
// A zero quantity commits nothing and reports ok=false.
func (m *QuantityMap) Commit(ticketID int64) (int, bool) {
	n := m.qty[ticketID]
	if n <= 0 {
		return 0, false
	}
	m.qty[ticketID] = 0
	return n, true
}

// Clear resets every quantity to 0.
func (m *QuantityMap) Clear() {
	for id := range m.qty {
		delete(m.qty, id)
	}
}

// Subtotal is Σ price × quantity over the current quantities.
func (m *QuantityMap) Subtotal() model.Money {
	var total model.Money
	for id, n := range m.qty {
		total += m.tickets[id].Price.Times(n)
	}
	return total
}
