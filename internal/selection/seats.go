// Package selection holds the tentative choices a shopper makes while
// viewing one performance: seats picked on the map or quantities per
// ticket type.  Nothing here is persisted; the state is thrown away when
// the viewed performance changes or once it is committed to the cart.
package selection

import "github.com/iliyamo/ticket-storefront/internal/model"

// SeatPick is a selected seat and the sector it belongs to.
type SeatPick struct {
	Seat   model.Seat
	Sector model.Sector
}

// SeatSet is the set of seats picked for the current performance, in the
// order they were picked.  Membership is by (row label, seat number).
type SeatSet struct {
	picks []SeatPick
}

// Toggle removes the seat when it is already selected and adds it
// otherwise.  Occupied seats are ignored.  It reports whether the set
// changed.
func (s *SeatSet) Toggle(seat model.Seat, sector model.Sector) bool {
	if seat.Occupied() {
		return false
	}
	if i := s.index(seat.Key()); i >= 0 {
		s.picks = append(s.picks[:i], s.picks[i+1:]...)
		return true
	}
	sector.Seats = nil // the pick only needs the sector's identity and price
	s.picks = append(s.picks, SeatPick{Seat: seat, Sector: sector})
	return true
}

// IsSelected reports whether the seat is in the set.
func (s *SeatSet) IsSelected(seat model.Seat) bool {
	return s.index(seat.Key()) >= 0
}

// TotalPrice is the sum of the sector prices of the selected seats.
func (s *SeatSet) TotalPrice() model.Money {
	var total model.Money
	for _, p := range s.picks {
		total += p.Sector.Price
	}
	return total
}

// Len is the number of selected seats.
func (s *SeatSet) Len() int { return len(s.picks) }

// Picks returns a copy of the selection in pick order.
func (s *SeatSet) Picks() []SeatPick {
	out := make([]SeatPick, len(s.picks))
	copy(out, s.picks)
	return out
}

// Clear empties the set.
func (s *SeatSet) Clear() { s.picks = nil }

func (s *SeatSet) index(k model.SeatKey) int {
	for i, p := range s.picks {
		if p.Seat.Key() == k {
			return i
		}
	}
	return -1
}
