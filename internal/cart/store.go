// Package cart implements the shopper's cart: confirmed line items across
// events and performances, merged by composite key, with a total that is
// recomputed after every mutation.
package cart

import "github.com/iliyamo/ticket-storefront/internal/model"

// Store is a single cart.  Its fields are only changed through the methods
// below, each of which leaves Total equal to Σ price × quantity.  A Store
// is not safe for concurrent use; the owning workspace serializes access.
type Store struct {
	items []model.CartItem
	total model.Money
	open  bool
}

// New returns an empty, closed cart.
func New() *Store { return &Store{} }

// AddOrMerge adds the item, or when a line with the same key exists,
// increases that line's quantity by item.Quantity and appends any new seat
// labels.  Items with a quantity below 1 are ignored.
func (s *Store) AddOrMerge(item model.CartItem) {
	if item.Quantity < 1 {
		return
	}
	if i := s.index(item.Key()); i >= 0 {
		s.items[i].Quantity += item.Quantity
		if len(item.SelectedSeats) > 0 {
			seats := make([]string, 0, len(s.items[i].SelectedSeats)+len(item.SelectedSeats))
			seats = append(seats, s.items[i].SelectedSeats...)
			s.items[i].SelectedSeats = append(seats, item.SelectedSeats...)
		}
	} else {
		item.SelectedSeats = append([]string(nil), item.SelectedSeats...)
		s.items = append(s.items, item)
	}
	s.recompute()
}

// Remove deletes the line with the given key.  Unknown keys are ignored.
func (s *Store) Remove(key model.CartKey) {
	i := s.index(key)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.recompute()
}

// SetQuantity replaces the quantity of the line with the given key.  The
// store applies no floor; callers clamp to 1 before calling.
func (s *Store) SetQuantity(key model.CartKey, n int) {
	i := s.index(key)
	if i < 0 {
		return
	}
	s.items[i].Quantity = n
	s.recompute()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.items = nil
	s.total = 0
}

func (s *Store) Open()   { s.open = true }
func (s *Store) Close()  { s.open = false }
func (s *Store) Toggle() { s.open = !s.open }

// IsOpen reports the visibility flag.
func (s *Store) IsOpen() bool { return s.open }

// Total is the cached Σ price × quantity.
func (s *Store) Total() model.Money { return s.total }

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []model.CartItem {
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	for i := range out {
		out[i].SelectedSeats = append([]string(nil), out[i].SelectedSeats...)
	}
	return out
}

// Find returns the line with the given key.
func (s *Store) Find(key model.CartKey) (model.CartItem, bool) {
	if i := s.index(key); i >= 0 {
		return s.items[i], true
	}
	return model.CartItem{}, false
}

// Len is the number of lines.
func (s *Store) Len() int { return len(s.items) }

// Count is the number of tickets across all lines.
func (s *Store) Count() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Sum computes Σ price × quantity over items.
func Sum(items []model.CartItem) model.Money {
	var total model.Money
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

func (s *Store) recompute() { s.total = Sum(s.items) }

func (s *Store) index(key model.CartKey) int {
	for i, it := range s.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}
