// Package seating turns the per-sector seat lists of a performance into a
// rectangular grid that can be rendered one row of buttons per row label
// and used to dispatch clicks back to a (seat, sector) pair.
package seating

import (
	"sort"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

// Cell is a real seat in the grid together with the sector that owns it.
type Cell struct {
	Seat   model.Seat
	Sector *model.Sector
}

// Row is one display row.  Slots holds the seats of the row in ascending
// seat number followed by nil placeholders up to the grid width.  A nil
// slot is never clickable and carries no seat identity.
type Row struct {
	Label string
	Slots []*Cell
}

// Seats returns the non-placeholder cells of the row.
func (r Row) Seats() []*Cell {
	out := make([]*Cell, 0, len(r.Slots))
	for _, c := range r.Slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Layout is the normalized seating grid.  Rows are ordered by descending
// row label so the rows nearest the stage (lower letters) come last, just
// above the stage banner when the grid is drawn top-down from the back.
// Every row has exactly MaxSeats slots.
type Layout struct {
	Rows     []Row
	MaxSeats int
}

// Build groups the seats of the given sectors by row label, sorts each row
// by seat number and pads every row to the widest one.  Sectors are visited
// in ascending RowIndex (stable for ties) so the result is deterministic
// when two sectors share a row.  The input is not modified.
func Build(sectors []model.Sector) Layout {
	ordered := make([]model.Sector, len(sectors))
	copy(ordered, sectors)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].RowIndex < ordered[j].RowIndex })

	buckets := make(map[string][]*Cell)
	for i := range ordered {
		sec := &ordered[i]
		for _, seat := range sec.Seats {
			buckets[seat.RowLabel] = append(buckets[seat.RowLabel], &Cell{Seat: seat, Sector: sec})
		}
	}

	maxSeats := 0
	labels := make([]string, 0, len(buckets))
	for label, cells := range buckets {
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].Seat.SeatNumber < cells[j].Seat.SeatNumber })
		if len(cells) > maxSeats {
			maxSeats = len(cells)
		}
		labels = append(labels, label)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(labels)))

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		slots := make([]*Cell, maxSeats)
		copy(slots, buckets[label])
		rows = append(rows, Row{Label: label, Slots: slots})
	}
	return Layout{Rows: rows, MaxSeats: maxSeats}
}

// At returns the cell at a grid position.  ok is false for placeholders and
// positions outside the grid.
func (l Layout) At(row, col int) (*Cell, bool) {
	if row < 0 || row >= len(l.Rows) || col < 0 || col >= l.MaxSeats {
		return nil, false
	}
	c := l.Rows[row].Slots[col]
	return c, c != nil
}

// Lookup finds a seat by row label and seat number.
func (l Layout) Lookup(key model.SeatKey) (*Cell, bool) {
	for _, r := range l.Rows {
		if r.Label != key.RowLabel {
			continue
		}
		for _, c := range r.Slots {
			if c != nil && c.Seat.SeatNumber == key.SeatNumber {
				return c, true
			}
		}
		return nil, false
	}
	return nil, false
}

// SeatCount is the number of real seats in the grid.
func (l Layout) SeatCount() int {
	n := 0
	for _, r := range l.Rows {
		for _, c := range r.Slots {
			if c != nil {
				n++
			}
		}
	}
	return n
}

// Labels returns the row labels in display order.
func (l Layout) Labels() []string {
	out := make([]string, len(l.Rows))
	for i, r := range l.Rows {
		out[i] = r.Label
	}
	return out
}
