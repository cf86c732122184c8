package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

type recorder struct{ items []model.CartItem }

func (r *recorder) AddOrMerge(item model.CartItem) { r.items = append(r.items, item) }

func seat(row string, n int) model.Seat {
	return model.Seat{RowLabel: row, SeatNumber: n, Status: model.SeatAvailable}
}

func intPtr(n int) *int { return &n }

func TestSeatSetToggleAcrossSectors(t *testing.T) {
	t.Parallel()
	front := model.Sector{ID: 1, Name: "Front", Price: 8000}
	back := model.Sector{ID: 2, Name: "Back", Price: 6000}
	var s SeatSet

	assert.True(t, s.Toggle(seat("A", 1), front))
	assert.True(t, s.Toggle(seat("B", 3), back))
	assert.Equal(t, model.Money(14000), s.TotalPrice())

	assert.True(t, s.Toggle(seat("A", 1), front))
	assert.Equal(t, model.Money(6000), s.TotalPrice())
	assert.False(t, s.IsSelected(seat("A", 1)))
	assert.True(t, s.IsSelected(seat("B", 3)))
}

func TestSeatSetToggleTwiceRestores(t *testing.T) {
	t.Parallel()
	sec := model.Sector{ID: 1, Price: 1000}
	var s SeatSet
	s.Toggle(seat("A", 1), sec)
	s.Toggle(seat("A", 2), sec)
	before := s.Picks()

	for _, st := range []model.Seat{seat("A", 1), seat("C", 7)} {
		s.Toggle(st, sec)
		s.Toggle(st, sec)
		after := s.Picks()
		assert.ElementsMatch(t, before, after)
	}
}

func TestSeatSetIgnoresOccupied(t *testing.T) {
	t.Parallel()
	var s SeatSet
	occ := model.Seat{RowLabel: "A", SeatNumber: 1, Status: model.SeatOccupied}
	assert.False(t, s.Toggle(occ, model.Sector{ID: 1}))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsSelected(occ))
}

func TestSeatSetIdentityIgnoresSector(t *testing.T) {
	t.Parallel()
	var s SeatSet
	s.Toggle(seat("A", 1), model.Sector{ID: 1, Price: 100})
	assert.True(t, s.IsSelected(model.Seat{RowLabel: "A", SeatNumber: 1, ColumnIndex: 9}))
	s.Toggle(seat("A", 1), model.Sector{ID: 2, Price: 999})
	assert.Equal(t, 0, s.Len())
	s.Toggle(seat("A", 2), model.Sector{ID: 1, Price: 100})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, model.Money(0), s.TotalPrice())
}

func TestQuantityMapClampsAndCommits(t *testing.T) {
	t.Parallel()
	m := NewQuantityMap([]model.Ticket{
		{ID: 10, Name: "Full", Price: 5000, QuantityAvailable: intPtr(4)},
		{ID: 11, Name: "Half", Price: 2500},
	})

	assert.Equal(t, 0, m.SetQuantity(10, -3))
	assert.Equal(t, 4, m.SetQuantity(10, 9))
	assert.Equal(t, 100, m.SetQuantity(11, 100))
	assert.Equal(t, 0, m.SetQuantity(99, 2), "unknown ticket is ignored")
	assert.Equal(t, model.Money(4*5000+100*2500), m.Subtotal())

	n, ok := m.Commit(10)
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, m.Quantity(10))

	_, ok = m.Commit(10)
	assert.False(t, ok, "commit of zero quantity is a no-op")

	m.Clear()
	assert.Equal(t, 0, m.Quantity(11))
}

func testEvent() model.Event {
	start := time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC)
	return model.Event{
		ID:    1,
		Title: "Concert",
		Performances: []model.Performance{
			{
				ID: 5, StartTime: start, Venue: model.Venue{Name: "Arena"},
				Tickets: []model.Ticket{{ID: 10, Name: "Full", Price: 5000}},
			},
			{
				ID: 6, StartTime: start.Add(24 * time.Hour), Venue: model.Venue{Name: "Arena"},
				SeatingEnabled: true,
				Sectors: []model.Sector{
					{ID: 20, Name: "Front", Price: 8000, Seats: []model.Seat{seat("A", 1), seat("A", 2)}},
					{ID: 21, Name: "Back", Price: 6000, RowIndex: 1, Seats: []model.Seat{
						seat("B", 3), {RowLabel: "B", SeatNumber: 4, Status: model.SeatOccupied},
					}},
				},
			},
		},
	}
}

func TestViewQuantityMode(t *testing.T) {
	t.Parallel()
	v, ok := Open(testEvent(), 0)
	require.True(t, ok)
	_, isQty := v.Mode.(model.QuantityMode)
	require.True(t, isQty)

	assert.False(t, v.ToggleSeat(model.SeatKey{RowLabel: "A", SeatNumber: 1}))
	assert.Equal(t, 2, v.SetQuantity(10, 2))
	assert.Equal(t, model.Money(10000), v.Subtotal())

	rec := &recorder{}
	assert.True(t, v.CommitTicket(10, rec))
	require.Len(t, rec.items, 1)
	item := rec.items[0]
	assert.Equal(t, model.CartKey{EventID: 1, TicketID: 10, PerformanceID: 5}, item.Key())
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Full", item.TicketName)
	assert.Equal(t, "Arena", item.Venue)
	assert.Equal(t, "Saturday, 14 March 2026 20:30", item.Date)

	assert.False(t, v.CommitTicket(10, rec))
	assert.False(t, v.CommitTicket(77, rec))
	assert.Len(t, rec.items, 1)
	assert.Equal(t, 0, v.CommitSeats(rec))
}

func TestViewSeatMode(t *testing.T) {
	t.Parallel()
	v, ok := Open(testEvent(), 1)
	require.True(t, ok)
	assert.Equal(t, []string{"B", "A"}, v.Layout.Labels())

	assert.True(t, v.ToggleSeat(model.SeatKey{RowLabel: "A", SeatNumber: 1}))
	assert.True(t, v.ToggleSeat(model.SeatKey{RowLabel: "A", SeatNumber: 2}))
	assert.True(t, v.ToggleSeat(model.SeatKey{RowLabel: "B", SeatNumber: 3}))
	assert.False(t, v.ToggleSeat(model.SeatKey{RowLabel: "B", SeatNumber: 4}), "occupied")
	assert.False(t, v.ToggleSeat(model.SeatKey{RowLabel: "Z", SeatNumber: 1}), "unknown")
	assert.Equal(t, 0, v.SetQuantity(10, 3))
	assert.Equal(t, model.Money(22000), v.Subtotal())

	rec := &recorder{}
	assert.Equal(t, 3, v.CommitSeats(rec))
	require.Len(t, rec.items, 3)
	assert.Equal(t, "Front (Seat A1)", rec.items[0].TicketName)
	assert.Equal(t, int64(20), rec.items[0].TicketID)
	assert.Equal(t, []string{"B3"}, rec.items[2].SelectedSeats)
	assert.Equal(t, 1, rec.items[2].Quantity)
	assert.Equal(t, 0, v.Seats.Len())
}

func TestViewSwitchResetsSelection(t *testing.T) {
	t.Parallel()
	v, ok := Open(testEvent(), 1)
	require.True(t, ok)
	v.ToggleSeat(model.SeatKey{RowLabel: "A", SeatNumber: 1})

	assert.False(t, v.Switch(5))
	assert.Equal(t, 1, v.Seats.Len(), "failed switch keeps state")

	assert.True(t, v.Switch(0))
	assert.Equal(t, 0, v.Seats.Len())
	assert.Empty(t, v.Layout.Rows)
	v.SetQuantity(10, 3)

	assert.True(t, v.Switch(0))
	assert.Equal(t, 0, v.Quantities.Quantity(10))

	_, ok = Open(testEvent(), -1)
	assert.False(t, ok)
}
