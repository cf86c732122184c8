package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

func line(eventID, ticketID, perfID int64, price model.Money, qty int) model.CartItem {
	return model.CartItem{
		EventID:       eventID,
		EventTitle:    "Show",
		PerformanceID: perfID,
		TicketID:      ticketID,
		TicketName:    "Ticket",
		Price:         price,
		Quantity:      qty,
		Venue:         "Arena",
	}
}

func TestCommitThenMergeSameTicket(t *testing.T) {
	t.Parallel()
	s := New()

	s.AddOrMerge(line(1, 10, 5, 5000, 2))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Items()[0].Quantity)
	assert.Equal(t, "100.00", s.Total().String())

	s.AddOrMerge(line(1, 10, 5, 5000, 1))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.Items()[0].Quantity)
	assert.Equal(t, "150.00", s.Total().String())
}

func TestMergeLaw(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddOrMerge(line(2, 20, 7, 1999, 1))
	other := s.Total()

	s.AddOrMerge(line(1, 10, 5, 5000, 4))
	s.AddOrMerge(line(1, 10, 5, 5000, 3))

	it, ok := s.Find(model.CartKey{EventID: 1, TicketID: 10, PerformanceID: 5})
	require.True(t, ok)
	assert.Equal(t, 7, it.Quantity)
	assert.Equal(t, other+model.Money(5000*7), s.Total())
	assert.Equal(t, 8, s.Count())
}

func TestMergeKeepsInsertionOrderAndSeats(t *testing.T) {
	t.Parallel()
	s := New()
	a := line(1, 20, 5, 8000, 1)
	a.TicketName = "Front (Seat A1)"
	a.SelectedSeats = []string{"A1"}
	b := line(1, 21, 5, 6000, 1)
	c := line(1, 20, 5, 8000, 1)
	c.TicketName = "Front (Seat A2)"
	c.SelectedSeats = []string{"A2"}

	s.AddOrMerge(a)
	s.AddOrMerge(b)
	s.AddOrMerge(c)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(20), items[0].TicketID)
	assert.Equal(t, "Front (Seat A1)", items[0].TicketName, "first name wins on merge")
	assert.Equal(t, []string{"A1", "A2"}, items[0].SelectedSeats)
	assert.Equal(t, []string{"A1"}, a.SelectedSeats, "caller slice untouched")
	assert.Equal(t, model.Money(22000), s.Total())
}

func TestRemoveUnknownKey(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddOrMerge(line(1, 10, 5, 5000, 2))
	before := s.Items()
	total := s.Total()

	s.Remove(model.CartKey{EventID: 9, TicketID: 9, PerformanceID: 9})
	assert.Equal(t, before, s.Items())
	assert.Equal(t, total, s.Total())

	s.SetQuantity(model.CartKey{EventID: 9}, 4)
	assert.Equal(t, before, s.Items())
}

func TestRemoveSetQuantityClear(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddOrMerge(line(1, 10, 5, 5000, 2))
	s.AddOrMerge(line(1, 11, 5, 2500, 1))

	s.SetQuantity(model.CartKey{EventID: 1, TicketID: 11, PerformanceID: 5}, 4)
	assert.Equal(t, model.Money(20000), s.Total())

	s.Remove(model.CartKey{EventID: 1, TicketID: 10, PerformanceID: 5})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, model.Money(10000), s.Total())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, model.Money(0), s.Total())
}

func TestIgnoresNonPositiveQuantity(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddOrMerge(line(1, 10, 5, 5000, 0))
	s.AddOrMerge(line(1, 10, 5, 5000, -2))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, model.Money(0), s.Total())
}

func TestVisibilityDoesNotTouchItems(t *testing.T) {
	t.Parallel()
	s := New()
	s.AddOrMerge(line(1, 10, 5, 5000, 1))
	assert.False(t, s.IsOpen())
	s.Toggle()
	assert.True(t, s.IsOpen())
	s.Close()
	assert.False(t, s.IsOpen())
	s.Open()
	assert.True(t, s.IsOpen())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, model.Money(5000), s.Total())
}

func TestTotalInvariantRandomized(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	prices := []model.Money{0, 1, 999, 1999, 5000, 12345}

	for round := 0; round < 50; round++ {
		s := New()
		for step := 0; step < 200; step++ {
			key := model.CartKey{
				EventID:       int64(rng.Intn(3)),
				TicketID:      int64(rng.Intn(4)),
				PerformanceID: int64(rng.Intn(2)),
			}
			switch rng.Intn(10) {
			case 0:
				s.Clear()
			case 1, 2:
				s.Remove(key)
			case 3, 4:
				s.SetQuantity(key, rng.Intn(6)+1)
			default:
				// price is a function of the key so merged lines stay consistent
				price := prices[(key.EventID*8+key.TicketID*2+key.PerformanceID)%int64(len(prices))]
				s.AddOrMerge(line(key.EventID, key.TicketID, key.PerformanceID, price, rng.Intn(5)+1))
			}
			require.Equal(t, Sum(s.Items()), s.Total(), "round %d step %d", round, step)

			seen := map[model.CartKey]bool{}
			for _, it := range s.Items() {
				require.False(t, seen[it.Key()], "duplicate key %s", it.Key())
				seen[it.Key()] = true
			}
		}
	}
}
