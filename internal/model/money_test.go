package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyString(t *testing.T) {
	t.Parallel()
	cases := map[Money]string{
		0:      "0.00",
		5:      "0.05",
		100:    "1.00",
		15000:  "150.00",
		4990:   "49.90",
		-1250:  "-12.50",
		123456: "1234.56",
	}
	for in, want := range cases {
		assert.Equal(t, want, in.String())
	}
}

func TestMoneyFromFloat(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Money(5000), MoneyFromFloat(50))
	assert.Equal(t, Money(4990), MoneyFromFloat(49.9))
	assert.Equal(t, Money(30), MoneyFromFloat(0.1+0.2))
}

func TestCartKeyRoundTrip(t *testing.T) {
	t.Parallel()
	k := CartKey{EventID: 1, TicketID: 10, PerformanceID: 5}
	assert.Equal(t, "1-10-5", k.String())

	got, ok := ParseCartKey("1-10-5")
	assert.True(t, ok)
	assert.Equal(t, k, got)

	for _, bad := range []string{"", "1-10", "a-b-c", "1-10-5-7", "1--5"} {
		_, ok := ParseCartKey(bad)
		assert.False(t, ok, bad)
	}
}

func TestCustomerMasked(t *testing.T) {
	t.Parallel()
	c := Customer{Name: "Ana", CardNumber: "4111 1111 1111 1234", CardCVC: "123"}
	m := c.Masked()
	assert.Equal(t, "**** 1234", m.CardNumber)
	assert.Empty(t, m.CardCVC)
	assert.Equal(t, "Ana", m.Name)
	assert.Equal(t, "4111 1111 1111 1234", c.CardNumber)
}

func TestPerformanceMode(t *testing.T) {
	t.Parallel()
	p := Performance{
		Tickets: []Ticket{{ID: 1}},
		Sectors: []Sector{{ID: 2}},
	}
	q, ok := p.Mode().(QuantityMode)
	assert.True(t, ok)
	assert.Len(t, q.Tickets, 1)

	p.SeatingEnabled = true
	s, ok := p.Mode().(SeatMapMode)
	assert.True(t, ok)
	assert.Equal(t, int64(2), s.Sectors[0].ID)
}

func TestParseSeatStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SeatAvailable, ParseSeatStatus("available"))
	assert.Equal(t, SeatOccupied, ParseSeatStatus("occupied"))
	assert.Equal(t, SeatOccupied, ParseSeatStatus("sold"))
	assert.Equal(t, SeatOccupied, ParseSeatStatus("reserved"))
}
