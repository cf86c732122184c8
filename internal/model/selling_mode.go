package model

// SellingMode is the active selling strategy of a performance.  It is one
// of QuantityMode or SeatMapMode; callers switch on the concrete type so
// that sector data is never read in quantity mode and vice versa.
type SellingMode interface {
    sellingMode()
    Name() string
}

// QuantityMode sells ticket types by declared count.
type QuantityMode struct {
    Tickets []Ticket
}

// SeatMapMode sells individual seats picked on a venue map.
type SeatMapMode struct {
    Sectors []Sector
}

func (QuantityMode) sellingMode() {}
func (SeatMapMode) sellingMode()  {}

func (QuantityMode) Name() string { return "quantity" }
func (SeatMapMode) Name() string  { return "seat_map" }

// Ticket finds a ticket type by id.
func (m QuantityMode) Ticket(id int64) (Ticket, bool) {
    for _, t := range m.Tickets {
        if t.ID == id {
            return t, true
        }
    }
    return Ticket{}, false
}

// Mode returns the selling mode selected by SeatingEnabled.
func (p Performance) Mode() SellingMode {
    if p.SeatingEnabled {
        return SeatMapMode{Sectors: p.Sectors}
    }
    return QuantityMode{Tickets: p.Tickets}
}
