package handler

import (
	"time"

	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/seating"
	"github.com/iliyamo/ticket-storefront/internal/selection"
)

// Response shapes.  Money goes out twice: integer cents for arithmetic and
// a two-decimal string for display.

type venueJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

type categoryJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IconSVG string `json:"icon_svg,omitempty"`
}

type ticketJSON struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	PriceCents        int64  `json:"price_cents"`
	Price             string `json:"price"`
	QuantityAvailable *int   `json:"quantity_available"`
	SalesEndDate      string `json:"sales_end_date,omitempty"`
}

type sectorJSON struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
	Block      string `json:"block"`
}

type performanceJSON struct {
	Index     int          `json:"index"`
	ID        int64        `json:"id"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	Venue     venueJSON    `json:"venue"`
	Mode      string       `json:"mode"`
	Tickets   []ticketJSON `json:"tickets,omitempty"`
	Sectors   []sectorJSON `json:"sectors,omitempty"`
}

type eventJSON struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Image        string            `json:"image,omitempty"`
	Policy       string            `json:"policy,omitempty"`
	Categories   []categoryJSON    `json:"categories"`
	Performances []performanceJSON `json:"performances,omitempty"`
}

type pageJSON struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type cellJSON struct {
	RowLabel   string `json:"row_label"`
	SeatNumber int    `json:"seat_number"`
	Label      string `json:"label"`
	Status     string `json:"status"`
	SectorID   int64  `json:"sector_id"`
	Sector     string `json:"sector"`
	Block      string `json:"block"`
	PriceCents int64  `json:"price_cents"`
	Selected   bool   `json:"selected,omitempty"`
}

// rowJSON keeps placeholder slots as null so clients can lay out columns.
type rowJSON struct {
	Label string      `json:"label"`
	Slots []*cellJSON `json:"slots"`
}

type layoutJSON struct {
	MaxSeats int       `json:"max_seats"`
	Rows     []rowJSON `json:"rows"`
}

type cartItemJSON struct {
	Key           string   `json:"key"`
	EventID       int64    `json:"event_id"`
	EventTitle    string   `json:"event_title"`
	PerformanceID int64    `json:"performance_id"`
	TicketID      int64    `json:"ticket_id"`
	TicketName    string   `json:"ticket_name"`
	PriceCents    int64    `json:"price_cents"`
	Price         string   `json:"price"`
	Quantity      int      `json:"quantity"`
	LineTotal     string   `json:"line_total"`
	Venue         string   `json:"venue"`
	Date          string   `json:"date"`
	SelectedSeats []string `json:"selected_seats,omitempty"`
}

type cartJSON struct {
	Items      []cartItemJSON `json:"items"`
	TotalCents int64          `json:"total_cents"`
	Total      string         `json:"total"`
	Count      int            `json:"count"`
	IsOpen     bool           `json:"is_open"`
}

type seatPickJSON struct {
	Label      string `json:"label"`
	Sector     string `json:"sector"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
}

type quantityJSON struct {
	TicketID int64 `json:"ticket_id"`
	Quantity int   `json:"quantity"`
}

type viewJSON struct {
	EventID          int64           `json:"event_id"`
	EventTitle       string          `json:"event_title"`
	PerformanceIndex int             `json:"performance_index"`
	Performance      performanceJSON `json:"performance"`
	Mode             string          `json:"mode"`
	Layout           *layoutJSON     `json:"layout,omitempty"`
	SelectedSeats    []seatPickJSON  `json:"selected_seats,omitempty"`
	Quantities       []quantityJSON  `json:"quantities,omitempty"`
	SubtotalCents    int64           `json:"subtotal_cents"`
	Subtotal         string          `json:"subtotal"`
}

type customerJSON struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Document   string `json:"document"`
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	CardExpiry string `json:"card_expiry"`
	CardCVC    string `json:"card_cvc,omitempty"`
}

type purchaseJSON struct {
	ID         string         `json:"id"`
	Date       time.Time      `json:"date"`
	Items      []cartItemJSON `json:"items"`
	TotalCents int64          `json:"total_cents"`
	Total      string         `json:"total"`
	Customer   customerJSON   `json:"customer"`
}

func toVenue(v model.Venue) venueJSON {
	return venueJSON{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City, State: v.State}
}

func toCategory(c model.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, IconSVG: c.IconSVG}
}

func toPage(p model.Pagination) pageJSON {
	return pageJSON{Page: p.Page, PageSize: p.PageSize, Total: p.Total, TotalPages: p.TotalPages}
}

// toPerformance renders only the data of the active selling mode.
func toPerformance(idx int, p model.Performance) performanceJSON {
	out := performanceJSON{
		Index:     idx,
		ID:        p.ID,
		StartTime: p.StartTime,
		Venue:     toVenue(p.Venue),
	}
	if !p.EndTime.IsZero() {
		end := p.EndTime
		out.EndTime = &end
	}
	mode := p.Mode()
	out.Mode = mode.Name()
	switch m := mode.(type) {
	case model.QuantityMode:
		for _, t := range m.Tickets {
			out.Tickets = append(out.Tickets, ticketJSON{
				ID: t.ID, Name: t.Name, PriceCents: t.Price.Cents(), Price: t.Price.String(),
				QuantityAvailable: t.QuantityAvailable, SalesEndDate: t.SalesEndDate,
			})
		}
	case model.SeatMapMode:
		for _, s := range m.Sectors {
			out.Sectors = append(out.Sectors, sectorJSON{
				ID: s.ID, Code: s.Code, Name: s.Name, PriceCents: s.Price.Cents(), Price: s.Price.String(), Block: string(s.Block),
			})
		}
	}
	return out
}

func toEvent(e model.Event, withPerformances bool) eventJSON {
	out := eventJSON{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		Policy:      e.Policy,
		Categories:  []categoryJSON{},
	}
	for _, c := range e.Categories {
		out.Categories = append(out.Categories, toCategory(c))
	}
	if withPerformances {
		for i, p := range e.Performances {
			out.Performances = append(out.Performances, toPerformance(i, p))
		}
	}
	return out
}

// toLayout renders the grid; selected may be nil.
func toLayout(l seating.Layout, selected *selection.SeatSet) layoutJSON {
	out := layoutJSON{MaxSeats: l.MaxSeats, Rows: make([]rowJSON, 0, len(l.Rows))}
	for _, r := range l.Rows {
		row := rowJSON{Label: r.Label, Slots: make([]*cellJSON, len(r.Slots))}
		for i, cell := range r.Slots {
			if cell == nil {
				continue
			}
			row.Slots[i] = &cellJSON{
				RowLabel:   cell.Seat.RowLabel,
				SeatNumber: cell.Seat.SeatNumber,
				Label:      cell.Seat.Label(),
				Status:     string(cell.Seat.Status),
				SectorID:   cell.Sector.ID,
				Sector:     cell.Sector.Name,
				Block:      string(cell.Sector.Block),
				PriceCents: cell.Sector.Price.Cents(),
				Selected:   selected != nil && selected.IsSelected(cell.Seat),
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func toCartItem(it model.CartItem) cartItemJSON {
	return cartItemJSON{
		Key:           it.Key().String(),
		EventID:       it.EventID,
		EventTitle:    it.EventTitle,
		PerformanceID: it.PerformanceID,
		TicketID:      it.TicketID,
		TicketName:    it.TicketName,
		PriceCents:    it.Price.Cents(),
		Price:         it.Price.String(),
		Quantity:      it.Quantity,
		LineTotal:     it.LineTotal().String(),
		Venue:         it.Venue,
		Date:          it.Date,
		SelectedSeats: it.SelectedSeats,
	}
}

func toCartItems(items []model.CartItem) []cartItemJSON {
	out := make([]cartItemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItem(it))
	}
	return out
}

func toView(v *selection.View) viewJSON {
	sub := v.Subtotal()
	out := viewJSON{
		EventID:          v.Event.ID,
		EventTitle:       v.Event.Title,
		PerformanceIndex: v.PerformanceIndex,
		Performance:      toPerformance(v.PerformanceIndex, v.Performance),
		Mode:             v.Mode.Name(),
		SubtotalCents:    sub.Cents(),
		Subtotal:         sub.String(),
	}
	switch m := v.Mode.(type) {
	case model.SeatMapMode:
		l := toLayout(v.Layout, v.Seats)
		out.Layout = &l
		for _, p := range v.Seats.Picks() {
			out.SelectedSeats = append(out.SelectedSeats, seatPickJSON{
				Label: p.Seat.Label(), Sector: p.Sector.Name, PriceCents: p.Sector.Price.Cents(), Price: p.Sector.Price.String(),
			})
		}
	case model.QuantityMode:
		for _, t := range m.Tickets {
			out.Quantities = append(out.Quantities, quantityJSON{TicketID: t.ID, Quantity: v.Quantities.Quantity(t.ID)})
		}
	}
	return out
}

func (c customerJSON) model() model.Customer {
	return model.Customer{
		Name: c.Name, Email: c.Email, Phone: c.Phone, Document: c.Document,
		CardNumber: c.CardNumber, CardName: c.CardName, CardExpiry: c.CardExpiry, CardCVC: c.CardCVC,
	}
}

func toPurchase(p model.Purchase) purchaseJSON {
	c := p.Customer
	return purchaseJSON{
		ID:         p.ID,
		Date:       p.Date,
		Items:      toCartItems(p.Items),
		TotalCents: p.Total.Cents(),
		Total:      p.Total.String(),
		Customer: customerJSON{
			Name: c.Name, Email: c.Email, Phone: c.Phone, Document: c.Document,
			CardNumber: c.CardNumber, CardName: c.CardName, CardExpiry: c.CardExpiry,
		},
	}
}
