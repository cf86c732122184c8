package catalog

import (
	"time"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

// JSON shapes of the upstream catalog API.

type venueJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type ticketJSON struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	QuantityAvailable *int    `json:"quantityAvailable"`
	SalesEndDate      string  `json:"sales_end_date"`
}

type seatJSON struct {
	RowLabel    string `json:"rowLabel"`
	SeatNumber  int    `json:"seatNumber"`
	ColumnIndex int    `json:"columnIndex"`
	Status      string `json:"status"`
}

type sectorJSON struct {
	ID       int64      `json:"id"`
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Price    float64    `json:"price"`
	Block    string     `json:"block"`
	RowIndex int        `json:"rowIndex"`
	Seats    []seatJSON `json:"seats"`
}

type performanceJSON struct {
	ID             int64        `json:"id"`
	StartTime      string       `json:"start_time"`
	EndTime        string       `json:"end_time"`
	Venue          venueJSON    `json:"venue"`
	Tickets        []ticketJSON `json:"tickets"`
	SeatingEnabled bool         `json:"seatingEnabled"`
	Sectors        []sectorJSON `json:"sectors"`
}

type categoryJSON struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IconSVG string `json:"icon_svg"`
}

type eventJSON struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Image        string            `json:"img_event"`
	Policy       string            `json:"policy"`
	Categories   []categoryJSON    `json:"categories"`
	Performances []performanceJSON `json:"performances"`
}

type paginationJSON struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type eventsResponse struct {
	Data       []eventJSON    `json:"data"`
	Pagination paginationJSON `json:"pagination"`
}

type categoriesResponse struct {
	Data       []categoryJSON `json:"data"`
	Pagination paginationJSON `json:"pagination"`
}

// parseTime accepts RFC 3339 timestamps with or without a zone.  Invalid
// values become the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (v venueJSON) model() model.Venue {
	return model.Venue{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City, State: v.State}
}

func (c categoryJSON) model() model.Category {
	return model.Category{ID: c.ID, Name: c.Name, IconSVG: c.IconSVG}
}

func (p paginationJSON) model() model.Pagination {
	return model.Pagination{Page: p.Page, PageSize: p.PageSize, Total: p.Total, TotalPages: p.TotalPages}
}

func (s sectorJSON) model() model.Sector {
	seats := make([]model.Seat, 0, len(s.Seats))
	for _, st := range s.Seats {
		seats = append(seats, model.Seat{
			RowLabel:    st.RowLabel,
			SeatNumber:  st.SeatNumber,
			ColumnIndex: st.ColumnIndex,
			Status:      model.ParseSeatStatus(st.Status),
		})
	}
	return model.Sector{
		ID:       s.ID,
		Code:     s.Code,
		Name:     s.Name,
		Price:    model.MoneyFromFloat(s.Price),
		Block:    model.Block(s.Block),
		RowIndex: s.RowIndex,
		Seats:    seats,
	}
}

func (p performanceJSON) model() model.Performance {
	out := model.Performance{
		ID:             p.ID,
		StartTime:      parseTime(p.StartTime),
		EndTime:        parseTime(p.EndTime),
		Venue:          p.Venue.model(),
		SeatingEnabled: p.SeatingEnabled,
	}
	for _, t := range p.Tickets {
		out.Tickets = append(out.Tickets, model.Ticket{
			ID:                t.ID,
			Name:              t.Name,
			Price:             model.MoneyFromFloat(t.Price),
			QuantityAvailable: t.QuantityAvailable,
			SalesEndDate:      t.SalesEndDate,
		})
	}
	for _, s := range p.Sectors {
		out.Sectors = append(out.Sectors, s.model())
	}
	return out
}

func (e eventJSON) model() model.Event {
	out := model.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		Policy:      e.Policy,
	}
	for _, c := range e.Categories {
		out.Categories = append(out.Categories, c.model())
	}
	for _, p := range e.Performances {
		out.Performances = append(out.Performances, p.model())
	}
	return out
}
