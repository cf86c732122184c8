package model

import (
    "strconv"
    "time"
)

// SeatStatus is the availability of a seat as reported by the catalog.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "available"
    SeatOccupied  SeatStatus = "occupied"
)

// ParseSeatStatus maps an upstream status onto the two states the
// storefront distinguishes.  Anything that is not explicitly available
// ("reserved", "sold", "occupied", unknown values) is treated as occupied.
func ParseSeatStatus(s string) SeatStatus {
    if s == string(SeatAvailable) {
        return SeatAvailable
    }
    return SeatOccupied
}

// Block is the horizontal position of a sector relative to the stage.
type Block string

const (
    BlockLeft   Block = "left"
    BlockCenter Block = "center"
    BlockRight  Block = "right"
)

// SeatKey identifies a seat within a performance: row label plus seat
// number.  The sector is not part of the identity because a seat belongs
// to exactly one sector.
type SeatKey struct {
    RowLabel   string
    SeatNumber int
}

// Seat is a physical seat inside a sector.  Seats are read-only
// projections of catalog data.
//
// Fields:
//  RowLabel    – row designation, e.g. "A".
//  SeatNumber  – position within the row; sorting is numeric.
//  ColumnIndex – sector column hint from the catalog (display only).
//  Status      – available or occupied.
type Seat struct {
    RowLabel    string
    SeatNumber  int
    ColumnIndex int
    Status      SeatStatus
}

// Key returns the identity of the seat.
func (s Seat) Key() SeatKey { return SeatKey{RowLabel: s.RowLabel, SeatNumber: s.SeatNumber} }

// Label renders the seat as row followed by number, e.g. "B3".
func (s Seat) Label() string { return s.RowLabel + strconv.Itoa(s.SeatNumber) }

// Occupied reports whether the seat can no longer be selected.
func (s Seat) Occupied() bool { return s.Status == SeatOccupied }

// Sector is a priced zone of a performance.  In seat-map mode it owns the
// seats it contains; every seat of a sector costs Price.
type Sector struct {
    ID       int64
    Code     string
    Name     string
    Price    Money
    Block    Block
    RowIndex int // display ordering hint, unrelated to seat row labels
    Seats    []Seat
}

// Ticket is a ticket type sold by quantity.  A nil QuantityAvailable means
// the catalog does not limit the quantity.
type Ticket struct {
    ID                int64
    Name              string
    Price             Money
    QuantityAvailable *int
    SalesEndDate      string
}

// Venue is where a performance takes place.
type Venue struct {
    ID      int64
    Name    string
    Address string
    City    string
    State   string
}

// Category groups events for filtering.
type Category struct {
    ID      int64
    Name    string
    IconSVG string
}

// Performance is one scheduled occurrence of an event.  SeatingEnabled
// selects which of Tickets or Sectors is the active selling mode; use Mode
// rather than reading the two slices directly.
type Performance struct {
    ID             int64
    StartTime      time.Time
    EndTime        time.Time
    Venue          Venue
    SeatingEnabled bool
    Tickets        []Ticket
    Sectors        []Sector
}

// Event is a catalog entry with one or more performances.
type Event struct {
    ID           int64
    Title        string
    Description  string
    Image        string
    Policy       string
    Categories   []Category
    Performances []Performance
}

// Pagination mirrors the paging envelope of catalog list responses.
type Pagination struct {
    Page       int
    PageSize   int
    Total      int
    TotalPages int
}

// EventPage is one page of events.
type EventPage struct {
    Events     []Event
    Pagination Pagination
}

// CategoryPage is one page of categories.
type CategoryPage struct {
    Categories []Category
    Pagination Pagination
}
