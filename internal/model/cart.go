package model

import (
    "fmt"
    "strconv"
    "strings"
)

// CartKey is the composite identity of a cart line: event, ticket type and
// performance.  Two different seats of the same sector share a key and
// therefore collapse into one line whose quantity grows.
type CartKey struct {
    EventID       int64
    TicketID      int64
    PerformanceID int64
}

// String renders the key as "<eventId>-<ticketId>-<performanceId>", the
// form used in URLs.
func (k CartKey) String() string {
    return fmt.Sprintf("%d-%d-%d", k.EventID, k.TicketID, k.PerformanceID)
}

// ParseCartKey parses the form produced by CartKey.String.  Malformed input
// yields ok=false; callers treat that as a key that matches nothing.
func ParseCartKey(s string) (CartKey, bool) {
    parts := strings.Split(strings.TrimSpace(s), "-")
    if len(parts) != 3 {
        return CartKey{}, false
    }
    var ids [3]int64
    for i, p := range parts {
        n, err := strconv.ParseInt(p, 10, 64)
        if err != nil {
            return CartKey{}, false
        }
        ids[i] = n
    }
    return CartKey{EventID: ids[0], TicketID: ids[1], PerformanceID: ids[2]}, true
}

// CartItem is a confirmed selection in the cart.
//
// Fields:
//  EventID, EventTitle        – event the tickets belong to.
//  PerformanceID              – performance (date) of the event.
//  TicketID, TicketName       – ticket type, or the sector id in seat-map mode.
//  Price                      – unit price.
//  Quantity                   – number of tickets, at least 1.
//  Venue, Date                – display fields captured at add time.
//  SelectedSeats              – seat labels merged into this line (seat-map mode only).
type CartItem struct {
    EventID       int64
    EventTitle    string
    PerformanceID int64
    TicketID      int64
    TicketName    string
    Price         Money
    Quantity      int
    Venue         string
    Date          string
    SelectedSeats []string
}

// Key returns the composite cart key of the item.
func (i CartItem) Key() CartKey {
    return CartKey{EventID: i.EventID, TicketID: i.TicketID, PerformanceID: i.PerformanceID}
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() Money { return i.Price.Times(i.Quantity) }
