// Package queue defines the purchase event exchanged over RabbitMQ and the
// consumer that records it.
package queue

import (
    "time"

    "github.com/iliyamo/ticket-storefront/internal/model"
)

// PurchaseQueueName is the durable queue purchase events are routed to.
const PurchaseQueueName = "purchase.confirmed"

// PurchaseConfirmedEvent is published once a checkout has been recorded.
// It carries enough to log or notify without reading the database.
type PurchaseConfirmedEvent struct {
    PurchaseID  string         `json:"purchase_id"`
    UserID      uint64         `json:"user_id"`
    Email       string         `json:"email"`
    Lines       []PurchaseLine `json:"lines"`
    TotalCents  int64          `json:"total_cents"`
    ConfirmedAt string         `json:"confirmed_at"`
}

// PurchaseLine is one cart line of the event.
type PurchaseLine struct {
    EventID       int64    `json:"event_id"`
    EventTitle    string   `json:"event_title"`
    PerformanceID int64    `json:"performance_id"`
    TicketID      int64    `json:"ticket_id"`
    TicketName    string   `json:"ticket_name"`
    Quantity      int      `json:"quantity"`
    PriceCents    int64    `json:"price_cents"`
    Seats         []string `json:"seats,omitempty"`
}

// NewPurchaseConfirmed builds the event for a recorded purchase.
func NewPurchaseConfirmed(p model.Purchase) PurchaseConfirmedEvent {
    ev := PurchaseConfirmedEvent{
        PurchaseID:  p.ID,
        UserID:      p.UserID,
        Email:       p.Customer.Email,
        TotalCents:  p.Total.Cents(),
        ConfirmedAt: p.Date.UTC().Format(time.RFC3339),
    }
    for _, it := range p.Items {
        ev.Lines = append(ev.Lines, PurchaseLine{
            EventID:       it.EventID,
            EventTitle:    it.EventTitle,
            PerformanceID: it.PerformanceID,
            TicketID:      it.TicketID,
            TicketName:    it.TicketName,
            Quantity:      it.Quantity,
            PriceCents:    it.Price.Cents(),
            Seats:         it.SelectedSeats,
        })
    }
    return ev
}
