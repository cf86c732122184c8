package repository

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/ticket-storefront/internal/model"
)

// PurchaseRepo stores checkout records in purchases and purchase_items.
// Only the masked customer is ever written; there is no CVC column.
type PurchaseRepo struct {
    db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Create inserts the purchase header and its lines in one transaction.
func (r *PurchaseRepo) Create(ctx context.Context, p model.Purchase) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    const q = `INSERT INTO purchases
        (id, user_id, total_cents, customer_name, customer_email, customer_phone, customer_document,
         card_masked, card_name, card_expiry, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    c := p.Customer
    if _, err := tx.ExecContext(ctx, q, p.ID, p.UserID, p.Total.Cents(), c.Name, c.Email, c.Phone, c.Document,
        c.CardNumber, c.CardName, c.CardExpiry, p.Date.UTC()); err != nil {
        if isDuplicate(err) {
            return fmt.Errorf("purchase %s: %w", p.ID, ErrConflict)
        }
        return err
    }
    if err := createItemsBulkTx(ctx, tx, p.ID, p.Items); err != nil {
        return err
    }
    return tx.Commit()
}

// createItemsBulkTx inserts all lines of a purchase in one statement.
func createItemsBulkTx(ctx context.Context, tx *sql.Tx, purchaseID string, items []model.CartItem) error {
    if len(items) == 0 {
        return nil
    }
    var b strings.Builder
    b.WriteString(`INSERT INTO purchase_items (purchase_id, line_no, event_id, event_title, performance_id,
        ticket_id, ticket_name, price_cents, quantity, venue, date_label, seats) VALUES `)
    args := make([]any, 0, len(items)*12)
    for i, it := range items {
        if i > 0 {
            b.WriteString(",")
        }
        b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
        args = append(args, purchaseID, i, it.EventID, it.EventTitle, it.PerformanceID,
            it.TicketID, it.TicketName, it.Price.Cents(), it.Quantity, it.Venue, it.Date, joinSeats(it.SelectedSeats))
    }
    _, err := tx.ExecContext(ctx, b.String(), args...)
    return err
}

// ListByUser returns the user's purchases newest first, lines in cart
// order.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Purchase, error) {
    const q = `SELECT p.id, p.total_cents, p.customer_name, p.customer_email, p.customer_phone,
            p.customer_document, p.card_masked, p.card_name, p.card_expiry, p.created_at,
            i.event_id, i.event_title, i.performance_id, i.ticket_id, i.ticket_name,
            i.price_cents, i.quantity, i.venue, i.date_label, i.seats
        FROM purchases p
        JOIN purchase_items i ON i.purchase_id = p.id
        WHERE p.user_id = ?
        ORDER BY p.created_at DESC, p.id, i.line_no`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Purchase
    for rows.Next() {
        var (
            p         model.Purchase
            it        model.CartItem
            total     int64
            price     int64
            seats     string
            createdAt time.Time
        )
        c := &p.Customer
        if err := rows.Scan(&p.ID, &total, &c.Name, &c.Email, &c.Phone, &c.Document, &c.CardNumber,
            &c.CardName, &c.CardExpiry, &createdAt,
            &it.EventID, &it.EventTitle, &it.PerformanceID, &it.TicketID, &it.TicketName,
            &price, &it.Quantity, &it.Venue, &it.Date, &seats); err != nil {
            return nil, err
        }
        it.Price = model.Money(price)
        it.SelectedSeats = splitSeats(seats)
        if n := len(out); n > 0 && out[n-1].ID == p.ID {
            out[n-1].Items = append(out[n-1].Items, it)
            continue
        }
        p.UserID = userID
        p.Total = model.Money(total)
        p.Date = createdAt.UTC()
        p.Items = []model.CartItem{it}
        out = append(out, p)
    }
    return out, rows.Err()
}

// Seat labels never contain commas ("A1", "B12").
func joinSeats(s []string) string { return strings.Join(s, ",") }

func splitSeats(s string) []string {
    if s == "" {
        return nil
    }
    return strings.Split(s, ",")
}
