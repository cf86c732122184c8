package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    "github.com/iliyamo/ticket-storefront/internal/model"
)

// StartPurchaseConsumer dials url, declares the purchase queue and appends
// one line per delivery to logs/purchases.log.  It reconnects with
// exponential backoff and returns only when ctx is cancelled.
func StartPurchaseConsumer(ctx context.Context, url string, log *zap.Logger) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return ctx.Err()
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Warn("purchase-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, log)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Warn("purchase-consumer: loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, log *zap.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Warn("purchase-consumer: set QoS failed", zap.Error(err))
    }
    if _, err := ch.QueueDeclare(PurchaseQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(PurchaseQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := appendPurchaseLog(d.Body); err != nil {
                log.Error("purchase-consumer: handle message failed", zap.Error(err))
                _ = d.Nack(false, false) // drop, requeueing a bad body would loop
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func appendPurchaseLog(body []byte) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(filepath.Join("logs", "purchases.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    return WritePurchaseLine(f, body)
}

// WritePurchaseLine decodes a PurchaseConfirmedEvent and writes it to w as
// a single human readable line.
func WritePurchaseLine(w io.Writer, body []byte) error {
    var ev PurchaseConfirmedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    lines := make([]string, 0, len(ev.Lines))
    for _, l := range ev.Lines {
        s := fmt.Sprintf("%dx %s @ %s", l.Quantity, l.TicketName, model.Money(l.PriceCents))
        if len(l.Seats) > 0 {
            s += " [" + strings.Join(l.Seats, ",") + "]"
        }
        lines = append(lines, s)
    }
    _, err := fmt.Fprintf(w, "[%s] Purchase confirmed | purchase_id=%s | user_id=%d | email=%q | total=%s | lines=%s\n",
        ev.ConfirmedAt, ev.PurchaseID, ev.UserID, ev.Email, model.Money(ev.TotalCents), strings.Join(lines, "; "))
    if err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
