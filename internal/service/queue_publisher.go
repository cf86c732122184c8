// Package queue_publisher publishes domain events to RabbitMQ.  Failures are
// logged and returned so callers can carry on without the event.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    q "github.com/iliyamo/ticket-storefront/internal/queue"
)

// Publisher dials the broker per publish.  Purchases are rare enough that
// a pooled connection is not worth the reconnect handling.
type Publisher struct {
    url string
    log *zap.Logger
}

// New returns a publisher for the broker at url.
func New(url string, log *zap.Logger) *Publisher {
    return &Publisher{url: url, log: log.Named("rabbitmq")}
}

// PublishPurchaseConfirmed sends ev to the purchase.confirmed queue as a
// persistent JSON message.
func (p *Publisher) PublishPurchaseConfirmed(ctx context.Context, ev q.PurchaseConfirmedEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        p.log.Warn("dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.log.Warn("channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // durable, not auto-deleted, not exclusive
    if _, err := ch.QueueDeclare(q.PurchaseQueueName, true, false, false, false, nil); err != nil {
        p.log.Warn("queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }
    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.PurchaseID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.PurchaseQueueName, false, false, pub); err != nil {
        p.log.Warn("publish failed", zap.Error(err), zap.String("purchase_id", ev.PurchaseID))
        return err
    }
    p.log.Debug("purchase event published", zap.String("purchase_id", ev.PurchaseID))
    return nil
}
