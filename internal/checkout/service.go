// Package checkout records a purchase for the items of a shopper's cart.
// Clearing the cart afterwards is the caller's job, done under the same
// workspace that produced the items.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/cart"
	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/queue"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrTotalMismatch   = errors.New("total does not match items")
	ErrInvalidCustomer = errors.New("invalid customer data")
)

// PurchaseStore persists purchases and lists a user's history.
type PurchaseStore interface {
	Create(ctx context.Context, p model.Purchase) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Purchase, error)
}

// EventPublisher announces recorded purchases.  It may be nil.
type EventPublisher interface {
	PublishPurchaseConfirmed(ctx context.Context, ev queue.PurchaseConfirmedEvent) error
}

type Service struct {
	store PurchaseStore
	pub   EventPublisher
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

func NewService(store PurchaseStore, pub EventPublisher, log *zap.Logger) *Service {
	return &Service{
		store: store,
		pub:   pub,
		log:   log.Named("checkout"),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// Submit validates and records a purchase of items for userID.  total must
// equal the sum of the lines.  The stored customer is masked.  A failing
// event publish is logged and does not fail the purchase.
func (s *Service) Submit(ctx context.Context, userID uint64, items []model.CartItem, total model.Money, c model.Customer) (model.Purchase, error) {
	if len(items) == 0 {
		return model.Purchase{}, ErrEmptyCart
	}
	if sum := cart.Sum(items); sum != total {
		return model.Purchase{}, fmt.Errorf("%w: items sum to %s, got %s", ErrTotalMismatch, sum, total)
	}
	if err := validateCustomer(c); err != nil {
		return model.Purchase{}, err
	}

	p := model.Purchase{
		ID:       s.newID(),
		UserID:   userID,
		Items:    append([]model.CartItem(nil), items...),
		Total:    total,
		Date:     s.now(),
		Customer: c.Masked(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return model.Purchase{}, fmt.Errorf("store purchase: %w", err)
	}
	s.log.Info("purchase recorded",
		zap.String("purchase_id", p.ID), zap.Uint64("user_id", userID),
		zap.Int("lines", len(p.Items)), zap.Int64("total_cents", total.Cents()))

	if s.pub != nil {
		if err := s.pub.PublishPurchaseConfirmed(ctx, queue.NewPurchaseConfirmed(p)); err != nil {
			s.log.Warn("purchase event not published", zap.String("purchase_id", p.ID), zap.Error(err))
		}
	}
	return p, nil
}

// History returns the user's purchases, newest first.
func (s *Service) History(ctx context.Context, userID uint64) ([]model.Purchase, error) {
	ps, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return ps, nil
}

func validateCustomer(c model.Customer) error {
	var bad []string
	if strings.TrimSpace(c.Name) == "" {
		bad = append(bad, "name")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		bad = append(bad, "email")
	}
	if strings.TrimSpace(c.CardNumber) == "" {
		bad = append(bad, "card_number")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCustomer, strings.Join(bad, ", "))
	}
	return nil
}
