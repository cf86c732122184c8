package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/queue"
)

type memStore struct {
	saved []model.Purchase
	err   error
}

func (m *memStore) Create(_ context.Context, p model.Purchase) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, p)
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID uint64) ([]model.Purchase, error) {
	var out []model.Purchase
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].UserID == userID {
			out = append(out, m.saved[i])
		}
	}
	return out, nil
}

type fakePub struct {
	events []queue.PurchaseConfirmedEvent
	err    error
}

func (f *fakePub) PublishPurchaseConfirmed(_ context.Context, ev queue.PurchaseConfirmedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

var buyer = model.Customer{
	Name:       "Ana",
	Email:      "ana@example.com",
	CardNumber: "4111 1111 1111 1234",
	CardCVC:    "999",
}

func items() []model.CartItem {
	return []model.CartItem{
		{EventID: 1, TicketID: 10, PerformanceID: 5, Price: 5000, Quantity: 3},
		{EventID: 1, TicketID: 20, PerformanceID: 6, Price: 8000, Quantity: 1, SelectedSeats: []string{"A1"}},
	}
}

func newTestService(store PurchaseStore, pub EventPublisher) *Service {
	s := NewService(store, pub, zap.NewNop())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "p-1" }
	return s
}

func TestSubmitRecordsMaskedPurchase(t *testing.T) {
	t.Parallel()
	store, pub := &memStore{}, &fakePub{}
	s := newTestService(store, pub)

	p, err := s.Submit(context.Background(), 7, items(), 23000, buyer)
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "**** 1234", p.Customer.CardNumber)
	assert.Empty(t, p.Customer.CardCVC)
	require.Len(t, store.saved, 1)
	assert.Equal(t, p, store.saved[0])

	require.Len(t, pub.events, 1)
	assert.Equal(t, int64(23000), pub.events[0].TotalCents)
	assert.Equal(t, "2026-03-01T10:00:00Z", pub.events[0].ConfirmedAt)

	hist, err := s.History(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestSubmitRejects(t *testing.T) {
	t.Parallel()
	store := &memStore{}
	s := newTestService(store, nil)
	ctx := context.Background()

	_, err := s.Submit(ctx, 7, nil, 0, buyer)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = s.Submit(ctx, 7, items(), 100, buyer)
	assert.ErrorIs(t, err, ErrTotalMismatch)

	bad := buyer
	bad.Email = "nope"
	_, err = s.Submit(ctx, 7, items(), 23000, bad)
	assert.ErrorIs(t, err, ErrInvalidCustomer)
	assert.Contains(t, err.Error(), "email")

	assert.Empty(t, store.saved)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	t.Parallel()
	s := newTestService(&memStore{}, &fakePub{err: errors.New("broker down")})
	_, err := s.Submit(context.Background(), 7, items(), 23000, buyer)
	assert.NoError(t, err)
}

func TestSubmitStoreFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("db down")
	s := newTestService(&memStore{err: boom}, nil)
	_, err := s.Submit(context.Background(), 7, items(), 23000, buyer)
	assert.ErrorIs(t, err, boom)
}
