package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/ticket-storefront/internal/model"
)

func TestRegistryGetReturnsSameWorkspace(t *testing.T) {
	t.Parallel()
	r := NewRegistry(time.Hour)
	a := r.Get("guest:1")
	b := r.Get("guest:1")
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.Get("guest:2"))
	assert.Equal(t, 2, r.Len())
	r.Drop("guest:2")
	assert.Equal(t, 1, r.Len())
}

func TestWorkspaceBeginEnd(t *testing.T) {
	t.Parallel()
	w := NewRegistry(0).Get("u")
	assert.True(t, w.Begin(OpCheckout))
	assert.False(t, w.Begin(OpCheckout))
	assert.True(t, w.Begin(OpLogin))
	w.Do(func(w *Workspace) { assert.True(t, w.Busy(OpCheckout)) })
	w.End(OpCheckout)
	assert.True(t, w.Begin(OpCheckout))
}

func TestWorkspaceConcurrentMerges(t *testing.T) {
	t.Parallel()
	w := NewRegistry(0).Get("u")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Do(func(w *Workspace) {
				w.Cart.AddOrMerge(model.CartItem{EventID: 1, TicketID: 1, PerformanceID: 1, Price: 100, Quantity: 1})
			})
		}()
	}
	wg.Wait()
	w.Do(func(w *Workspace) {
		assert.Equal(t, 1, w.Cart.Len())
		assert.Equal(t, 50, w.Cart.Count())
		assert.Equal(t, model.Money(5000), w.Cart.Total())
	})
}

func TestRegistrySweep(t *testing.T) {
	t.Parallel()
	r := NewRegistry(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Get("old")
	busy := r.Get("busy")
	busy.Begin(OpCheckout)
	now = now.Add(2 * time.Minute)
	r.Get("fresh")

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 0, NewRegistry(0).Sweep())
}

func TestRegistryAdopt(t *testing.T) {
	t.Parallel()
	r := NewRegistry(0)
	guest := r.Get("guest:x")
	guest.Do(func(w *Workspace) {
		w.Cart.AddOrMerge(model.CartItem{EventID: 1, TicketID: 2, PerformanceID: 3, Price: 100, Quantity: 2})
	})

	assert.True(t, r.Adopt("guest:x", "user:7"))
	assert.Same(t, guest, r.Get("user:7"))
	assert.False(t, r.Adopt("guest:x", "user:7"), "source gone")

	other := r.Get("guest:y")
	other.Do(func(w *Workspace) {
		w.Cart.AddOrMerge(model.CartItem{EventID: 9, TicketID: 9, PerformanceID: 9, Price: 1, Quantity: 1})
	})
	assert.False(t, r.Adopt("guest:y", "user:7"), "target cart not empty")
}
