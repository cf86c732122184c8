// Package session keeps one shopping workspace per shopper: the cart plus
// the selection state of the event page they are looking at.  Each
// workspace is owned by a single shopper and every operation on it runs
// under the workspace lock, so the cart's items and total are always read
// and written together.
package session

import (
	"sync"
	"time"

	"github.com/iliyamo/ticket-storefront/internal/cart"
	"github.com/iliyamo/ticket-storefront/internal/selection"
)

// Operations guarded against re-entrancy while a collaborator call is
// outstanding.
const (
	OpCheckout = "checkout"
	OpLogin    = "login"
)

// Workspace is the per-shopper state.  Access fields only inside Do.
type Workspace struct {
	mu       sync.Mutex
	Cart     *cart.Store
	View     *selection.View // nil until an event page is opened
	inflight map[string]bool
	lastSeen time.Time
}

// Do runs fn with exclusive access to the workspace.
func (w *Workspace) Do(fn func(w *Workspace)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w)
}

// Begin marks op as in flight.  It returns false when op is already
// running, in which case the caller must not start it again.
func (w *Workspace) Begin(op string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[op] {
		return false
	}
	w.inflight[op] = true
	return true
}

// End clears the in-flight mark set by Begin.
func (w *Workspace) End(op string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, op)
}

// Busy reports whether op is in flight.  Call it inside Do.
func (w *Workspace) Busy(op string) bool { return w.inflight[op] }

// Registry maps shopper keys to workspaces.  Workspaces idle for longer
// than the TTL are dropped by Sweep.
type Registry struct {
	mu     sync.Mutex
	spaces map[string]*Workspace
	ttl    time.Duration
	now    func() time.Time
}

// NewRegistry returns an empty registry.  A non-positive ttl disables
// expiry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{spaces: make(map[string]*Workspace), ttl: ttl, now: time.Now}
}

// Get returns the workspace for key, creating an empty one on first use.
func (r *Registry) Get(key string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.spaces[key]
	if !ok {
		w = &Workspace{Cart: cart.New(), inflight: make(map[string]bool)}
		r.spaces[key] = w
	}
	w.lastSeen = r.now()
	return w
}

// Adopt moves the workspace stored under from to key to, unless to already
// has a workspace with a non-empty cart.  It is used when a guest logs in.
func (r *Registry) Adopt(from, to string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.spaces[from]
	if !ok || from == to {
		return false
	}
	if dst, ok := r.spaces[to]; ok {
		empty := true
		dst.Do(func(w *Workspace) { empty = w.Cart.Len() == 0 })
		if !empty {
			return false
		}
	}
	r.spaces[to] = src
	delete(r.spaces, from)
	return true
}

// Drop forgets the workspace for key.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spaces, key)
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

// Sweep removes idle workspaces and returns how many were removed.
// Workspaces with an operation in flight are kept.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	n := 0
	for key, w := range r.spaces {
		w.mu.Lock()
		idle := w.lastSeen.Before(cutoff) && len(w.inflight) == 0
		w.mu.Unlock()
		if idle {
			delete(r.spaces, key)
			n++
		}
	}
	return n
}
