package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultIdleTTL is how long a cart session survives without being looked up.
const DefaultIdleTTL = 24 * time.Hour

type session struct {
	cart    *Cart
	touched time.Time
}

// Registry maps cart session ids to carts. Sessions that go unused for
// longer than the idle TTL are dropped by Sweep.
type Registry struct {
	mu      sync.Mutex
	carts   map[string]*session
	idleTTL time.Duration
	now     func() time.Time
}

type RegistryOption func(*Registry)

// WithIdleTTL sets the idle lifetime of a session. Non-positive values keep
// the default.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.idleTTL = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		carts:   make(map[string]*session),
		idleTTL: DefaultIdleTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create opens a new empty cart under a fresh session id.
func (r *Registry) Create() (string, *Cart) {
	id := uuid.NewString()
	c := New()

	r.mu.Lock()
	r.carts[id] = &session{cart: c, touched: r.now()}
	r.mu.Unlock()

	return id, c
}

// Get returns the cart and marks the session as used.
func (r *Registry) Get(id string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.carts[id]
	if !ok {
		return nil, false
	}
	s.touched = r.now()
	return s.cart, true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	evicted := 0
	for id, s := range r.carts {
		if s.touched.Before(cutoff) {
			delete(r.carts, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps every interval until ctx is done. A non-positive interval
// disables sweeping.
func (r *Registry) Run(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("evicted idle carts", zap.Int("count", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
