package flow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/goby-auth/internal/metrics"
)

// DefaultTTL is how long an instance survives without being touched.
const DefaultTTL = 30 * time.Minute

// DefaultMaxInstances bounds a registry when no limit is given.
const DefaultMaxInstances = 10000

// Instance is anything the registry can hold.
type Instance interface {
	Close()
}

type entry[T Instance] struct {
	flow     T
	lastSeen time.Time
}

// Registry keeps the live flow instances of one kind, keyed by an opaque id
// that the page carries in a hidden field. Instances idle for longer than
// the TTL are closed and dropped. Once the registry is full, adding an
// instance evicts the one touched least recently.
type Registry[T Instance] struct {
	name string
	ttl  time.Duration
	max  int
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]*entry[T]
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	max int
}

// WithMaxInstances caps how many instances the registry holds at once.
func WithMaxInstances(n int) RegistryOption {
	return func(o *registryOptions) {
		if n > 0 {
			o.max = n
		}
	}
}

// NewRegistry creates a registry. name is used as the metrics flow label.
func NewRegistry[T Instance](name string, ttl time.Duration, opts ...RegistryOption) *Registry[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	o := registryOptions{max: DefaultMaxInstances}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[T]{
		name:    name,
		ttl:     ttl,
		max:     o.max,
		now:     time.Now,
		entries: make(map[string]*entry[T]),
	}
}

// Add stores f and returns its id. When the registry is full the least
// recently touched instance is closed and dropped first.
func (r *Registry[T]) Add(f T) string {
	id := uuid.NewString()

	var evicted []T
	r.mu.Lock()
	for len(r.entries) >= r.max {
		victim, ok := r.oldestLocked()
		if !ok {
			break
		}
		evicted = append(evicted, r.entries[victim].flow)
		delete(r.entries, victim)
	}
	r.entries[id] = &entry[T]{flow: f, lastSeen: r.now()}
	n := len(r.entries)
	r.mu.Unlock()

	for _, e := range evicted {
		e.Close()
	}
	metrics.SetInstances(r.name, n)
	return id
}

func (r *Registry[T]) oldestLocked() (string, bool) {
	var (
		oldestID string
		oldest   time.Time
		found    bool
	)
	for id, e := range r.entries {
		if !found || e.lastSeen.Before(oldest) {
			oldestID, oldest, found = id, e.lastSeen, true
		}
	}
	return oldestID, found
}

// Get returns the instance for id and refreshes its idle time. Expired
// instances are closed and reported as missing.
func (r *Registry[T]) Get(id string) (T, bool) {
	var zero T

	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return zero, false
	}
	now := r.now()
	if now.Sub(e.lastSeen) > r.ttl {
		delete(r.entries, id)
		n := len(r.entries)
		r.mu.Unlock()

		e.flow.Close()
		metrics.SetInstances(r.name, n)
		return zero, false
	}
	e.lastSeen = now
	r.mu.Unlock()
	return e.flow, true
}

// Remove closes and drops the instance for id.
func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	n := len(r.entries)
	r.mu.Unlock()

	if ok {
		e.flow.Close()
		metrics.SetInstances(r.name, n)
	}
}

// Len returns the number of stored instances.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep closes and drops every instance idle since before now-TTL and
// returns how many were removed.
func (r *Registry[T]) Sweep(now time.Time) int {
	var expired []T

	r.mu.Lock()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			expired = append(expired, e.flow)
			delete(r.entries, id)
		}
	}
	n := len(r.entries)
	r.mu.Unlock()

	for _, f := range expired {
		f.Close()
	}
	if len(expired) > 0 {
		metrics.SetInstances(r.name, n)
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Close closes every instance and empties the registry.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry[T])
	r.mu.Unlock()

	for _, e := range entries {
		e.flow.Close()
	}
	metrics.SetInstances(r.name, 0)
}
