package cache

import (
	"context"
	"sync"
	"time"

	finance "github.com/backoffice/backend/internal/application/finance"
)

// lockEntry represents a held lock with expiration
type lockEntry struct {
	expiresAt time.Time
}

// InMemorySweepGuard implements the sweep guard with an in-memory map.
// Suitable for single-instance deployments and testing; it cannot protect
// against a second process.
type InMemorySweepGuard struct {
	mu    sync.Mutex
	locks map[string]lockEntry
}

// NewInMemorySweepGuard creates a new in-memory sweep guard
func NewInMemorySweepGuard() *InMemorySweepGuard {
	return &InMemorySweepGuard{
		locks: make(map[string]lockEntry),
	}
}

// TryAcquire attempts to take the lock for the given key. Expired locks are
// treated as free.
func (g *InMemorySweepGuard) TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, held := g.locks[key]; held && time.Now().Before(e.expiresAt) {
		return false, nil
	}

	g.locks[key] = lockEntry{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// Release drops the lock for the given key
func (g *InMemorySweepGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.locks, key)
	return nil
}

// Ensure InMemorySweepGuard implements SweepGuard
var _ finance.SweepGuard = (*InMemorySweepGuard)(nil)
