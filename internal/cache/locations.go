// internal/cache/locations.go
package cache

import (
	"context"
	"sync"
	"time"

	"maxtravel_booking/internal/adapters/observability"
	"maxtravel_booking/internal/domain"
)

// Store is the in-process snapshot store. The snapshot pointer is replaced
// wholesale under the mutex, so readers see either the old or the new complete
// state, never a mix.
type Store struct {
	mu   sync.RWMutex
	snap *domain.Snapshot
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Get returns the snapshot only while it is fresh. A stale snapshot is treated
// as absent; empty cached lists are still a hit.
func (s *Store) Get(ctx context.Context) (*domain.Snapshot, bool) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if !snap.Fresh(s.now()) {
		observability.ObserveCache("locations", "miss")
		return nil, false
	}
	observability.ObserveCache("locations", "hit")
	return snap, true
}

// Set replaces the snapshot with both lists and stamps the current time.
func (s *Store) Set(ctx context.Context, departures, arrivals []domain.Location) {
	snap := &domain.Snapshot{
		Departures: departures,
		Arrivals:   arrivals,
		FetchedAt:  s.now(),
	}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	observability.ObserveCache("locations", "set")
}

// Clear discards the snapshot unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	observability.ObserveCache("locations", "del")
}
