package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"maxtravel_booking/internal/adapters/observability"
	"maxtravel_booking/internal/domain"
)

const snapshotKey = "locations:snapshot"

// SnapshotStore keeps the location snapshot in Redis so multiple storefront
// instances share one fetch. Same contract as the in-process store: the whole
// snapshot is written and read atomically under a single key.
type SnapshotStore struct {
	c   *redis.Client
	now func() time.Time
}

func New(addr, pass string, db int) *SnapshotStore {
	return &SnapshotStore{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		now: time.Now,
	}
}

func (s *SnapshotStore) Get(ctx context.Context) (*domain.Snapshot, bool) {
	v, err := s.c.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("snapshot read failed")
		observability.ObserveCache("redis", "miss")
		return nil, false
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(v, &snap); err != nil {
		log.Warn().Err(err).Msg("snapshot decode failed")
		observability.ObserveCache("redis", "miss")
		return nil, false
	}
	// the key TTL should expire first, but the stamp is authoritative
	if !snap.Fresh(s.now()) {
		observability.ObserveCache("redis", "miss")
		return nil, false
	}
	observability.ObserveCache("redis", "hit")
	return &snap, true
}

func (s *SnapshotStore) Set(ctx context.Context, departures, arrivals []domain.Location) {
	snap := domain.Snapshot{
		Departures: departures,
		Arrivals:   arrivals,
		FetchedAt:  s.now(),
	}
	b, _ := json.Marshal(snap)
	if err := s.c.Set(ctx, snapshotKey, b, domain.SnapshotTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("snapshot write failed")
		return
	}
	observability.ObserveCache("redis", "set")
}

func (s *SnapshotStore) Clear(ctx context.Context) {
	if err := s.c.Del(ctx, snapshotKey).Err(); err != nil {
		log.Warn().Err(err).Msg("snapshot delete failed")
		return
	}
	observability.ObserveCache("redis", "del")
}
