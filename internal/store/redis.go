package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crickd/insights-engine/internal/model"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis read-through
// cache. Writes go to the primary store and invalidate the cache; reads
// check Redis first then fall back to the primary. The delivery ledger is
// append-only, so appending invalidates rather than patching the cached
// list.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Write-through (write to primary, invalidate cache) ---

func (s *CachedStore) CreateMatch(ctx context.Context, m *model.Match) error {
	if err := s.primary.CreateMatch(ctx, m); err != nil {
		return err
	}
	s.cacheJSON(ctx, matchKey(m.ID), m)
	return nil
}

func (s *CachedStore) SetMatchStatus(ctx context.Context, id, status string) error {
	if err := s.primary.SetMatchStatus(ctx, id, status); err != nil {
		return err
	}
	// Invalidate; next read re-populates.
	s.rdb.Del(ctx, matchKey(id))
	return nil
}

func (s *CachedStore) AppendDeliveries(ctx context.Context, matchID string, deliveries []model.Delivery) error {
	if err := s.primary.AppendDeliveries(ctx, matchID, deliveries); err != nil {
		return err
	}
	s.rdb.Del(ctx, ledgerKey(matchID))
	return nil
}

func (s *CachedStore) PutSnapshot(ctx context.Context, matchID string, snap *model.MatchSnapshot) error {
	if err := s.primary.PutSnapshot(ctx, matchID, snap); err != nil {
		return err
	}
	s.cacheJSON(ctx, snapshotKey(matchID), snap)
	return nil
}

// --- Read-through (check cache first) ---

func (s *CachedStore) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	data, err := s.rdb.Get(ctx, matchKey(id)).Bytes()
	if err == nil {
		var m model.Match
		if json.Unmarshal(data, &m) == nil {
			return &m, nil
		}
	}

	m, err := s.primary.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheJSON(ctx, matchKey(id), m)
	return m, nil
}

func (s *CachedStore) GetDeliveries(ctx context.Context, matchID string) ([]model.Delivery, error) {
	data, err := s.rdb.Get(ctx, ledgerKey(matchID)).Bytes()
	if err == nil {
		var deliveries []model.Delivery
		if json.Unmarshal(data, &deliveries) == nil {
			return deliveries, nil
		}
	}

	deliveries, err := s.primary.GetDeliveries(ctx, matchID)
	if err != nil {
		return nil, err
	}
	s.cacheJSON(ctx, ledgerKey(matchID), deliveries)
	return deliveries, nil
}

func (s *CachedStore) GetSnapshot(ctx context.Context, matchID string) (*model.MatchSnapshot, error) {
	data, err := s.rdb.Get(ctx, snapshotKey(matchID)).Bytes()
	if err == nil {
		var snap model.MatchSnapshot
		if json.Unmarshal(data, &snap) == nil {
			return &snap, nil
		}
	}

	snap, err := s.primary.GetSnapshot(ctx, matchID)
	if err != nil {
		return nil, err
	}
	s.cacheJSON(ctx, snapshotKey(matchID), snap)
	return snap, nil
}

// --- Passthrough (not cached) ---

func (s *CachedStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	return s.primary.ListMatches(ctx)
}

func (s *CachedStore) CountDeliveries(ctx context.Context, matchID string) (int, error) {
	return s.primary.CountDeliveries(ctx, matchID)
}

// --- Cache helpers ---

func (s *CachedStore) cacheJSON(ctx context.Context, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, data, s.ttl)
	}
}

func matchKey(id string) string       { return fmt.Sprintf("match:%s", id) }
func ledgerKey(id string) string      { return fmt.Sprintf("ledger:%s", id) }
func snapshotKey(id string) string    { return fmt.Sprintf("snapshot:%s", id) }
func insightsKey(id string, count int, version int64) string {
	return fmt.Sprintf("insights:%s:%d:%d", id, count, version)
}
