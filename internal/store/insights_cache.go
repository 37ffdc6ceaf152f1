package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crickd/insights-engine/internal/model"
)

// InsightsCache caches computed insight bundles in Redis, keyed by
// (match id, delivery count, snapshot version). Recomputation is fully
// idempotent — no randomness, no wall clock — so a hit under that key is
// always current. A nil *InsightsCache is a no-op, letting callers skip
// the "is caching enabled" checks.
type InsightsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewInsightsCache creates a Redis-backed insights cache.
func NewInsightsCache(rdb *redis.Client, ttl time.Duration) *InsightsCache {
	return &InsightsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached bundle for the key, or ok=false on a miss.
func (c *InsightsCache) Get(ctx context.Context, matchID string, deliveryCount int, version int64) (*model.Insights, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, insightsKey(matchID, deliveryCount, version)).Bytes()
	if err != nil {
		return nil, false
	}
	var ins model.Insights
	if json.Unmarshal(data, &ins) != nil {
		return nil, false
	}
	return &ins, true
}

// Put stores a computed bundle under its idempotency key.
func (c *InsightsCache) Put(ctx context.Context, ins *model.Insights) {
	if c == nil {
		return
	}
	if data, err := json.Marshal(ins); err == nil {
		c.rdb.Set(ctx, insightsKey(ins.MatchID, ins.DeliveryCount, ins.SnapshotVersion), data, c.ttl)
	}
}
