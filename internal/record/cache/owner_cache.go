// Package cache provides a Redis-backed read-through cache for record
// ownership lookups. Ownership is immutable after creation, so entries are
// only invalidated when a record is deleted.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var ownerLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "revo_record_owner_cache_lookups_total",
	Help: "Owner cache lookups by result",
}, []string{"result"}) // result: "hit", "miss", "error"

const ownerKeyPrefix = "record:owner:"

// OwnerCache caches record-id to owner-id mappings in Redis. A cache error
// degrades to a miss; the guard always has the store as source of truth.
type OwnerCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewOwnerCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *OwnerCache {
	return &OwnerCache{client: client, ttl: ttl, log: log}
}

func (c *OwnerCache) Get(ctx context.Context, recordID string) (string, bool) {
	ownerID, err := c.client.Get(ctx, ownerKeyPrefix+recordID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			ownerLookups.WithLabelValues("miss").Inc()
		} else {
			ownerLookups.WithLabelValues("error").Inc()
			c.log.WarnContext(ctx, "owner cache get failed", "record_id", recordID, "error", err)
		}
		return "", false
	}
	ownerLookups.WithLabelValues("hit").Inc()
	return ownerID, true
}

func (c *OwnerCache) Set(ctx context.Context, recordID, ownerID string) {
	if err := c.client.Set(ctx, ownerKeyPrefix+recordID, ownerID, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "owner cache set failed", "record_id", recordID, "error", err)
	}
}

func (c *OwnerCache) Invalidate(ctx context.Context, recordID string) {
	if err := c.client.Del(ctx, ownerKeyPrefix+recordID).Err(); err != nil {
		c.log.WarnContext(ctx, "owner cache invalidate failed", "record_id", recordID, "error", err)
	}
}
