package usecases

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/smokemap/smokemap/internal/core/domain"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/pkg/metrics"
)

const (
	cacheKeySpots     = "smokemap:spots"
	cacheKeyTimestamp = "smokemap:spots:ts"
)

// CacheManager persists the aggregated collection with a timestamp and
// enforces the TTL. A cache entry is either entirely present and valid or
// treated as absent; nothing partial ever reaches callers.
type CacheManager struct {
	store    ports.KVStore
	ttl      time.Duration
	maxSpots int
	now      func() time.Time
}

func NewCacheManager(store ports.KVStore, ttl time.Duration, maxSpots int) *CacheManager {
	return &CacheManager{store: store, ttl: ttl, maxSpots: maxSpots, now: time.Now}
}

// WithClock overrides the time source. Used by tests to drive TTL expiry.
func (c *CacheManager) WithClock(now func() time.Time) *CacheManager {
	c.now = now
	return c
}

// Load returns the cached collection and its save time. A missing timestamp,
// unreadable payload, or expired entry reads as absent; expired or corrupt
// entries are purged eagerly.
func (c *CacheManager) Load(ctx context.Context) ([]domain.SmokingSpot, time.Time, bool) {
	savedAt, ok := c.timestamp(ctx)
	if !ok {
		metrics.CacheMisses.WithLabelValues("load").Inc()
		return nil, time.Time{}, false
	}

	if c.now().Sub(savedAt) > c.ttl {
		metrics.CacheMisses.WithLabelValues("load").Inc()
		c.Purge(ctx)
		return nil, time.Time{}, false
	}

	spots, ok := c.spots(ctx)
	if !ok {
		metrics.CacheMisses.WithLabelValues("load").Inc()
		c.Purge(ctx)
		return nil, time.Time{}, false
	}

	metrics.CacheHits.WithLabelValues("load").Inc()
	return spots, savedAt, true
}

// LoadStale returns whatever is cached regardless of TTL. Used as the
// fallback when a full aggregation run fails.
func (c *CacheManager) LoadStale(ctx context.Context) ([]domain.SmokingSpot, time.Time, bool) {
	savedAt, ok := c.timestamp(ctx)
	if !ok {
		return nil, time.Time{}, false
	}
	spots, ok := c.spots(ctx)
	if !ok {
		return nil, time.Time{}, false
	}
	return spots, savedAt, true
}

// Save persists the collection head (capped at maxSpots) with the current
// timestamp. Persistence failures purge the prior entry and are never
// propagated; the in-memory result stays usable either way.
func (c *CacheManager) Save(ctx context.Context, spots []domain.SmokingSpot) {
	head := spots
	if len(head) > c.maxSpots {
		head = head[:c.maxSpots]
	}

	data, err := json.Marshal(head)
	if err != nil {
		slog.Warn("cache save failed", slog.String("error", err.Error()))
		c.Purge(ctx)
		return
	}

	if err := c.store.Set(ctx, cacheKeySpots, data); err != nil {
		slog.Warn("cache save failed", slog.String("error", err.Error()))
		c.Purge(ctx)
		return
	}

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	if err := c.store.Set(ctx, cacheKeyTimestamp, []byte(ts)); err != nil {
		slog.Warn("cache timestamp save failed", slog.String("error", err.Error()))
		c.Purge(ctx)
	}
}

// Purge removes both cache keys.
func (c *CacheManager) Purge(ctx context.Context) {
	_ = c.store.Delete(ctx, cacheKeySpots)
	_ = c.store.Delete(ctx, cacheKeyTimestamp)
}

func (c *CacheManager) timestamp(ctx context.Context) (time.Time, bool) {
	raw, err := c.store.Get(ctx, cacheKeyTimestamp)
	if err != nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		c.Purge(ctx)
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (c *CacheManager) spots(ctx context.Context) ([]domain.SmokingSpot, bool) {
	raw, err := c.store.Get(ctx, cacheKeySpots)
	if err != nil {
		return nil, false
	}
	var spots []domain.SmokingSpot
	if err := json.Unmarshal(raw, &spots); err != nil {
		return nil, false
	}
	return spots, true
}
