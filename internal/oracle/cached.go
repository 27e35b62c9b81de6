package oracle

import (
	"context"
	"fmt"
	"time"

	"itinerary/internal/cache"
	"itinerary/internal/geocore"
)

// DefaultCacheSize is the LRU capacity backing CachedOracle.
const DefaultCacheSize = 192

// CachedOracle memoizes an underlying TravelOracle's calls for the lifetime
// of one planner run, keyed by (rounded origin, rounded destination, mode,
// hour bucket). Each concurrent planning request owns its own cache
// instance; CachedOracle is never shared across runs.
type CachedOracle struct {
	inner TravelOracle
	lru   *cache.LRU[string, TravelInfo]
}

// NewCachedOracle wraps inner with an LRU of the given capacity (DefaultCacheSize
// if capacity <= 0).
func NewCachedOracle(inner TravelOracle, capacity int) *CachedOracle {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &CachedOracle{inner: inner, lru: cache.New[string, TravelInfo](capacity)}
}

func (c *CachedOracle) Route(ctx context.Context, origin, destination geocore.Coordinate, mode Mode, dependAt time.Time) (TravelInfo, error) {
	key := cacheKey(origin, destination, mode, dependAt)
	if info, ok := c.lru.Get(key); ok {
		return info, nil
	}

	info, err := c.inner.Route(ctx, origin, destination, mode, dependAt)
	if err != nil {
		// Never cache a failed lookup; purge defensively in case a partial
		// write happened on a prior pass through this key.
		c.lru.Purge(key)
		return TravelInfo{}, err
	}

	c.lru.Put(key, info)
	return info, nil
}

func cacheKey(origin, destination geocore.Coordinate, mode Mode, dependAt time.Time) string {
	bucket := 0
	if !dependAt.IsZero() {
		bucket = dependAt.Hour()
	}
	return fmt.Sprintf("%.4f,%.4f->%.4f,%.4f:%s:%d",
		origin.Lat, origin.Lon, destination.Lat, destination.Lon, mode, bucket)
}
