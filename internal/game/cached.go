// internal/game/cached.go
//
// Universe cache in front of an API.
//
// A universe document is the resource and building catalogue of a game
// world; it changes only when operators redeploy it.  CachedAPI keeps
// successful GetUniverse answers in an LRU for a short TTL and collapses
// concurrent misses for the same id into one upstream call.  Failures are
// never cached.  Every other method passes straight through.

package game

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/stellar-dominion/internal/cache"
	"github.com/yanizio/stellar-dominion/internal/metrics"
)

// CachedAPI decorates an API with a universe cache.
type CachedAPI struct {
	API
	universes *cache.LRU[string, Universe]
	sfg       singleflight.Group
}

var _ API = (*CachedAPI)(nil)

// NewCachedAPI wraps next.  size is the number of universes kept; ttl is how
// long each stays fresh.
func NewCachedAPI(next API, size int, ttl time.Duration) *CachedAPI {
	return &CachedAPI{
		API:       next,
		universes: cache.New[string, Universe](size, ttl),
	}
}

// GetUniverse returns a cached universe or fetches it once for all waiters.
func (c *CachedAPI) GetUniverse(ctx context.Context, universeID string) (Universe, error) {
	if u, ok := c.universes.Get(universeID); ok {
		metrics.UniverseCacheTotal.WithLabelValues(metrics.CacheHit).Inc()
		return u, nil
	}
	metrics.UniverseCacheTotal.WithLabelValues(metrics.CacheMiss).Inc()

	// The shared call outlives any single caller's cancellation; the client
	// timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.sfg.Do(universeID, func() (any, error) {
		if u, ok := c.universes.Get(universeID); ok {
			return u, nil
		}
		u, err := c.API.GetUniverse(shared, universeID)
		if err != nil {
			return nil, err
		}
		c.universes.Add(universeID, u)
		return u, nil
	})
	if err != nil {
		return Universe{}, err
	}
	return v.(Universe), nil
}
