package sheet

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/prop-hammer/internal/metrics"
)

const snapshotKey = "grid_snapshot"

// CachedSource wraps a GridSource with a time-based snapshot cache. The
// sheet is hand-edited and changes on a human timescale, so re-fetching more
// often than the TTL buys nothing. It also retains the last raw snapshot so
// callers can surface a preview when the scanner finds nothing (the only
// diagnostic the silent-skip core offers).
type CachedSource struct {
	source GridSource
	cache  *cache.Cache
	ttl    time.Duration

	mu        sync.RWMutex
	lastRaw   [][]string
	fetchedAt time.Time
	hitCount  uint64
	missCount uint64
}

// NewCachedSource wraps source with a TTL snapshot cache
func NewCachedSource(source GridSource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, ttl*2),
		ttl:    ttl,
	}
}

// Name returns the underlying source name
func (c *CachedSource) Name() string {
	return c.source.Name()
}

// IsEnabled returns whether the underlying source is enabled
func (c *CachedSource) IsEnabled() bool {
	return c.source.IsEnabled()
}

// FetchGrid returns the cached snapshot when fresh, otherwise fetches a new
// one from the underlying source.
func (c *CachedSource) FetchGrid(ctx context.Context) ([][]string, error) {
	if cached, found := c.cache.Get(snapshotKey); found {
		if grid, ok := cached.([][]string); ok {
			c.recordHit(true)
			return grid, nil
		}
	}
	c.recordHit(false)
	return c.Refresh(ctx)
}

// Refresh bypasses the cache, fetches a fresh snapshot, and stores it
func (c *CachedSource) Refresh(ctx context.Context) ([][]string, error) {
	start := time.Now()
	grid, err := c.source.FetchGrid(ctx)
	metrics.RecordSheetFetch(time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}

	c.cache.Set(snapshotKey, grid, c.ttl)

	c.mu.Lock()
	c.lastRaw = grid
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return grid, nil
}

// LastSnapshot returns the most recently fetched raw grid and its fetch
// time. Returns nil before the first successful fetch.
func (c *CachedSource) LastSnapshot() ([][]string, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRaw, c.fetchedAt
}

// LastRefresh returns when the snapshot was last fetched from the source.
// Zero before the first successful fetch.
func (c *CachedSource) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Invalidate drops the cached snapshot so the next fetch goes to the source
func (c *CachedSource) Invalidate() {
	c.cache.Delete(snapshotKey)
}

// Stats returns cache hit statistics
func (c *CachedSource) Stats() (hits, misses uint64, ratio float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (c *CachedSource) recordHit(hit bool) {
	c.mu.Lock()
	if hit {
		c.hitCount++
	} else {
		c.missCount++
	}
	hits := c.hitCount
	misses := c.missCount
	c.mu.Unlock()

	if total := hits + misses; total > 0 {
		metrics.SheetCacheHitRatio.Set(float64(hits) / float64(total))
	}
}
