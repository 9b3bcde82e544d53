// Package stats summarises the usage ledger and caches the snapshot behind it.
package stats

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"titan/internal/ledger"
)

const usageKey = "usage"

// CachedLedger wraps a ledger and serves Usage from a TTL cache. Concurrent
// misses share a single load. Writes go straight through and drop the entry.
//
// Every write bumps the generation before and after it runs. A load only
// stores its snapshot if the generation it started under is still current,
// and loads from different generations are never shared.
type CachedLedger struct {
	next  ledger.Ledger
	cache *cache.Cache
	group singleflight.Group

	mu  sync.Mutex
	gen uint64
}

// NewCachedLedger wraps next. A ttl of zero or less disables caching.
func NewCachedLedger(next ledger.Ledger, ttl time.Duration) *CachedLedger {
	if ttl <= 0 {
		ttl = time.Nanosecond
	}
	return &CachedLedger{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Usage returns the cached snapshot, loading it on a miss. The load is shared
// by concurrent callers and is not cancelled with any one of them; each
// caller stops waiting when its own ctx is done.
func (c *CachedLedger) Usage(ctx context.Context) (ledger.Usage, error) {
	if cached, found := c.cache.Get(usageKey); found {
		return cached.(ledger.Usage).Clone(), nil
	}

	gen := c.generation()
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(usageKey+":"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		u, err := c.next.Usage(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.cache.Set(usageKey, u, cache.DefaultExpiration)
		}
		c.mu.Unlock()
		return u, nil
	})

	select {
	case <-ctx.Done():
		return ledger.Usage{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return ledger.Usage{}, res.Err
		}
		return res.Val.(ledger.Usage).Clone(), nil
	}
}

// Record writes through and invalidates the cached snapshot.
func (c *CachedLedger) Record(ctx context.Context, keyword, category string, at time.Time) error {
	c.invalidate()
	defer c.invalidate()
	return c.next.Record(ctx, keyword, category, at)
}

// ResetCategory writes through and invalidates the cached snapshot.
func (c *CachedLedger) ResetCategory(ctx context.Context, category string) (int, error) {
	c.invalidate()
	defer c.invalidate()
	return c.next.ResetCategory(ctx, category)
}

func (c *CachedLedger) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *CachedLedger) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.cache.Delete(usageKey)
}
