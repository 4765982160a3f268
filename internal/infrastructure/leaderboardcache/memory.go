package leaderboardcache

import (
	"context"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	basecache "github.com/riskibarqy/kickstats/internal/platform/cache"
)

var _ leaderboard.Cache = (*MemoryCache)(nil)

// MemoryCache keeps leaderboards in process. Each instance of the service has its own
// copy, so it only suits single-instance deployments.
type MemoryCache struct {
	store *basecache.Store
}

func NewMemoryCache(store *basecache.Store) *MemoryCache {
	if store == nil {
		store = basecache.NewStore(basecache.DefaultTTL)
	}
	return &MemoryCache{store: store}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (leaderboard.Result, bool) {
	v, ok := c.store.Get(ctx, key)
	if !ok {
		return leaderboard.Result{}, false
	}
	result, ok := v.(leaderboard.Result)
	return result, ok
}

func (c *MemoryCache) Set(ctx context.Context, key string, result leaderboard.Result) {
	c.store.Set(ctx, key, result)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.store.Delete(ctx, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.store.Clear(ctx)
}

func (c *MemoryCache) TTL() time.Duration {
	return c.store.TTL()
}
