package leaderboard

import (
	"context"
	"time"
)

// Cache memoizes built results by Key. Implementations must be safe for concurrent use
// and must never return an entry at or after its expiry.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool)
	Set(ctx context.Context, key string, result Result)
	Delete(ctx context.Context, key string)
	// Clear drops every entry.
	Clear(ctx context.Context)
	TTL() time.Duration
}
