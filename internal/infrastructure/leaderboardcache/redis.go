package leaderboardcache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	basecache "github.com/riskibarqy/kickstats/internal/platform/cache"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
	"github.com/riskibarqy/kickstats/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	DefaultKeyPrefix = "leaderboard:"
	clearScanBatch   = 100
	clearTimeout     = 5 * time.Second
)

var _ leaderboard.Cache = (*RedisCache)(nil)

type RedisCacheConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// RedisCache shares leaderboards across service instances. Redis failures never fail a
// request: reads degrade to misses and writes are dropped, with the breaker skipping
// calls while Redis is down.
type RedisCache struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewRedisCache(client redis.Cmdable, cfg RedisCacheConfig, breaker *resilience.CircuitBreaker, logger *logging.Logger) *RedisCache {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = basecache.DefaultTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisCache{
		client:  client,
		prefix:  cfg.KeyPrefix,
		ttl:     cfg.TTL,
		breaker: breaker,
		logger:  logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (leaderboard.Result, bool) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		v, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		raw = v
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "leaderboard cache get failed", "key", key, "error", err)
		return leaderboard.Result{}, false
	}
	if raw == nil {
		return leaderboard.Result{}, false
	}

	var result leaderboard.Result
	if err := sonic.Unmarshal(raw, &result); err != nil {
		c.logger.WarnContext(ctx, "leaderboard cache entry undecodable, dropping", "key", key, "error", err)
		c.Delete(ctx, key)
		return leaderboard.Result{}, false
	}
	return result, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result leaderboard.Result) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(result); err != nil {
		c.logger.WarnContext(ctx, "leaderboard cache encode failed", "key", key, "error", err)
		return
	}

	err := c.breaker.Execute(func() error {
		return c.client.Set(ctx, c.prefix+key, buf.Bytes(), c.ttl).Err()
	})
	if err != nil {
		c.logger.WarnContext(ctx, "leaderboard cache set failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, c.prefix+key).Err()
	})
	if err != nil {
		c.logger.WarnContext(ctx, "leaderboard cache delete failed", "key", key, "error", err)
	}
}

// Clear removes every key under the prefix in SCAN batches. It runs after a committed
// write, so caller cancellation does not abort it; clearTimeout bounds it instead.
func (c *RedisCache) Clear(ctx context.Context) {
	clearCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearTimeout)
	defer cancel()

	err := c.breaker.Execute(func() error {
		return c.deleteByPrefix(clearCtx)
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "leaderboard cache clear failed", "prefix", c.prefix, "error", err)
	}
}

func (c *RedisCache) TTL() time.Duration {
	return c.ttl
}

func (c *RedisCache) deleteByPrefix(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", clearScanBatch).Iterator()
	keys := make([]string, 0, clearScanBatch)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= clearScanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
