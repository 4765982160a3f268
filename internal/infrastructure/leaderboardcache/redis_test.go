package leaderboardcache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
	"github.com/riskibarqy/kickstats/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

func newRedisCacheUnderTest(t *testing.T, breaker *resilience.CircuitBreaker) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, RedisCacheConfig{TTL: 45 * time.Second}, breaker, logging.NewNop()), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newRedisCacheUnderTest(t, nil)

	c.Set(ctx, "P1:S1", sampleResult())
	require.True(t, mr.Exists("leaderboard:P1:S1"))
	require.Equal(t, 45*time.Second, mr.TTL("leaderboard:P1:S1"))

	got, ok := c.Get(ctx, "P1:S1")
	require.True(t, ok)
	require.Equal(t, sampleResult(), got)
}

func TestRedisCache_ExpiredEntryMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newRedisCacheUnderTest(t, nil)

	c.Set(ctx, "P1:S1", sampleResult())
	mr.FastForward(45 * time.Second)

	_, ok := c.Get(ctx, "P1:S1")
	require.False(t, ok)
	require.False(t, mr.Exists("leaderboard:P1:S1"))
}

func TestRedisCache_ClearOnlyTouchesPrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newRedisCacheUnderTest(t, nil)

	for i := 0; i < 250; i++ {
		c.Set(ctx, leaderboard.Key(fmt.Sprintf("P%03d", i), "S1"), sampleResult())
	}
	require.NoError(t, mr.Set("session:abc", "keep"))

	c.Clear(ctx)

	require.Equal(t, []string{"session:abc"}, mr.Keys())
}

func TestRedisCache_ClearSurvivesCanceledCaller(t *testing.T) {
	t.Parallel()

	c, mr := newRedisCacheUnderTest(t, resilience.NewCircuitBreaker(1, time.Minute, 1))
	c.Set(context.Background(), "P1:S1", sampleResult())
	c.Set(context.Background(), "P2:S1", sampleResult())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Clear(ctx)

	require.False(t, mr.Exists("leaderboard:P1:S1"))
	require.False(t, mr.Exists("leaderboard:P2:S1"))
	_, ok := c.Get(context.Background(), "P1:S1")
	require.False(t, ok)
	require.Equal(t, resilience.CircuitStateClosed, c.breaker.State())
}

func TestRedisCache_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newRedisCacheUnderTest(t, nil)

	c.Set(ctx, "P1:S1", sampleResult())
	c.Set(ctx, "P2:S1", sampleResult())
	c.Delete(ctx, "P1:S1")

	require.False(t, mr.Exists("leaderboard:P1:S1"))
	require.True(t, mr.Exists("leaderboard:P2:S1"))
}

func TestRedisCache_UndecodableEntryIsDropped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, mr := newRedisCacheUnderTest(t, nil)

	require.NoError(t, mr.Set("leaderboard:P1:S1", "{not json"))

	_, ok := c.Get(ctx, "P1:S1")
	require.False(t, ok)
	require.False(t, mr.Exists("leaderboard:P1:S1"))
}

func TestRedisCache_UnavailableRedisDegradesToMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	breaker := resilience.NewCircuitBreaker(2, time.Minute, 1)
	c, mr := newRedisCacheUnderTest(t, breaker)
	mr.Close()

	for i := 0; i < 3; i++ {
		_, ok := c.Get(ctx, "P1:S1")
		require.False(t, ok)
	}
	c.Set(ctx, "P1:S1", sampleResult())
	c.Clear(ctx)

	require.Equal(t, resilience.CircuitStateOpen, breaker.State())
}
