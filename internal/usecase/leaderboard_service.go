package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultWarmWorkers = 4
	maxWarmWorkers     = 32

	warmStatusWarmed = "warmed"
	warmStatusCached = "cached"
	warmStatusFailed = "failed"
)

type LeaderboardServiceConfig struct {
	Primary     leaderboard.Policy
	Comparison  leaderboard.Policy
	WarmWorkers int
}

// LeaderboardView is a built or cached result plus the cache metadata returned to callers.
type LeaderboardView struct {
	Result leaderboard.Result
	Cached bool
	TTL    time.Duration
}

type WarmLeaderboardsInput struct {
	SeasonID   string
	PlayerIDs  []string
	MaxWorkers int
}

type WarmLeaderboardsResult struct {
	Requested   int                      `json:"requested"`
	WarmedCount int                      `json:"warmed_count"`
	CachedCount int                      `json:"cached_count"`
	FailedCount int                      `json:"failed_count"`
	WorkerCount int                      `json:"worker_count"`
	Items       []WarmLeaderboardOutcome `json:"items"`
}

type WarmLeaderboardOutcome struct {
	PlayerID   string `json:"player_id"`
	Status     string `json:"status"`
	Entries    int    `json:"entries"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type LeaderboardService struct {
	builder *LeaderboardBuilder
	cache   leaderboard.Cache
	cfg     LeaderboardServiceConfig
	metrics LeaderboardMetrics
	logger  *logging.Logger
}

func NewLeaderboardService(
	builder *LeaderboardBuilder,
	cache leaderboard.Cache,
	cfg LeaderboardServiceConfig,
	metrics LeaderboardMetrics,
	logger *logging.Logger,
) *LeaderboardService {
	if cfg.Primary.Name == "" {
		cfg.Primary = leaderboard.FormulaA()
	}
	if cfg.Comparison.Name == "" {
		cfg.Comparison = leaderboard.FormulaB()
	}
	if cfg.WarmWorkers <= 0 {
		cfg.WarmWorkers = defaultWarmWorkers
	}
	if metrics == nil {
		metrics = nopLeaderboardMetrics{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		builder: builder,
		cache:   cache,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// Get returns the cached leaderboard when fresh, otherwise builds and caches it. The
// build is detached from caller cancellation so an abandoned request still warms the
// cache. A failed build leaves the cache untouched.
func (s *LeaderboardService) Get(ctx context.Context, playerID, seasonID string) (LeaderboardView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Get", playerSeasonAttrs(playerID, seasonID)...)
	defer span.End()

	playerID, seasonID, err := normalizeLeaderboardInput(playerID, seasonID)
	if err != nil {
		return LeaderboardView{}, err
	}

	ttl := s.cache.TTL()
	key := leaderboard.Key(playerID, seasonID)
	if result, ok := s.cache.Get(ctx, key); ok {
		s.metrics.IncCacheHit()
		span.SetAttributes(attribute.Bool("leaderboard.cached", true))
		return LeaderboardView{Result: result, Cached: true, TTL: ttl}, nil
	}
	s.metrics.IncCacheMiss()
	span.SetAttributes(attribute.Bool("leaderboard.cached", false))

	buildCtx := context.WithoutCancel(ctx)
	result, err := s.build(buildCtx, playerID, seasonID, s.cfg.Primary)
	if err != nil {
		return LeaderboardView{}, failSpan(span, err)
	}
	s.cache.Set(buildCtx, key, result)

	return LeaderboardView{Result: result, Cached: false, TTL: ttl}, nil
}

// Compare builds the friends comparison view. It is never cached.
func (s *LeaderboardService) Compare(ctx context.Context, playerID, seasonID string) (LeaderboardView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Compare", playerSeasonAttrs(playerID, seasonID)...)
	defer span.End()

	playerID, seasonID, err := normalizeLeaderboardInput(playerID, seasonID)
	if err != nil {
		return LeaderboardView{}, err
	}

	result, err := s.build(ctx, playerID, seasonID, s.cfg.Comparison)
	if err != nil {
		return LeaderboardView{}, failSpan(span, err)
	}
	return LeaderboardView{Result: result}, nil
}

// InvalidateLeaderboards drops every cached leaderboard. Any write to stat, award, game
// or friendship rows must call it. The flush ignores caller cancellation because the
// write it follows has already committed.
func (s *LeaderboardService) InvalidateLeaderboards(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	s.cache.Clear(ctx)
	s.metrics.IncInvalidation()
	s.logger.DebugContext(ctx, "leaderboard cache cleared")
}

// Warm builds and caches the primary leaderboard for each player that is not already
// cached. Failures are reported per player and do not abort the run.
func (s *LeaderboardService) Warm(ctx context.Context, input WarmLeaderboardsInput) (WarmLeaderboardsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Warm")
	defer span.End()

	seasonID := strings.TrimSpace(input.SeasonID)
	if seasonID == "" {
		return WarmLeaderboardsResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	playerIDs := uniqueTrimmed(input.PlayerIDs)
	if len(playerIDs) == 0 {
		return WarmLeaderboardsResult{}, fmt.Errorf("%w: at least one player id is required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.cfg.WarmWorkers
	}
	if workerCount > maxWarmWorkers {
		workerCount = maxWarmWorkers
	}
	if workerCount > len(playerIDs) {
		workerCount = len(playerIDs)
	}

	results := make(chan WarmLeaderboardOutcome, len(playerIDs))

	var warmedCount atomic.Int32
	var cachedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmLeaderboardsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, playerID := range playerIDs {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.warmOne(ctx, playerID, seasonID)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case warmStatusWarmed:
				warmedCount.Add(1)
			case warmStatusCached:
				cachedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			failedCount.Add(1)
			results <- WarmLeaderboardOutcome{
				PlayerID: playerID,
				Status:   warmStatusFailed,
				Message:  fmt.Sprintf("submit warm task: %v", err),
			}
		}
	}
	workers.Wait()
	close(results)

	items := make([]WarmLeaderboardOutcome, 0, len(playerIDs))
	for row := range results {
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].PlayerID < items[j].PlayerID
	})

	out := WarmLeaderboardsResult{
		Requested:   len(playerIDs),
		WarmedCount: int(warmedCount.Load()),
		CachedCount: int(cachedCount.Load()),
		FailedCount: int(failedCount.Load()),
		WorkerCount: workerCount,
		Items:       items,
	}
	s.logger.InfoContext(ctx, "leaderboard warm finished",
		"season_id", seasonID,
		"requested", out.Requested,
		"warmed", out.WarmedCount,
		"cached", out.CachedCount,
		"failed", out.FailedCount,
	)
	return out, nil
}

func (s *LeaderboardService) warmOne(ctx context.Context, playerID, seasonID string) WarmLeaderboardOutcome {
	key := leaderboard.Key(playerID, seasonID)
	if result, ok := s.cache.Get(ctx, key); ok {
		return WarmLeaderboardOutcome{PlayerID: playerID, Status: warmStatusCached, Entries: len(result.Entries)}
	}

	result, err := s.build(ctx, playerID, seasonID, s.cfg.Primary)
	if err != nil {
		return WarmLeaderboardOutcome{PlayerID: playerID, Status: warmStatusFailed, Message: err.Error()}
	}
	s.cache.Set(ctx, key, result)
	return WarmLeaderboardOutcome{PlayerID: playerID, Status: warmStatusWarmed, Entries: len(result.Entries)}
}

func (s *LeaderboardService) build(ctx context.Context, playerID, seasonID string, policy leaderboard.Policy) (leaderboard.Result, error) {
	start := time.Now()
	result, err := s.builder.Build(ctx, playerID, seasonID, policy)
	if err != nil {
		s.metrics.IncBuildFailure(policy.Name)
		s.logger.WarnContext(ctx, "build leaderboard failed",
			"player_id", playerID,
			"season_id", seasonID,
			"policy", policy.Name,
			"error", err,
		)
		return leaderboard.Result{}, err
	}
	s.metrics.ObserveBuildDuration(policy.Name, time.Since(start).Seconds())
	return result, nil
}

func normalizeLeaderboardInput(playerID, seasonID string) (string, string, error) {
	playerID = strings.TrimSpace(playerID)
	seasonID = strings.TrimSpace(seasonID)
	if playerID == "" {
		return "", "", fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if seasonID == "" {
		return "", "", fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	return playerID, seasonID, nil
}

func uniqueTrimmed(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
