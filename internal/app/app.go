package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/kickstats/internal/config"
	"github.com/riskibarqy/kickstats/internal/domain/friend"
	"github.com/riskibarqy/kickstats/internal/domain/leaderboard"
	"github.com/riskibarqy/kickstats/internal/domain/profile"
	"github.com/riskibarqy/kickstats/internal/domain/stats"
	"github.com/riskibarqy/kickstats/internal/infrastructure/auth"
	"github.com/riskibarqy/kickstats/internal/infrastructure/leaderboardcache"
	cacherepo "github.com/riskibarqy/kickstats/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/kickstats/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/kickstats/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/kickstats/internal/interfaces/httpapi"
	"github.com/riskibarqy/kickstats/internal/observability"
	basecache "github.com/riskibarqy/kickstats/internal/platform/cache"
	idgen "github.com/riskibarqy/kickstats/internal/platform/id"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
	"github.com/riskibarqy/kickstats/internal/platform/resilience"
	"github.com/riskibarqy/kickstats/internal/usecase"
)

const (
	redisPingTimeout = 3 * time.Second
	redisCircuitName = "redis_leaderboard_cache"
)

// App holds the HTTP server and the resources it owns.
type App struct {
	Server  *http.Server
	closers []func() error
}

type repositories struct {
	friends  friend.Repository
	profiles profile.Repository
	stats    stats.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	repos, err := a.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.ProfileCacheEnabled {
		repos.profiles = cacherepo.NewProfileRepository(repos.profiles, basecache.NewStore(cfg.ProfileCacheTTL))
	}

	primary, err := leaderboard.PolicyByName(cfg.LeaderboardPolicy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	comparison, err := leaderboard.PolicyByName(cfg.ComparisonPolicy)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var (
		obsMetrics     *observability.Metrics
		metrics        usecase.LeaderboardMetrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		obsMetrics = observability.NewMetrics(registry)
		metrics = obsMetrics
		metricsHandler = observability.NewMetricsHandler(registry)
	}

	lbCache, err := a.openLeaderboardCache(ctx, cfg, obsMetrics, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	builder := usecase.NewLeaderboardBuilder(repos.friends, repos.profiles, repos.stats)
	leaderboardSvc := usecase.NewLeaderboardService(builder, lbCache, usecase.LeaderboardServiceConfig{
		Primary:     primary,
		Comparison:  comparison,
		WarmWorkers: cfg.LeaderboardWarmWorkers,
	}, metrics, logger)
	statSvc := usecase.NewStatService(repos.stats, leaderboardSvc, logger)
	friendSvc := usecase.NewFriendService(repos.friends, repos.profiles, leaderboardSvc, logger)

	handler := httpapi.NewHandler(leaderboardSvc, statSvc, friendSvc, logger)
	router := httpapi.NewRouter(handler, auth.NewJWTVerifier(cfg.JWTSecret), logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		MetricsHandler:     metricsHandler,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Close releases the database and Redis connections in reverse open order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	ids := idgen.NewUUIDGenerator()

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)

		statsRepo := postgres.NewStatsRepository(db, ids)
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db, statsRepo); err != nil {
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		logger.Info("postgres storage ready", "db", dbNameFromDSN(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns, "bootstrap_seed", cfg.DBBootstrapSeed)

		return repositories{
			friends:  postgres.NewFriendRepository(db),
			profiles: postgres.NewProfileRepository(db),
			stats:    statsRepo,
		}, nil
	default:
		statsRepo := memory.NewStatsRepository(ids)
		if err := memory.LoadGameStats(ctx, statsRepo, memory.SeedGameStats()); err != nil {
			return repositories{}, fmt.Errorf("seed memory stats: %w", err)
		}
		logger.Info("memory storage ready", "profiles", len(memory.SeedProfiles()))

		return repositories{
			friends:  memory.NewFriendRepository(memory.SeedFriendships()),
			profiles: memory.NewProfileRepository(memory.SeedProfiles()),
			stats:    statsRepo,
		}, nil
	}
}

func (a *App) openLeaderboardCache(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *logging.Logger) (leaderboard.Cache, error) {
	if cfg.LeaderboardCacheDriver != config.CacheDriverRedis {
		return leaderboardcache.NewMemoryCache(basecache.NewStore(cfg.LeaderboardCacheTTL)), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client.Close)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Reads degrade to misses until Redis comes back.
		logger.Warn("redis ping failed, leaderboard cache degraded", "addr", opts.Addr, "error", err)
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.RedisCircuit).
		OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("redis circuit state changed", "from", from, "to", to)
			if metrics != nil {
				metrics.SetCircuitState(redisCircuitName, to)
			}
		})
	if metrics != nil && breaker != nil {
		metrics.SetCircuitState(redisCircuitName, breaker.State())
	}
	return leaderboardcache.NewRedisCache(client, leaderboardcache.RedisCacheConfig{
		KeyPrefix: cfg.RedisKeyPrefix,
		TTL:       cfg.LeaderboardCacheTTL,
	}, breaker, logger), nil
}
