package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/kickstats/internal/platform/resilience"
	"github.com/riskibarqy/kickstats/internal/usecase"
)

var _ usecase.LeaderboardMetrics = (*Metrics)(nil)

// Metrics holds the Prometheus collectors for leaderboard serving.
type Metrics struct {
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	BuildDuration *prometheus.HistogramVec
	BuildFailures *prometheus.CounterVec
	Invalidations prometheus.Counter
	CircuitOpen   *prometheus.GaugeVec
}

// NewMetrics creates and registers the collectors. If no registerer is provided, it uses
// the default Prometheus registerer.
func NewMetrics(registerer ...prometheus.Registerer) *Metrics {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 && registerer[0] != nil {
		reg = registerer[0]
	}

	m := &Metrics{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kickstats_leaderboard_cache_hits_total",
			Help: "Leaderboard requests served from cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kickstats_leaderboard_cache_misses_total",
			Help: "Leaderboard requests that required a build.",
		}),
		BuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kickstats_leaderboard_build_duration_seconds",
			Help:    "Duration of leaderboard builds by scoring policy.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"policy"}),
		BuildFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kickstats_leaderboard_build_failures_total",
			Help: "Leaderboard builds that returned an error, by scoring policy.",
		}, []string{"policy"}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kickstats_leaderboard_invalidations_total",
			Help: "Full leaderboard cache flushes.",
		}),
		CircuitOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kickstats_circuit_breaker_open",
			Help: "Named circuit breaker state (0 closed, 0.5 half open, 1 open).",
		}, []string{"name"}),
	}

	reg.MustRegister(
		m.CacheHits,
		m.CacheMisses,
		m.BuildDuration,
		m.BuildFailures,
		m.Invalidations,
		m.CircuitOpen,
	)

	return m
}

// NewMetricsHandler returns an http.Handler for the given Gatherer, or the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 && gatherer[0] != nil {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func (m *Metrics) IncCacheHit() {
	m.CacheHits.Inc()
}

func (m *Metrics) IncCacheMiss() {
	m.CacheMisses.Inc()
}

func (m *Metrics) ObserveBuildDuration(policy string, seconds float64) {
	m.BuildDuration.WithLabelValues(policy).Observe(seconds)
}

func (m *Metrics) IncBuildFailure(policy string) {
	m.BuildFailures.WithLabelValues(policy).Inc()
}

func (m *Metrics) IncInvalidation() {
	m.Invalidations.Inc()
}

func (m *Metrics) SetCircuitState(name string, state resilience.CircuitState) {
	var v float64
	switch state {
	case resilience.CircuitStateOpen:
		v = 1
	case resilience.CircuitStateHalfOpen:
		v = 0.5
	}
	m.CircuitOpen.WithLabelValues(name).Set(v)
}
