package usecase

// LeaderboardMetrics receives leaderboard cache and build signals.
type LeaderboardMetrics interface {
	IncCacheHit()
	IncCacheMiss()
	ObserveBuildDuration(policy string, seconds float64)
	IncBuildFailure(policy string)
	IncInvalidation()
}

type nopLeaderboardMetrics struct{}

func (nopLeaderboardMetrics) IncCacheHit()                         {}
func (nopLeaderboardMetrics) IncCacheMiss()                        {}
func (nopLeaderboardMetrics) ObserveBuildDuration(string, float64) {}
func (nopLeaderboardMetrics) IncBuildFailure(string)               {}
func (nopLeaderboardMetrics) IncInvalidation()                     {}
