package leaderboard

import (
	"math"

	"github.com/riskibarqy/kickstats/internal/domain/stats"
)

const (
	MinStreak = 1
	MaxStreak = 10
)

// ComputeStreak derives the presentational momentum value, always within
// [MinStreak, MaxStreak].
func ComputeStreak(t stats.Totals) int {
	activity := float64(t.GamesPlayed)*1.2 +
		float64(t.Goals)*0.6 +
		float64(t.Assists)*0.4 +
		float64(t.Saves+t.Tackles+t.Interceptions)*0.25

	streak := int(math.Round(activity / 2))
	if streak < MinStreak {
		return MinStreak
	}
	if streak > MaxStreak {
		return MaxStreak
	}
	return streak
}
