package leaderboard

import (
	"github.com/riskibarqy/kickstats/internal/domain/stats"
)

type Player struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Position  *string `json:"position"`
}

// Badges maps a badge name to whether the player earned it. The key set depends on the
// policy that produced the entry.
type Badges map[string]bool

// Entry is one ranked row. Entries are built once per leaderboard build and treated as
// read-only afterwards, including by callers that receive them from a cache.
type Entry struct {
	Player Player       `json:"player"`
	Totals stats.Totals `json:"totals"`
	Points int          `json:"points"`
	Badges Badges       `json:"badges"`
	Streak int          `json:"streak"`
}

type Result struct {
	Policy  string  `json:"policy"`
	Entries []Entry `json:"entries"`
}

// Key identifies the cached leaderboard of one requesting player in one season.
func Key(playerID, seasonID string) string {
	return playerID + ":" + seasonID
}

// NewEntry scores totals under policy and attaches the streak.
func NewEntry(policy Policy, player Player, totals stats.Totals) Entry {
	return Entry{
		Player: player,
		Totals: totals,
		Points: policy.Score(totals),
		Badges: policy.Badges(totals),
		Streak: ComputeStreak(totals),
	}
}
