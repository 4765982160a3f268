package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/profile"
	"github.com/riskibarqy/kickstats/internal/domain/stats"
)

const (
	SeasonIDSpring2026 = "season-2026-spring"

	TeamIDRiverHawks = "team-river-hawks"
	TeamIDNorthStars = "team-north-stars"

	PlayerIDMaya  = "player-maya"
	PlayerIDLeo   = "player-leo"
	PlayerIDSofia = "player-sofia"
	PlayerIDNoah  = "player-noah"
	PlayerIDIris  = "player-iris"
)

func SeedProfiles() []profile.Profile {
	forward := "forward"
	midfielder := "midfielder"
	goalkeeper := "goalkeeper"
	defender := "defender"
	return []profile.Profile{
		{ID: PlayerIDMaya, Username: "maya10", FullName: "Maya Torres", Position: &forward},
		{ID: PlayerIDLeo, Username: "leo_mid", FullName: "Leo Park", Position: &midfielder},
		{ID: PlayerIDSofia, Username: "sofia_gk", FullName: "Sofia Brandt", Position: &goalkeeper},
		{ID: PlayerIDNoah, Username: "noah4", FullName: "Noah Okafor", Position: &defender},
		{ID: PlayerIDIris, Username: "iris", FullName: "Iris Lindqvist"},
	}
}

// SeedFriendships links Maya to Leo and Sofia, and Noah to Iris.
func SeedFriendships() [][2]string {
	return [][2]string{
		{PlayerIDMaya, PlayerIDLeo},
		{PlayerIDSofia, PlayerIDMaya},
		{PlayerIDNoah, PlayerIDIris},
	}
}

func SeedGameStats() []stats.GameStat {
	day1 := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)

	hawksHome := func(playerID, teamID string, date time.Time, counts stats.Counts) stats.GameStat {
		return stats.GameStat{
			PlayerID:   playerID,
			SeasonID:   SeasonIDSpring2026,
			TeamID:     teamID,
			HomeTeamID: TeamIDRiverHawks,
			AwayTeamID: TeamIDNorthStars,
			Date:       date,
			Counts:     counts,
		}
	}

	return []stats.GameStat{
		hawksHome(PlayerIDMaya, TeamIDRiverHawks, day1, stats.Counts{GoalsScored: 2, Assists: 1, ShotsOnTarget: 4}),
		hawksHome(PlayerIDMaya, TeamIDRiverHawks, day2, stats.Counts{GoalsScored: 1, ShotsOnTarget: 2, Fouls: 1}),
		hawksHome(PlayerIDMaya, TeamIDRiverHawks, day3, stats.Counts{GoalsScored: 1, Assists: 1, Offsides: 2}),
		hawksHome(PlayerIDLeo, TeamIDRiverHawks, day1, stats.Counts{Assists: 3, Tackles: 2, Interceptions: 1}),
		hawksHome(PlayerIDLeo, TeamIDRiverHawks, day2, stats.Counts{Assists: 2, Tackles: 1, YellowCards: 1}),
		hawksHome(PlayerIDSofia, TeamIDNorthStars, day1, stats.Counts{Saves: 6}),
		hawksHome(PlayerIDSofia, TeamIDNorthStars, day2, stats.Counts{Saves: 5}),
		hawksHome(PlayerIDNoah, TeamIDNorthStars, day3, stats.Counts{Tackles: 4, HeadersWon: 3, RedCards: 1}),
	}
}

// LoadGameStats records each line through the repository so games and team links are
// resolved the same way live writes resolve them.
func LoadGameStats(ctx context.Context, repo *StatsRepository, lines []stats.GameStat) error {
	for i, line := range lines {
		if _, err := repo.RecordGameStat(ctx, line); err != nil {
			return fmt.Errorf("load game stat %d for player=%s: %w", i, line.PlayerID, err)
		}
	}
	return nil
}
