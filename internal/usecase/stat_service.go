package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/stats"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
)

const maxSeasonTotalsPlayers = 200

// LeaderboardInvalidator is notified after every committed stat or friendship write.
type LeaderboardInvalidator interface {
	InvalidateLeaderboards(ctx context.Context)
}

type RecordGameStatInput struct {
	PlayerID     string
	SeasonID     string
	TeamID       string
	HomeTeamID   string
	AwayTeamID   string
	Date         time.Time
	Position     string
	AwardID      string
	TournamentID string
	Counts       stats.Counts
}

type StatService struct {
	statsRepo   stats.Repository
	invalidator LeaderboardInvalidator
	logger      *logging.Logger
}

func NewStatService(statsRepo stats.Repository, invalidator LeaderboardInvalidator, logger *logging.Logger) *StatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatService{
		statsRepo:   statsRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *StatService) RecordGameStat(ctx context.Context, input RecordGameStatInput) (stats.RecordedStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.RecordGameStat", playerSeasonAttrs(input.PlayerID, input.SeasonID)...)
	defer span.End()

	stat, err := normalizeGameStat(input)
	if err != nil {
		return stats.RecordedStat{}, err
	}

	recorded, err := s.statsRepo.RecordGameStat(ctx, stat)
	if err != nil {
		return stats.RecordedStat{}, failSpan(span, fmt.Errorf("record game stat player=%s: %w", stat.PlayerID, err))
	}

	if s.invalidator != nil {
		s.invalidator.InvalidateLeaderboards(context.WithoutCancel(ctx))
	}
	s.logger.InfoContext(ctx, "game stat recorded",
		"player_id", stat.PlayerID,
		"season_id", stat.SeasonID,
		"game_id", recorded.GameID,
		"stat_id", recorded.StatID,
	)
	return recorded, nil
}

// SeasonTotals returns normalized totals for every requested player. Players without
// stat rows get zero totals.
func (s *StatService) SeasonTotals(ctx context.Context, playerIDs []string, seasonID string) (map[string]stats.Totals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatService.SeasonTotals")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	ids := uniqueTrimmed(playerIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one player id is required", ErrInvalidInput)
	}
	if len(ids) > maxSeasonTotalsPlayers {
		return nil, fmt.Errorf("%w: at most %d player ids are allowed", ErrInvalidInput, maxSeasonTotalsPlayers)
	}

	raw, err := s.statsRepo.GetSeasonTotals(ctx, ids, seasonID)
	if err != nil {
		return nil, fmt.Errorf("%w: get season totals season=%s: %w", ErrDependencyUnavailable, seasonID, err)
	}

	out := make(map[string]stats.Totals, len(ids))
	for _, id := range ids {
		out[id] = stats.Normalize(raw[id])
	}
	return out, nil
}

func normalizeGameStat(input RecordGameStatInput) (stats.GameStat, error) {
	stat := stats.GameStat{
		PlayerID:     strings.TrimSpace(input.PlayerID),
		SeasonID:     strings.TrimSpace(input.SeasonID),
		TeamID:       strings.TrimSpace(input.TeamID),
		HomeTeamID:   strings.TrimSpace(input.HomeTeamID),
		AwayTeamID:   strings.TrimSpace(input.AwayTeamID),
		Date:         input.Date,
		Position:     strings.TrimSpace(input.Position),
		AwardID:      strings.TrimSpace(input.AwardID),
		TournamentID: strings.TrimSpace(input.TournamentID),
		Counts:       input.Counts,
	}

	switch {
	case stat.PlayerID == "":
		return stats.GameStat{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	case stat.SeasonID == "":
		return stats.GameStat{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	case stat.TeamID == "":
		return stats.GameStat{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	case stat.HomeTeamID == "" || stat.AwayTeamID == "":
		return stats.GameStat{}, fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	case stat.HomeTeamID == stat.AwayTeamID:
		return stats.GameStat{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	case stat.Date.IsZero():
		return stats.GameStat{}, fmt.Errorf("%w: game date is required", ErrInvalidInput)
	}

	c := stat.Counts
	for name, v := range map[string]int{
		"goals_scored":    c.GoalsScored,
		"assists":         c.Assists,
		"shots_on_target": c.ShotsOnTarget,
		"tackles":         c.Tackles,
		"interceptions":   c.Interceptions,
		"saves":           c.Saves,
		"yellow_cards":    c.YellowCards,
		"red_cards":       c.RedCards,
		"fouls":           c.Fouls,
		"headers_won":     c.HeadersWon,
		"offsides":        c.Offsides,
	} {
		if v < 0 {
			return stats.GameStat{}, fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, name)
		}
	}

	stat.Date = stat.Date.UTC().Truncate(24 * time.Hour)
	return stat, nil
}
