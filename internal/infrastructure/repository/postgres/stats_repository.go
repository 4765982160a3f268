package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/kickstats/internal/domain/stats"
	idgen "github.com/riskibarqy/kickstats/internal/platform/id"
	qb "github.com/riskibarqy/kickstats/internal/platform/querybuilder"
)

var _ stats.Repository = (*StatsRepository)(nil)

const (
	playerTeamSeasonUpsertSuffix = `ON CONFLICT (player_id, team_id, season_id)
DO UPDATE SET player_id = EXCLUDED.player_id
RETURNING id`
	gameUpsertSuffix = `ON CONFLICT (home_team_id, away_team_id, date)
DO UPDATE SET home_team_id = EXCLUDED.home_team_id
RETURNING id`
)

type StatsRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
}

func NewStatsRepository(db *sqlx.DB, ids idgen.Generator) *StatsRepository {
	return &StatsRepository{db: db, ids: ids}
}

func (r *StatsRepository) GetSeasonTotals(ctx context.Context, playerIDs []string, seasonID string) (map[string]stats.RawTotals, error) {
	out := make(map[string]stats.RawTotals, len(playerIDs))
	if len(playerIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select(
		"ps.player_id",
		"SUM(ps.goals_scored) AS total_goals",
		"SUM(ps.assists) AS total_assists",
		"SUM(ps.saves) AS total_saves",
		"SUM(ps.tackles) AS total_tackles",
		"SUM(ps.interceptions) AS total_interceptions",
		"SUM(ps.headers_won) AS total_headers_won",
		"SUM(ps.yellow_cards) AS total_yellow_cards",
		"SUM(ps.red_cards) AS total_red_cards",
		"SUM(ps.fouls) AS total_fouls",
		"SUM(ps.shots_on_target) AS total_shots_on_target",
		"SUM(ps.offsides) AS total_offsides",
		"COUNT(DISTINCT ps.game_id) AS games_played",
	).From("player_stats ps").
		Join("player_teams_seasons pts", "pts.id = ps.player_team_season_id").
		Where(
			qb.Any("ps.player_id", playerIDs),
			qb.Eq("pts.season_id", seasonID),
		).
		GroupBy("ps.player_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build get season totals query")
	}

	var rows []seasonTotalsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "get season totals season=%s", seasonID)
	}

	for _, row := range rows {
		out[row.PlayerID] = stats.RawTotals{
			Goals:         row.Goals,
			Assists:       row.Assists,
			Saves:         row.Saves,
			Tackles:       row.Tackles,
			Interceptions: row.Interceptions,
			HeadersWon:    row.HeadersWon,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
			Fouls:         row.Fouls,
			ShotsOnTarget: row.ShotsOnTarget,
			Offsides:      row.Offsides,
			GamesPlayed:   row.GamesPlayed,
		}
	}
	return out, nil
}

// RecordGameStat resolves the player/team/season link and the game, creating them when
// absent, then inserts the stat line and the optional award and tournament rows in one
// transaction.
func (r *StatsRepository) RecordGameStat(ctx context.Context, stat stats.GameStat) (stats.RecordedStat, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return stats.RecordedStat{}, crerr.Wrap(err, "begin tx record game stat")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ptsID, err := r.upsertReturningID(ctx, tx, "player_teams_seasons", func(id string) any {
		return playerTeamSeasonInsertModel{ID: id, PlayerID: stat.PlayerID, TeamID: stat.TeamID, SeasonID: stat.SeasonID}
	}, playerTeamSeasonUpsertSuffix)
	if err != nil {
		return stats.RecordedStat{}, crerr.Wrapf(err, "resolve player team season player=%s team=%s season=%s", stat.PlayerID, stat.TeamID, stat.SeasonID)
	}

	gameID, err := r.upsertReturningID(ctx, tx, "games", func(id string) any {
		return gameInsertModel{ID: id, HomeTeamID: stat.HomeTeamID, AwayTeamID: stat.AwayTeamID, Date: stat.Date}
	}, gameUpsertSuffix)
	if err != nil {
		return stats.RecordedStat{}, crerr.Wrapf(err, "resolve game home=%s away=%s", stat.HomeTeamID, stat.AwayTeamID)
	}

	statID, err := r.ids.NewID()
	if err != nil {
		return stats.RecordedStat{}, crerr.Wrap(err, "generate stat id")
	}
	c := stat.Counts
	if err := execModel(ctx, tx, "player_stats", playerStatInsertModel{
		ID:                 statID,
		PlayerID:           stat.PlayerID,
		GameID:             gameID,
		PlayerTeamSeasonID: ptsID,
		PositionPlayed:     nullableString(stat.Position),
		GoalsScored:        c.GoalsScored,
		Assists:            c.Assists,
		ShotsOnTarget:      c.ShotsOnTarget,
		Tackles:            c.Tackles,
		Interceptions:      c.Interceptions,
		Saves:              c.Saves,
		YellowCards:        c.YellowCards,
		RedCards:           c.RedCards,
		Fouls:              c.Fouls,
		HeadersWon:         c.HeadersWon,
		Offsides:           c.Offsides,
	}, ""); err != nil {
		return stats.RecordedStat{}, crerr.Wrapf(err, "insert player stat player=%s game=%s", stat.PlayerID, gameID)
	}

	if stat.AwardID != "" {
		awardRowID, err := r.ids.NewID()
		if err != nil {
			return stats.RecordedStat{}, crerr.Wrap(err, "generate player award id")
		}
		if err := execModel(ctx, tx, "player_awards", playerAwardInsertModel{
			ID:       awardRowID,
			GameID:   gameID,
			PlayerID: stat.PlayerID,
			SeasonID: stat.SeasonID,
			AwardID:  stat.AwardID,
		}, ""); err != nil {
			return stats.RecordedStat{}, crerr.Wrapf(err, "insert player award award=%s", stat.AwardID)
		}
	}

	if stat.TournamentID != "" {
		query, args, err := qb.InsertInto("game_tournaments").
			Columns("game_id", "tournament_id").
			Values(gameID, stat.TournamentID).
			Suffix("ON CONFLICT (game_id, tournament_id) DO NOTHING").
			ToSQL()
		if err != nil {
			return stats.RecordedStat{}, crerr.Wrap(err, "build insert game tournament query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return stats.RecordedStat{}, crerr.Wrapf(err, "link game tournament tournament=%s", stat.TournamentID)
		}
	}

	if err := tx.Commit(); err != nil {
		return stats.RecordedStat{}, crerr.Wrap(err, "commit record game stat tx")
	}

	return stats.RecordedStat{StatID: statID, GameID: gameID, PlayerTeamSeasonID: ptsID}, nil
}

func (r *StatsRepository) upsertReturningID(ctx context.Context, tx *sqlx.Tx, table string, model func(id string) any, suffix string) (string, error) {
	candidateID, err := r.ids.NewID()
	if err != nil {
		return "", crerr.Wrapf(err, "generate %s id", table)
	}

	query, args, err := qb.InsertModel(table, model(candidateID), suffix)
	if err != nil {
		return "", crerr.Wrapf(err, "build upsert %s query", table)
	}

	var id string
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return "", err
	}
	return id, nil
}

func execModel(ctx context.Context, tx *sqlx.Tx, table string, model any, suffix string) error {
	query, args, err := qb.InsertModel(table, model, suffix)
	if err != nil {
		return crerr.Wrapf(err, "build insert %s query", table)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
