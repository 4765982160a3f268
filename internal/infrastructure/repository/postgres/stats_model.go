package postgres

import "time"

// seasonTotalsRow scans aggregates untyped: lib/pq returns SUM over integer columns as
// int64 and over bigint columns as numeric text, so coercion is left to stats.Normalize.
type seasonTotalsRow struct {
	PlayerID      string `db:"player_id"`
	Goals         any    `db:"total_goals"`
	Assists       any    `db:"total_assists"`
	Saves         any    `db:"total_saves"`
	Tackles       any    `db:"total_tackles"`
	Interceptions any    `db:"total_interceptions"`
	HeadersWon    any    `db:"total_headers_won"`
	YellowCards   any    `db:"total_yellow_cards"`
	RedCards      any    `db:"total_red_cards"`
	Fouls         any    `db:"total_fouls"`
	ShotsOnTarget any    `db:"total_shots_on_target"`
	Offsides      any    `db:"total_offsides"`
	GamesPlayed   any    `db:"games_played"`
}

type playerStatInsertModel struct {
	ID                 string  `db:"id"`
	PlayerID           string  `db:"player_id"`
	GameID             string  `db:"game_id"`
	PlayerTeamSeasonID string  `db:"player_team_season_id"`
	PositionPlayed     *string `db:"position_played"`
	GoalsScored        int     `db:"goals_scored"`
	Assists            int     `db:"assists"`
	ShotsOnTarget      int     `db:"shots_on_target"`
	Tackles            int     `db:"tackles"`
	Interceptions      int     `db:"interceptions"`
	Saves              int     `db:"saves"`
	YellowCards        int     `db:"yellow_cards"`
	RedCards           int     `db:"red_cards"`
	Fouls              int     `db:"fouls"`
	HeadersWon         int     `db:"headers_won"`
	Offsides           int     `db:"offsides"`
}

type playerTeamSeasonInsertModel struct {
	ID       string `db:"id"`
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	SeasonID string `db:"season_id"`
}

type gameInsertModel struct {
	ID         string    `db:"id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	Date       time.Time `db:"date"`
}

type playerAwardInsertModel struct {
	ID       string `db:"id"`
	GameID   string `db:"game_id"`
	PlayerID string `db:"player_id"`
	SeasonID string `db:"season_id"`
	AwardID  string `db:"award_id"`
}
