package stats

import "time"

// Totals is one player's summed statistics for a season. Every field is >= 0 once
// produced by Normalize.
type Totals struct {
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	Saves         int `json:"saves"`
	Tackles       int `json:"tackles"`
	Interceptions int `json:"interceptions"`
	HeadersWon    int `json:"headersWon"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	Fouls         int `json:"fouls"`
	ShotsOnTarget int `json:"shotsOnTarget"`
	Offsides      int `json:"offsides"`
	GamesPlayed   int `json:"gamesPlayed"`
}

// RawTotals carries aggregate values exactly as a data source returned them. SUM over
// an empty set is NULL and drivers may hand numerics back as text, so each field can be
// nil, a string, or any numeric type.
type RawTotals struct {
	Goals         any
	Assists       any
	Saves         any
	Tackles       any
	Interceptions any
	HeadersWon    any
	YellowCards   any
	RedCards      any
	Fouls         any
	ShotsOnTarget any
	Offsides      any
	GamesPlayed   any
}

// Counts is a single game stat line as entered by a player.
type Counts struct {
	GoalsScored   int
	Assists       int
	ShotsOnTarget int
	Tackles       int
	Interceptions int
	Saves         int
	YellowCards   int
	RedCards      int
	Fouls         int
	HeadersWon    int
	Offsides      int
}

// GameStat records one player's line for one game. Game and team/season links are
// resolved or created by the repository.
type GameStat struct {
	PlayerID     string
	SeasonID     string
	TeamID       string
	HomeTeamID   string
	AwayTeamID   string
	Date         time.Time
	Position     string
	AwardID      string
	TournamentID string
	Counts       Counts
}

type RecordedStat struct {
	StatID             string
	GameID             string
	PlayerTeamSeasonID string
}
