package httpapi

import (
	"github.com/riskibarqy/kickstats/internal/domain/profile"
	"github.com/riskibarqy/kickstats/internal/domain/stats"
)

type seasonTotalsRequest struct {
	PlayerIDs []string `validate:"required,min=1,max=200,dive,required"`
	SeasonID  string   `validate:"required"`
}

type recordGameStatRequest struct {
	PlayerID     string          `json:"playerId" validate:"required"`
	SeasonID     string          `json:"seasonId" validate:"required"`
	TeamID       string          `json:"teamId" validate:"required"`
	HomeTeamID   string          `json:"homeTeamId" validate:"required"`
	AwayTeamID   string          `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	Date         string          `json:"date" validate:"required"`
	Position     string          `json:"position" validate:"max=32"`
	AwardID      string          `json:"awardId"`
	TournamentID string          `json:"tournamentId"`
	Stats        statLineRequest `json:"stats"`
}

// statLineRequest mirrors the client's stat form. Omitted counts are 0.
type statLineRequest struct {
	Position      string `json:"position" validate:"max=32"`
	GoalsScored   int    `json:"goalsScored" validate:"min=0"`
	Assists       int    `json:"assists" validate:"min=0"`
	ShotsOnTarget int    `json:"shotsOnTarget" validate:"min=0"`
	Tackles       int    `json:"tackles" validate:"min=0"`
	Interceptions int    `json:"interceptions" validate:"min=0"`
	Saves         int    `json:"saves" validate:"min=0"`
	YellowCards   int    `json:"yellowCards" validate:"min=0"`
	RedCards      int    `json:"redCards" validate:"min=0"`
	Fouls         int    `json:"fouls" validate:"min=0"`
	HeadersWon    int    `json:"headersWon" validate:"min=0"`
	Offsides      int    `json:"offsides" validate:"min=0"`
}

type warmLeaderboardsRequest struct {
	SeasonID   string   `json:"season_id" validate:"required"`
	PlayerIDs  []string `json:"player_ids" validate:"required,min=1,max=500,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"min=0,max=32"`
}

type seasonTotalsDTO struct {
	PlayerID string       `json:"playerId"`
	SeasonID string       `json:"seasonId"`
	Totals   stats.Totals `json:"totals"`
}

type recordedStatDTO struct {
	StatID             string `json:"statId"`
	GameID             string `json:"gameId"`
	PlayerTeamSeasonID string `json:"playerTeamSeasonId"`
}

type addFriendRequest struct {
	FriendUsername string `json:"friendUsername" validate:"required,max=64"`
}

type friendDTO struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Position  *string `json:"position"`
}

func newFriendDTO(p profile.Profile) friendDTO {
	return friendDTO{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		Position:  p.Position,
	}
}
