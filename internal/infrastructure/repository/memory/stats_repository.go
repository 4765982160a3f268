package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/stats"
	idgen "github.com/riskibarqy/kickstats/internal/platform/id"
)

type playerTeamSeasonKey struct {
	playerID string
	teamID   string
	seasonID string
}

type gameKey struct {
	homeTeamID string
	awayTeamID string
	date       time.Time
}

type statLine struct {
	id                 string
	playerID           string
	seasonID           string
	gameID             string
	playerTeamSeasonID string
	counts             stats.Counts
}

type playerAward struct {
	gameID   string
	playerID string
	seasonID string
	awardID  string
}

// StatsRepository mirrors the relational layout closely enough that totals aggregate
// the same way: per player, per season, distinct games.
type StatsRepository struct {
	mu sync.RWMutex

	ids               idgen.Generator
	playerTeamSeasons map[playerTeamSeasonKey]string
	games             map[gameKey]string
	lines             []statLine
	awards            []playerAward
	gameTournaments   map[[2]string]struct{}
}

func NewStatsRepository(ids idgen.Generator) *StatsRepository {
	return &StatsRepository{
		ids:               ids,
		playerTeamSeasons: make(map[playerTeamSeasonKey]string),
		games:             make(map[gameKey]string),
		gameTournaments:   make(map[[2]string]struct{}),
	}
}

func (r *StatsRepository) GetSeasonTotals(_ context.Context, playerIDs []string, seasonID string) (map[string]stats.RawTotals, error) {
	wanted := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[string]*stats.Totals)
	games := make(map[string]map[string]struct{})
	for _, line := range r.lines {
		if line.seasonID != seasonID {
			continue
		}
		if _, ok := wanted[line.playerID]; !ok {
			continue
		}
		t, ok := sums[line.playerID]
		if !ok {
			t = &stats.Totals{}
			sums[line.playerID] = t
			games[line.playerID] = make(map[string]struct{})
		}
		c := line.counts
		t.Goals += c.GoalsScored
		t.Assists += c.Assists
		t.Saves += c.Saves
		t.Tackles += c.Tackles
		t.Interceptions += c.Interceptions
		t.HeadersWon += c.HeadersWon
		t.YellowCards += c.YellowCards
		t.RedCards += c.RedCards
		t.Fouls += c.Fouls
		t.ShotsOnTarget += c.ShotsOnTarget
		t.Offsides += c.Offsides
		games[line.playerID][line.gameID] = struct{}{}
	}

	out := make(map[string]stats.RawTotals, len(sums))
	for playerID, t := range sums {
		out[playerID] = stats.RawTotals{
			Goals:         t.Goals,
			Assists:       t.Assists,
			Saves:         t.Saves,
			Tackles:       t.Tackles,
			Interceptions: t.Interceptions,
			HeadersWon:    t.HeadersWon,
			YellowCards:   t.YellowCards,
			RedCards:      t.RedCards,
			Fouls:         t.Fouls,
			ShotsOnTarget: t.ShotsOnTarget,
			Offsides:      t.Offsides,
			GamesPlayed:   len(games[playerID]),
		}
	}
	return out, nil
}

func (r *StatsRepository) RecordGameStat(_ context.Context, stat stats.GameStat) (stats.RecordedStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ptsKey := playerTeamSeasonKey{playerID: stat.PlayerID, teamID: stat.TeamID, seasonID: stat.SeasonID}
	ptsID, err := findOrCreateID(r.ids, r.playerTeamSeasons, ptsKey)
	if err != nil {
		return stats.RecordedStat{}, fmt.Errorf("resolve player team season: %w", err)
	}
	gameID, err := findOrCreateID(r.ids, r.games, gameKey{homeTeamID: stat.HomeTeamID, awayTeamID: stat.AwayTeamID, date: stat.Date})
	if err != nil {
		return stats.RecordedStat{}, fmt.Errorf("resolve game: %w", err)
	}

	statID, err := r.ids.NewID()
	if err != nil {
		return stats.RecordedStat{}, fmt.Errorf("generate stat id: %w", err)
	}
	r.lines = append(r.lines, statLine{
		id:                 statID,
		playerID:           stat.PlayerID,
		seasonID:           stat.SeasonID,
		gameID:             gameID,
		playerTeamSeasonID: ptsID,
		counts:             stat.Counts,
	})

	if stat.AwardID != "" {
		r.awards = append(r.awards, playerAward{gameID: gameID, playerID: stat.PlayerID, seasonID: stat.SeasonID, awardID: stat.AwardID})
	}
	if stat.TournamentID != "" {
		r.gameTournaments[[2]string{gameID, stat.TournamentID}] = struct{}{}
	}

	return stats.RecordedStat{StatID: statID, GameID: gameID, PlayerTeamSeasonID: ptsID}, nil
}

func findOrCreateID[K comparable](ids idgen.Generator, index map[K]string, key K) (string, error) {
	if id, ok := index[key]; ok {
		return id, nil
	}
	id, err := ids.NewID()
	if err != nil {
		return "", err
	}
	index[key] = id
	return id, nil
}
