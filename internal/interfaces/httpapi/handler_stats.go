package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/kickstats/internal/domain/stats"
	"github.com/riskibarqy/kickstats/internal/usecase"
)

func (h *Handler) GetSeasonTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonTotals")
	defer span.End()

	query := r.URL.Query()
	req := seasonTotalsRequest{
		PlayerIDs: splitQueryList(query.Get("playerIds")),
		SeasonID:  strings.TrimSpace(query.Get("seasonId")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.statService.SeasonTotals(ctx, req.PlayerIDs, req.SeasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season totals failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonTotalsDTO, 0, len(totals))
	for playerID, t := range totals {
		items = append(items, seasonTotalsDTO{PlayerID: playerID, SeasonID: req.SeasonID, Totals: t})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].PlayerID < items[j].PlayerID })

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordGameStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGameStat")
	defer span.End()

	var req recordGameStatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseGameDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	position := req.Position
	if strings.TrimSpace(position) == "" {
		position = req.Stats.Position
	}

	recorded, err := h.statService.RecordGameStat(ctx, usecase.RecordGameStatInput{
		PlayerID:     req.PlayerID,
		SeasonID:     req.SeasonID,
		TeamID:       req.TeamID,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		Date:         date,
		Position:     position,
		AwardID:      req.AwardID,
		TournamentID: req.TournamentID,
		Counts:       req.Stats.counts(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record game stat failed", "player_id", req.PlayerID, "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, recordedStatDTO{
		StatID:             recorded.StatID,
		GameID:             recorded.GameID,
		PlayerTeamSeasonID: recorded.PlayerTeamSeasonID,
	})
}

func (s statLineRequest) counts() stats.Counts {
	return stats.Counts{
		GoalsScored:   s.GoalsScored,
		Assists:       s.Assists,
		ShotsOnTarget: s.ShotsOnTarget,
		Tackles:       s.Tackles,
		Interceptions: s.Interceptions,
		Saves:         s.Saves,
		YellowCards:   s.YellowCards,
		RedCards:      s.RedCards,
		Fouls:         s.Fouls,
		HeadersWon:    s.HeadersWon,
		Offsides:      s.Offsides,
	}
}

// parseGameDate accepts a calendar date or a full RFC 3339 timestamp.
func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC3339", usecase.ErrInvalidInput)
	}
	return t, nil
}

func splitQueryList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
