package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("seasonId"))

	view, err := h.leaderboardService.Get(ctx, playerID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "player_id", playerID, "season_id", seasonID, "error", err)
		writeLeaderboardError(ctx, w, err)
		return
	}

	writeLeaderboard(ctx, w, view)
}

func (h *Handler) GetLeaderboardComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardComparison")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonID := strings.TrimSpace(r.URL.Query().Get("seasonId"))

	view, err := h.leaderboardService.Compare(ctx, playerID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard comparison failed", "player_id", playerID, "season_id", seasonID, "error", err)
		writeLeaderboardError(ctx, w, err)
		return
	}

	writeLeaderboard(ctx, w, view)
}
