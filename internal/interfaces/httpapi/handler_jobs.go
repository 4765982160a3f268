package httpapi

import (
	"net/http"

	"github.com/riskibarqy/kickstats/internal/usecase"
)

func (h *Handler) RunWarmLeaderboardsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmLeaderboardsJob")
	defer span.End()

	var req warmLeaderboardsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leaderboardService.Warm(ctx, usecase.WarmLeaderboardsInput{
		SeasonID:   req.SeasonID,
		PlayerIDs:  req.PlayerIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warm leaderboards job failed", "season_id", req.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
