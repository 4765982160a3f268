package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/kickstats/internal/usecase"
)

func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFriends")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	friends, err := h.friendService.ListFriends(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list friends failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]friendDTO, 0, len(friends))
	for _, p := range friends {
		items = append(items, newFriendDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFriend")
	defer span.End()

	playerID, err := ownedPlayerID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	added, err := h.friendService.AddFriend(ctx, playerID, req.FriendUsername)
	if err != nil {
		h.logger.WarnContext(ctx, "add friend failed", "player_id", playerID, "friend_username", req.FriendUsername, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, newFriendDTO(added))
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFriend")
	defer span.End()

	playerID, err := ownedPlayerID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	username := strings.TrimSpace(r.URL.Query().Get("friendUsername"))
	if err := h.friendService.RemoveFriend(ctx, playerID, username); err != nil {
		h.logger.WarnContext(ctx, "remove friend failed", "player_id", playerID, "friend_username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

// ownedPlayerID returns the path player id when it belongs to the caller. Only the owner
// may change a friend list.
func ownedPlayerID(ctx context.Context, r *http.Request) (string, error) {
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	if principal.UserID != playerID {
		return "", fmt.Errorf("%w: cannot change friends of player=%s", usecase.ErrForbidden, playerID)
	}
	return playerID, nil
}
