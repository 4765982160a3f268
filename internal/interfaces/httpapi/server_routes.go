package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedLeaderboardRoutes(mux, handler, verifier)
	registerAuthorizedStatRoutes(mux, handler, verifier)
	registerAuthorizedFriendRoutes(mux, handler, verifier)
}

func registerAuthorizedLeaderboardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players/{playerID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/players/{playerID}/leaderboard/comparison", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboardComparison)))
}

func registerAuthorizedStatRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetSeasonTotals)))
	mux.Handle("POST /v1/stats", RequireAuth(verifier, http.HandlerFunc(handler.RecordGameStat)))
}

func registerAuthorizedFriendRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/players/{playerID}/friends", RequireAuth(verifier, http.HandlerFunc(handler.ListFriends)))
	mux.Handle("POST /v1/players/{playerID}/friends", RequireAuth(verifier, http.HandlerFunc(handler.AddFriend)))
	mux.Handle("DELETE /v1/players/{playerID}/friends", RequireAuth(verifier, http.HandlerFunc(handler.RemoveFriend)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/warm-leaderboards", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmLeaderboardsJob)))
}
