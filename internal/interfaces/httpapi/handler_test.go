package httpapi

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/kickstats/internal/domain/friend"
	"github.com/riskibarqy/kickstats/internal/infrastructure/auth"
	"github.com/riskibarqy/kickstats/internal/infrastructure/leaderboardcache"
	"github.com/riskibarqy/kickstats/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/kickstats/internal/platform/id"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
	"github.com/riskibarqy/kickstats/internal/usecase"
)

const (
	testJWTSecret = "handler-test-secret"
	testJobToken  = "job-token"
)

type testServer struct {
	router http.Handler
	token  string
}

type failingFriends struct{}

func (failingFriends) GetFriendIDs(context.Context, string) ([]string, error) {
	return nil, errors.New("connection refused")
}

func (failingFriends) AddFriend(context.Context, string, string) error {
	return errors.New("connection refused")
}

func (failingFriends) RemoveFriend(context.Context, string, string) error {
	return errors.New("connection refused")
}

type leaderboardBody struct {
	APIVersion string `json:"apiVersion"`
	Cached     bool   `json:"cached"`
	TTLMs      int64  `json:"ttlMs"`
	Data       []struct {
		Player struct {
			ID       string `json:"id"`
			FullName string `json:"full_name"`
		} `json:"player"`
		Points int             `json:"points"`
		Badges map[string]bool `json:"badges"`
		Streak int             `json:"streak"`
	} `json:"data"`
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func newTestServer(t *testing.T, friends friend.Repository) testServer {
	t.Helper()

	ctx := context.Background()
	statsRepo := memory.NewStatsRepository(idgen.NewUUIDGenerator())
	if err := memory.LoadGameStats(ctx, statsRepo, memory.SeedGameStats()); err != nil {
		t.Fatalf("load seed stats: %v", err)
	}
	if friends == nil {
		friends = memory.NewFriendRepository(memory.SeedFriendships())
	}

	logger := logging.NewNop()
	profiles := memory.NewProfileRepository(memory.SeedProfiles())
	builder := usecase.NewLeaderboardBuilder(friends, profiles, statsRepo)
	leaderboards := usecase.NewLeaderboardService(builder, leaderboardcache.NewMemoryCache(nil), usecase.LeaderboardServiceConfig{}, nil, logger)
	statService := usecase.NewStatService(statsRepo, leaderboards, logger)
	friendService := usecase.NewFriendService(friends, profiles, leaderboards, logger)

	verifier := auth.NewJWTVerifier(testJWTSecret)
	token, err := verifier.Sign(auth.Claims{ID: memory.PlayerIDMaya})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	router := NewRouter(NewHandler(leaderboards, statService, friendService, logger), verifier, logger, RouterConfig{
		CORSAllowedOrigins: []string{"*"},
		InternalJobToken:   testJobToken,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		}),
	})
	return testServer{router: router, token: token}
}

func (s testServer) do(t *testing.T, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s testServer) authed(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, target, body, map[string]string{"Authorization": "Bearer " + s.token})
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal body %q: %v", rec.Body.String(), err)
	}
	return out
}

func leaderboardPath(playerID string) string {
	return "/v1/players/" + playerID + "/leaderboard?seasonId=" + memory.SeasonIDSpring2026
}

func TestLeaderboard_RequiresBearerToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil, map[string]string{"Authorization": "Bearer forged.token.value"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", rec.Code)
	}
	body := decodeBody[errorBody](t, rec)
	if body.Error.Status != "UNAUTHENTICATED" {
		t.Fatalf("unexpected error status: %q", body.Error.Status)
	}
}

func TestLeaderboard_BuildsThenServesFromCache(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	first := srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", first.Code, first.Body.String())
	}
	body := decodeBody[leaderboardBody](t, first)
	if body.Cached {
		t.Fatalf("first request must not be cached")
	}
	if body.TTLMs != 45000 {
		t.Fatalf("unexpected ttlMs: %d", body.TTLMs)
	}
	if len(body.Data) != 3 {
		t.Fatalf("expected requester plus two friends, got %d entries", len(body.Data))
	}

	// Maya and Sofia tie on 22 points; full name breaks the tie.
	wantOrder := []string{memory.PlayerIDMaya, memory.PlayerIDSofia, memory.PlayerIDLeo}
	wantPoints := []int{22, 22, 18}
	for i, entry := range body.Data {
		if entry.Player.ID != wantOrder[i] || entry.Points != wantPoints[i] {
			t.Fatalf("entry %d: want %s/%d got %s/%d", i, wantOrder[i], wantPoints[i], entry.Player.ID, entry.Points)
		}
	}
	maya := body.Data[0]
	if !maya.Badges["hatTrickHero"] || !maya.Badges["neverTired"] || maya.Badges["playmaker"] {
		t.Fatalf("unexpected badges for maya: %+v", maya.Badges)
	}
	if maya.Streak != 3 {
		t.Fatalf("unexpected streak for maya: %d", maya.Streak)
	}
	if !body.Data[1].Badges["wallOfFame"] {
		t.Fatalf("expected wallOfFame for sofia: %+v", body.Data[1].Badges)
	}

	second := srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil)
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", second.Code)
	}
	cached := decodeBody[leaderboardBody](t, second)
	if !cached.Cached || cached.TTLMs != 45000 {
		t.Fatalf("expected cached response, got cached=%v ttlMs=%d", cached.Cached, cached.TTLMs)
	}
	if len(cached.Data) != len(body.Data) {
		t.Fatalf("cached data differs from built data")
	}
}

func TestLeaderboard_Comparison(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.authed(t, http.MethodGet, "/v1/players/"+memory.PlayerIDMaya+"/leaderboard/comparison?seasonId="+memory.SeasonIDSpring2026, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[leaderboardBody](t, rec)
	if body.Cached || body.TTLMs != 0 {
		t.Fatalf("comparison must never be cached: cached=%v ttlMs=%d", body.Cached, body.TTLMs)
	}
	wantOrder := []string{memory.PlayerIDMaya, memory.PlayerIDSofia, memory.PlayerIDLeo}
	wantPoints := []int{60, 59, 54}
	for i, entry := range body.Data {
		if entry.Player.ID != wantOrder[i] || entry.Points != wantPoints[i] {
			t.Fatalf("entry %d: want %s/%d got %s/%d", i, wantOrder[i], wantPoints[i], entry.Player.ID, entry.Points)
		}
	}
	if _, ok := body.Data[0].Badges["goalGetter"]; !ok {
		t.Fatalf("expected comparison badges, got %+v", body.Data[0].Badges)
	}
}

func TestLeaderboard_ErrorMapping(t *testing.T) {
	t.Parallel()

	t.Run("missing season", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, nil)
		rec := srv.authed(t, http.MethodGet, "/v1/players/"+memory.PlayerIDMaya+"/leaderboard", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown requester", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, nil)
		rec := srv.authed(t, http.MethodGet, leaderboardPath("player-ghost"), nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("dependency failure hides details", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, failingFriends{})
		rec := srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		body := decodeBody[errorBody](t, rec)
		if body.Error.Message != "unable to build leaderboard" {
			t.Fatalf("unexpected message: %q", body.Error.Message)
		}
	})
}

func TestRecordGameStat_InvalidatesLeaderboards(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	if rec := srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil); rec.Code != http.StatusOK {
		t.Fatalf("warm leaderboard: %d", rec.Code)
	}

	payload := []byte(`{
		"playerId": "player-leo",
		"seasonId": "season-2026-spring",
		"teamId": "team-river-hawks",
		"homeTeamId": "team-river-hawks",
		"awayTeamId": "team-north-stars",
		"date": "2026-03-28",
		"position": "midfielder",
		"stats": {"assists": 1}
	}`)
	rec := srv.authed(t, http.MethodPost, "/v1/stats", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[struct {
		Data recordedStatDTO `json:"data"`
	}](t, rec)
	if created.Data.StatID == "" || created.Data.GameID == "" {
		t.Fatalf("expected ids in response: %+v", created.Data)
	}

	rebuilt := decodeBody[leaderboardBody](t, srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil))
	if rebuilt.Cached {
		t.Fatalf("leaderboard must be rebuilt after a stat write")
	}
	if got := rebuilt.Data[2]; got.Player.ID != memory.PlayerIDLeo || got.Points != 21 {
		t.Fatalf("unexpected leo entry after write: %s/%d", got.Player.ID, got.Points)
	}
}

func TestRecordGameStat_Validation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	cases := map[string]string{
		"unknown field": `{"playerId":"p","seasonId":"s","teamId":"t","homeTeamId":"h","awayTeamId":"a","date":"2026-03-01","bogus":1}`,
		"same teams":    `{"playerId":"p","seasonId":"s","teamId":"t","homeTeamId":"h","awayTeamId":"h","date":"2026-03-01"}`,
		"bad date":      `{"playerId":"p","seasonId":"s","teamId":"t","homeTeamId":"h","awayTeamId":"a","date":"March 1"}`,
		"negative":      `{"playerId":"p","seasonId":"s","teamId":"t","homeTeamId":"h","awayTeamId":"a","date":"2026-03-01","stats":{"goalsScored":-1}}`,
		"missing team":  `{"playerId":"p","seasonId":"s","homeTeamId":"h","awayTeamId":"a","date":"2026-03-01"}`,
		"not json":      `{`,
	}
	for name, payload := range cases {
		rec := srv.authed(t, http.MethodPost, "/v1/stats", []byte(payload))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestGetSeasonTotals(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rec := srv.authed(t, http.MethodGet, "/v1/stats?playerIds=player-maya,player-iris&seasonId="+memory.SeasonIDSpring2026, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[struct {
		Data []seasonTotalsDTO `json:"data"`
	}](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 items, got %d", len(body.Data))
	}
	if body.Data[0].PlayerID != memory.PlayerIDIris || body.Data[0].Totals.GamesPlayed != 0 {
		t.Fatalf("expected zero totals for iris first: %+v", body.Data[0])
	}
	if body.Data[1].Totals.Goals != 4 || body.Data[1].Totals.GamesPlayed != 3 {
		t.Fatalf("unexpected maya totals: %+v", body.Data[1].Totals)
	}

	if rec := srv.authed(t, http.MethodGet, "/v1/stats?seasonId=s", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without playerIds, got %d", rec.Code)
	}
}

func TestWarmLeaderboardsJob(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	payload := []byte(`{"season_id":"season-2026-spring","player_ids":["player-maya","player-noah","player-ghost"]}`)

	if rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/warm-leaderboards", payload, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}

	rec := srv.do(t, http.MethodPost, "/v1/internal/jobs/warm-leaderboards", payload, map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[struct {
		Data usecase.WarmLeaderboardsResult `json:"data"`
	}](t, rec)
	if body.Data.Requested != 3 || body.Data.WarmedCount != 2 || body.Data.FailedCount != 1 {
		t.Fatalf("unexpected warm result: %+v", body.Data)
	}

	cached := decodeBody[leaderboardBody](t, srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDNoah), nil))
	if !cached.Cached {
		t.Fatalf("expected warmed leaderboard to be cached")
	}
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	if rec := srv.do(t, http.MethodGet, "/healthz", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	rec := srv.do(t, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "# metrics\n" {
		t.Fatalf("metrics: unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestFriends_AddAndRemoveRebuildLeaderboard(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	friendsPath := "/v1/players/" + memory.PlayerIDMaya + "/friends"

	warm := decodeBody[leaderboardBody](t, srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil))
	if len(warm.Data) != 3 {
		t.Fatalf("expected seeded board of 3, got %d", len(warm.Data))
	}

	rec := srv.authed(t, http.MethodPost, friendsPath, []byte(`{"friendUsername":"noah4"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	added := decodeBody[struct {
		Data friendDTO `json:"data"`
	}](t, rec)
	if added.Data.ID != memory.PlayerIDNoah || added.Data.Username != "noah4" {
		t.Fatalf("unexpected added friend: %+v", added.Data)
	}

	grown := decodeBody[leaderboardBody](t, srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil))
	if grown.Cached || len(grown.Data) != 4 {
		t.Fatalf("expected rebuilt board of 4 after add, cached=%v entries=%d", grown.Cached, len(grown.Data))
	}

	listed := decodeBody[struct {
		Data []friendDTO `json:"data"`
	}](t, srv.authed(t, http.MethodGet, friendsPath, nil))
	var usernames []string
	for _, f := range listed.Data {
		usernames = append(usernames, f.Username)
	}
	if strings.Join(usernames, ",") != "leo_mid,noah4,sofia_gk" {
		t.Fatalf("unexpected friend list: %v", usernames)
	}

	rec = srv.authed(t, http.MethodDelete, friendsPath+"?friendUsername=noah4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on remove, got %d: %s", rec.Code, rec.Body.String())
	}
	shrunk := decodeBody[leaderboardBody](t, srv.authed(t, http.MethodGet, leaderboardPath(memory.PlayerIDMaya), nil))
	if shrunk.Cached || len(shrunk.Data) != 3 {
		t.Fatalf("expected rebuilt board of 3 after remove, cached=%v entries=%d", shrunk.Cached, len(shrunk.Data))
	}
}

func TestFriends_ErrorMapping(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	mayaFriends := "/v1/players/" + memory.PlayerIDMaya + "/friends"

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "duplicate pair", method: http.MethodPost, target: mayaFriends, body: `{"friendUsername":"leo_mid"}`, wantStatus: http.StatusConflict},
		{name: "unknown username", method: http.MethodPost, target: mayaFriends, body: `{"friendUsername":"ghost"}`, wantStatus: http.StatusNotFound},
		{name: "self", method: http.MethodPost, target: mayaFriends, body: `{"friendUsername":"maya10"}`, wantStatus: http.StatusBadRequest},
		{name: "missing username", method: http.MethodPost, target: mayaFriends, body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "other player's list", method: http.MethodPost, target: "/v1/players/" + memory.PlayerIDLeo + "/friends", body: `{"friendUsername":"noah4"}`, wantStatus: http.StatusForbidden},
		{name: "remove unlinked", method: http.MethodDelete, target: mayaFriends + "?friendUsername=iris", wantStatus: http.StatusNotFound},
		{name: "remove without username", method: http.MethodDelete, target: mayaFriends, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var body []byte
			if tc.body != "" {
				body = []byte(tc.body)
			}
			rec := srv.authed(t, tc.method, tc.target, body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}

	if rec := srv.do(t, http.MethodGet, mayaFriends, nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
