package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/kickstats/internal/config"
	"github.com/riskibarqy/kickstats/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	rt, err := Start(config.Config{ServiceName: "kickstats-api", AppEnv: config.EnvDev}, logging.NewNop())
	if err != nil {
		t.Fatalf("start runtime: %v", err)
	}
	if rt.PprofAddr() != "" {
		t.Fatalf("expected no pprof listener, got %q", rt.PprofAddr())
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown runtime: %v", err)
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown should be a no-op: %v", err)
	}
}

func TestTracingDisabledReason(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{name: "flag off", cfg: config.Config{UptraceDSN: "https://token@api.uptrace.dev"}, want: "UPTRACE_ENABLED=false"},
		{name: "blank dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  "}, want: "UPTRACE_DSN empty"},
		{name: "enabled", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "https://token@api.uptrace.dev"}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tracingDisabledReason(tc.cfg); got != tc.want {
				t.Fatalf("tracingDisabledReason()=%q want %q", got, tc.want)
			}
		})
	}
}

func TestProfilerConfig_Tags(t *testing.T) {
	got := profilerConfig(config.Config{
		PyroscopeAppName:       "kickstats-api",
		PyroscopeServerAddress: "http://localhost:4040",
		AppEnv:                 config.EnvStage,
		ServiceName:            "kickstats-api",
		ServiceVersion:         "1.2.3",
	})
	if got.ApplicationName != "kickstats-api" || got.ServerAddress != "http://localhost:4040" {
		t.Fatalf("unexpected profiler target: %+v", got)
	}
	if got.Tags["env"] != config.EnvStage || got.Tags["version"] != "1.2.3" {
		t.Fatalf("unexpected profiler tags: %v", got.Tags)
	}
	if len(got.ProfileTypes) != len(profileTypes) {
		t.Fatalf("expected all profile types to be enabled")
	}
}

func TestPprofMux_ServesNamedProfiles(t *testing.T) {
	mux := newPprofMux()

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/heap?debug=1", "/debug/pprof/goroutine?debug=1"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status=%d", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/debug/pprof/heap", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for DELETE, got %d", rec.Code)
	}
}

func TestStart_PprofListener(t *testing.T) {
	rt, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Shutdown(context.Background()) })

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + rt.PprofAddr() + "/debug/pprof/heap?debug=1")
	if err != nil {
		t.Fatalf("get heap profile: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("heap profile status=%d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown runtime: %v", err)
	}
}

func TestStart_PprofAddrInUse(t *testing.T) {
	first, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start first runtime: %v", err)
	}
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	if _, err := Start(config.Config{PprofEnabled: true, PprofAddr: first.PprofAddr()}, logging.NewNop()); err == nil {
		t.Fatalf("expected error when pprof address is taken")
	}
}
