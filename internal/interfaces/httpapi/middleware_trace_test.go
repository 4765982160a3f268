package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	untraced := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz ", "/metrics", "/HEALTHZ"}
	for _, path := range untraced {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}

	traced := []string{"/v1/stats", "/v1/players/p1/leaderboard", "/v1/internal/jobs/warm-leaderboards", "/"}
	for _, path := range traced {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}
