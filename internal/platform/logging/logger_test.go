package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.With("component", "leaderboard").Info("built", "player_id", "p1", "entries", 3, "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "leaderboard" {
		t.Fatalf("missing component field: %+v", fields)
	}
	if fields["player_id"] != "p1" {
		t.Fatalf("missing player_id field: %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %+v", fields)
	}
}

func TestLogger_OddArgsAndLevelFilter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(core))

	logger.InfoContext(context.Background(), "dropped", "k", "v")
	logger.WarnContext(context.Background(), "kept", "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected only warn entry, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept: %+v", entries[0].ContextMap())
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", in, got, want)
		}
	}
}
