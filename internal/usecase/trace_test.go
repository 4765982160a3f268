package usecase

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartUsecaseSpan_WithoutParentIsNoop(t *testing.T) {
	t.Parallel()

	_, span := startUsecaseSpan(context.Background(), "usecase.LeaderboardService.Get")
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span without a parent")
	}
}

// Installs the global provider, so it does not run in parallel.
func TestStartUsecaseSpan_TagsComponentAndFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	parentCtx, parent := provider.Tracer("test").Start(context.Background(), "request")

	if _, span := startUsecaseSpan(parentCtx, "  "); span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span for blank name")
	}

	_, span := startUsecaseSpan(parentCtx, "usecase.LeaderboardService.Get", playerSeasonAttrs(" player-maya ", "2026-spring")...)
	boom := errors.New("boom")
	if got := failSpan(span, boom); !errors.Is(got, boom) {
		t.Fatalf("failSpan changed the error: %v", got)
	}
	if got := failSpan(span, nil); got != nil {
		t.Fatalf("expected nil passthrough, got %v", got)
	}
	span.End()
	parent.End()

	var found bool
	for _, ended := range recorder.Ended() {
		if ended.Name() != "usecase.LeaderboardService.Get" {
			continue
		}
		found = true

		attrs := map[attribute.Key]string{}
		for _, kv := range ended.Attributes() {
			attrs[kv.Key] = kv.Value.AsString()
		}
		if attrs[spanComponentKey] != "usecase" {
			t.Fatalf("expected usecase component, got %q", attrs[spanComponentKey])
		}
		if attrs[spanPlayerKey] != "player-maya" || attrs[spanSeasonKey] != "2026-spring" {
			t.Fatalf("unexpected player/season attributes: %v", attrs)
		}
		if ended.Status().Code != codes.Error {
			t.Fatalf("expected error status, got %v", ended.Status().Code)
		}
		if ended.Parent().SpanID() != parent.SpanContext().SpanID() {
			t.Fatalf("expected span to be a child of the request span")
		}
	}
	if !found {
		t.Fatalf("usecase span was not recorded")
	}
}
