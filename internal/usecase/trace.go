package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanComponentKey = attribute.Key("kickstats.component")
	spanPlayerKey    = attribute.Key("kickstats.player_id")
	spanSeasonKey    = attribute.Key("kickstats.season_id")
)

var usecaseTracer = otel.Tracer("kickstats/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan opens an internal child span tagged with the usecase component.
// Calls without a valid parent span get a no-op span, so jobs and tests never emit roots.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	name = strings.TrimSpace(name)
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	attrs = append(attrs, spanComponentKey.String("usecase"))
	return usecaseTracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func playerSeasonAttrs(playerID, seasonID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		spanPlayerKey.String(strings.TrimSpace(playerID)),
		spanSeasonKey.String(strings.TrimSpace(seasonID)),
	}
}

// failSpan marks span as errored and returns err unchanged.
func failSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
