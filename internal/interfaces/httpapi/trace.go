package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("kickstats/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler names only. Middleware and response helpers
// share the request span opened by otelhttp.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}

	attrs := []attribute.KeyValue{
		attribute.String("kickstats.component", "httpapi"),
		attribute.String("kickstats.handler", strings.TrimPrefix(name, handlerSpanPrefix)),
	}
	if principal, ok := PrincipalFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("kickstats.principal_id", principal.UserID))
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
