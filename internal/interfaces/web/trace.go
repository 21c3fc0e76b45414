package web

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var webTracer = otel.Tracer("rankks/internal/interfaces/web")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// No parent span (filtered route like /healthz): no standalone root spans.
		return ctx, noopSpan
	}
	if !shouldCreateWebSpan(name) {
		return ctx, noopSpan
	}
	return webTracer.Start(ctx, name)
}

func shouldCreateWebSpan(name string) bool {
	return strings.HasPrefix(name, "web.Handler.")
}
