package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the featurereg tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("featurereg")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvaluateSpan starts a span for a feature evaluation.
	StartEvaluateSpan(ctx context.Context, feature, entity string) (context.Context, trace.Span)

	// StartRegistrySpan starts a span for a registry operation.
	StartRegistrySpan(ctx context.Context, op string, feature string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartEvaluateSpan starts a span for a feature evaluation.
func (m *otelSpanManager) StartEvaluateSpan(ctx context.Context, feature, entity string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "featurereg.evaluate",
		trace.WithAttributes(
			attribute.String("feature.name", feature),
			attribute.String("feature.entity", entity),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRegistrySpan starts a span for a registry operation.
func (m *otelSpanManager) StartRegistrySpan(ctx context.Context, op string, feature string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "featurereg.registry."+op,
		trace.WithAttributes(
			attribute.String("feature.name", feature),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
