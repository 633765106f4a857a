package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry and evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records a feature version registration.
	RecordRegistration(ctx context.Context, entity string)

	// RecordDeprecation records a feature version deprecation.
	RecordDeprecation(ctx context.Context, entity string)

	// RecordLookup records a latest-version resolution and whether it hit.
	RecordLookup(ctx context.Context, hit bool)

	// RecordEvaluation records a feature evaluation with its duration
	// and error status.
	RecordEvaluation(ctx context.Context, feature string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations metric.Int64Counter
	deprecations  metric.Int64Counter
	lookups       metric.Int64Counter
	evaluations   metric.Int64Counter
	evalLatency   metric.Float64Histogram
	evalErrors    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("featurereg")

	registrations, err := meter.Int64Counter("featurereg.registry.registrations",
		metric.WithDescription("Number of feature version registrations"),
	)
	if err != nil {
		return nil, err
	}

	deprecations, err := meter.Int64Counter("featurereg.registry.deprecations",
		metric.WithDescription("Number of feature version deprecations"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("featurereg.registry.lookups",
		metric.WithDescription("Number of latest-version lookups"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("featurereg.feature.evaluations",
		metric.WithDescription("Number of feature evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("featurereg.feature.latency_ms",
		metric.WithDescription("Feature evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("featurereg.feature.errors",
		metric.WithDescription("Number of feature evaluation errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations: registrations,
		deprecations:  deprecations,
		lookups:       lookups,
		evaluations:   evaluations,
		evalLatency:   evalLatency,
		evalErrors:    evalErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegistration records a feature version registration.
func (m *otelMetrics) RecordRegistration(ctx context.Context, entity string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
	))
}

// RecordDeprecation records a feature version deprecation.
func (m *otelMetrics) RecordDeprecation(ctx context.Context, entity string) {
	m.deprecations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
	))
}

// RecordLookup records a latest-version resolution.
func (m *otelMetrics) RecordLookup(ctx context.Context, hit bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("hit", hit),
	))
}

// RecordEvaluation records a feature evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, feature string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("feature", feature),
	}

	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
