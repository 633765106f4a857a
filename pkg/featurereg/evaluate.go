package featurereg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/featurereg/pkg/featurereg/observability"
)

// Validate checks a computed value's runtime type tag against the
// feature's declared value type. A mismatch returns a
// *TypeMismatchError carrying the feature name and both tags.
//
// This is what catches training/serving skew early: if one pipeline
// produces a float where the contract says int, the defect surfaces
// here instead of silently degrading a model.
func Validate(f Feature, value any) error {
	md := f.Metadata()
	got := TypeOf(value)
	if got != md.ValueType {
		return &TypeMismatchError{
			Feature: md.Name,
			Want:    md.ValueType,
			Got:     got,
			GoType:  fmt.Sprintf("%T", value),
		}
	}
	return nil
}

// Evaluate runs Compute over raw data at eventTime, validates the
// result against the contract, and returns it. It is the mandated
// entry point for feature execution; routing all computation through
// here is what lets cross-cutting behavior (logging, caching, lineage)
// be layered on without touching individual features.
//
// A validation failure yields no value — there is no partial result.
// An error from Compute itself propagates untouched.
func Evaluate(f Feature, raw RawData, eventTime time.Time) (any, error) {
	value, err := f.Compute(raw, eventTime)
	if err != nil {
		return nil, err
	}
	if err := Validate(f, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Evaluator wraps Evaluate with the cross-cutting layer the entry
// point exists for: structured logging, metrics, and tracing around
// each evaluation. The zero configuration is fully no-op, so an
// Evaluator behaves exactly like the plain Evaluate function until
// observability is opted in.
type Evaluator struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithEvaluationLogger sets the structured logger for evaluations.
func WithEvaluationLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithEvaluationMetrics sets the metrics recorder for evaluations.
func WithEvaluationMetrics(recorder observability.MetricsRecorder) EvaluatorOption {
	return func(e *Evaluator) {
		if recorder != nil {
			e.metrics = recorder
		}
	}
}

// WithEvaluationTracing sets the span manager for evaluations.
func WithEvaluationTracing(spans observability.SpanManager) EvaluatorOption {
	return func(e *Evaluator) {
		if spans != nil {
			e.spans = spans
		}
	}
}

// NewEvaluator creates an Evaluator. Without options it logs nothing,
// records nothing, and traces nothing.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the feature through the mandated compute-then-validate
// path, surrounded by the configured telemetry. The context carries
// trace propagation only; evaluation itself never blocks on it.
func (e *Evaluator) Evaluate(ctx context.Context, f Feature, raw RawData, eventTime time.Time) (any, error) {
	md := f.Metadata()
	ctx, span := e.spans.StartEvaluateSpan(ctx, md.Name, md.Entity)

	start := time.Now()
	value, err := Evaluate(f, raw, eventTime)
	duration := time.Since(start)

	e.metrics.RecordEvaluation(ctx, md.Name, duration, err)
	if err != nil {
		observability.LogEvaluateError(e.logger, md.Name, err)
	} else {
		observability.LogEvaluate(e.logger, md.Name, float64(duration.Microseconds())/1000.0)
	}
	e.spans.EndSpanWithError(span, err)

	return value, err
}
