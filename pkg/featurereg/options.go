package featurereg

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/featurereg/pkg/featurereg/journal"
	"github.com/randalmurphal/featurereg/pkg/featurereg/observability"
)

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the structured logger for registry events.
// Default: no logging.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder for registry operations.
// Default: observability.NoopMetrics.
//
// Example:
//
//	r := featurereg.NewRegistry(
//	    featurereg.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(recorder observability.MetricsRecorder) RegistryOption {
	return func(r *Registry) {
		if recorder != nil {
			r.metrics = recorder
		}
	}
}

// WithJournal sets an append-only store that receives every register
// and deprecate transition. Journal failures are logged, never
// propagated; durability is best-effort by design.
// Default: no journal.
func WithJournal(store journal.Store) RegistryOption {
	return func(r *Registry) {
		r.journal = store
	}
}

// WithClock overrides the time source used for CreatedAt and journal
// timestamps. Intended for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithVersionFunc overrides version token minting. The registry retries
// on per-key collision, so the supplied func only needs to be
// eventually unique. Default: uuid.NewString.
func WithVersionFunc(fn func() string) RegistryOption {
	return func(r *Registry) {
		if fn != nil {
			r.newVersion = fn
		}
	}
}
