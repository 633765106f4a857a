// Package observability provides production-grade observability for
// featurereg: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds feature context to a logger.
// Returns a new logger with feature, entity, and version fields.
func EnrichLogger(logger *slog.Logger, name, entity, version string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("feature", name),
		slog.String("entity", entity),
		slog.String("version", version),
	)
}

// LogRegister logs a new feature version registration.
func LogRegister(logger *slog.Logger, name, entity, version string, deps int) {
	if logger == nil {
		return
	}
	logger.Info("feature version registered",
		slog.String("feature", name),
		slog.String("entity", entity),
		slog.String("version", version),
		slog.Int("dependencies", deps),
	)
}

// LogDeprecate logs deprecation of a feature's latest version.
func LogDeprecate(logger *slog.Logger, name, entity, version string) {
	if logger == nil {
		return
	}
	logger.Info("feature version deprecated",
		slog.String("feature", name),
		slog.String("entity", entity),
		slog.String("version", version),
	)
}

// LogLookupMiss logs a failed latest-version resolution.
func LogLookupMiss(logger *slog.Logger, name, entity string) {
	if logger == nil {
		return
	}
	logger.Debug("feature lookup miss",
		slog.String("feature", name),
		slog.String("entity", entity),
	)
}

// LogEvaluate logs a successful feature evaluation.
func LogEvaluate(logger *slog.Logger, name string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("feature evaluated",
		slog.String("feature", name),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs a failed feature evaluation.
func LogEvaluateError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("feature evaluation failed",
		slog.String("feature", name),
		slog.String("error", err.Error()),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}
