// Package observability provides production-grade observability features
// for nexus: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds propagation context to a logger.
// Returns a new logger with nexus, datum_name, datum_id, and
// correlation_id fields.
func EnrichLogger(logger *slog.Logger, nexusName, datumName, datumID, correlationID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("nexus", nexusName),
		slog.String("datum_name", datumName),
		slog.String("datum_id", datumID),
		slog.String("correlation_id", correlationID),
	)
}

// LogEmitStart logs the start of a propagation run.
func LogEmitStart(logger *slog.Logger, nexusName string, seedCount int) {
	if logger == nil {
		return
	}
	logger.Info("emit starting",
		slog.String("nexus", nexusName),
		slog.Int("seed_count", seedCount),
	)
}

// LogEmitComplete logs successful completion of a propagation run.
func LogEmitComplete(logger *slog.Logger, nexusName string, observed int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("emit completed",
		slog.String("nexus", nexusName),
		slog.Int("facts_observed", observed),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEmitError logs propagation run failure.
func LogEmitError(logger *slog.Logger, nexusName string, err error, observed int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("emit failed",
		slog.String("nexus", nexusName),
		slog.String("error", err.Error()),
		slog.Int("facts_observed", observed),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDatumObserved logs a fact being dequeued for observation.
func LogDatumObserved(logger *slog.Logger, datumName, datumID, correlationID string) {
	if logger == nil {
		return
	}
	logger.Debug("datum observed",
		slog.String("datum_name", datumName),
		slog.String("datum_id", datumID),
		slog.String("correlation_id", correlationID),
	)
}

// LogDerived logs facts derived by an occasion from one fact.
func LogDerived(logger *slog.Logger, occasion, datumID string, count int) {
	if logger == nil {
		return
	}
	logger.Debug("facts derived",
		slog.String("occasion", occasion),
		slog.String("datum_id", datumID),
		slog.Int("derived_count", count),
	)
}

// LogPrehensionError logs a form failure (fatal for the run).
func LogPrehensionError(logger *slog.Logger, occasion, datumName string, err error) {
	if logger == nil {
		return
	}
	logger.Error("prehension failed",
		slog.String("occasion", occasion),
		slog.String("datum_name", datumName),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
