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

// MetricsRecorder records nexus metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDatum records one fact observation with its derived-fact count.
	RecordDatum(ctx context.Context, datumName string, derived int)

	// RecordEmit records a propagation run completion.
	RecordEmit(ctx context.Context, success bool, observed int, duration time.Duration)

	// RecordPrehensionError records a form failure.
	RecordPrehensionError(ctx context.Context, occasion string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	datumObserved    metric.Int64Counter
	datumDerived     metric.Int64Counter
	emitRuns         metric.Int64Counter
	emitLatency      metric.Float64Histogram
	emitFacts        metric.Int64Histogram
	prehensionErrors metric.Int64Counter
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
	meter := otel.Meter("nexus")

	datumObserved, err := meter.Int64Counter("nexus.datum.observed",
		metric.WithDescription("Number of facts observed during propagation"),
	)
	if err != nil {
		return nil, err
	}

	datumDerived, err := meter.Int64Counter("nexus.datum.derived",
		metric.WithDescription("Number of derived facts produced"),
	)
	if err != nil {
		return nil, err
	}

	emitRuns, err := meter.Int64Counter("nexus.emit.runs",
		metric.WithDescription("Number of propagation runs"),
	)
	if err != nil {
		return nil, err
	}

	emitLatency, err := meter.Float64Histogram("nexus.emit.latency_ms",
		metric.WithDescription("Propagation run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	emitFacts, err := meter.Int64Histogram("nexus.emit.facts",
		metric.WithDescription("Facts observed per propagation run"),
	)
	if err != nil {
		return nil, err
	}

	prehensionErrors, err := meter.Int64Counter("nexus.prehension.errors",
		metric.WithDescription("Number of form failures"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		datumObserved:    datumObserved,
		datumDerived:     datumDerived,
		emitRuns:         emitRuns,
		emitLatency:      emitLatency,
		emitFacts:        emitFacts,
		prehensionErrors: prehensionErrors,
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

// RecordDatum records one fact observation.
func (m *otelMetrics) RecordDatum(ctx context.Context, datumName string, derived int) {
	attrs := []attribute.KeyValue{
		attribute.String("datum_name", datumName),
	}

	m.datumObserved.Add(ctx, 1, metric.WithAttributes(attrs...))
	if derived > 0 {
		m.datumDerived.Add(ctx, int64(derived), metric.WithAttributes(attrs...))
	}
}

// RecordEmit records a propagation run.
func (m *otelMetrics) RecordEmit(ctx context.Context, success bool, observed int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.emitRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emitLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.emitFacts.Record(ctx, int64(observed), metric.WithAttributes(attrs...))
}

// RecordPrehensionError records a form failure.
func (m *otelMetrics) RecordPrehensionError(ctx context.Context, occasion string) {
	m.prehensionErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("occasion", occasion),
	))
}
