package nexus

import (
	"log/slog"

	"github.com/nexuskit/nexus/pkg/nexus/observability"
)

// NexusOption configures dispatcher behavior.
type NexusOption func(*Nexus)

// WithLogger enables structured logging for propagation runs.
// Logs include nexus, datum_name, datum_id, and correlation_id fields.
//
// Default: no logging.
func WithLogger(logger *slog.Logger) NexusOption {
	return func(n *Nexus) {
		n.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics recording.
//
// Uses the global OTel meter provider; configure it before the first
// Emit call. Default: disabled (no-op recorder).
func WithMetrics(enabled bool) NexusOption {
	return func(n *Nexus) {
		if enabled {
			n.metrics = observability.NewMetricsRecorder()
		} else {
			n.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing: a nexus.emit span per run
// with a nexus.datum.{name} child span per observed fact.
//
// Uses the global OTel tracer provider. Default: disabled.
func WithTracing(enabled bool) NexusOption {
	return func(n *Nexus) {
		n.tracing = enabled
		if enabled {
			n.spans = observability.NewSpanManager()
		} else {
			n.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMaxFacts bounds the number of facts observed per Emit call.
// When the bound is exceeded, Emit returns a MaxFactsError along with
// the facts observed so far.
//
// Default: 0 (unbounded). Unbounded derivation cycles are then a
// caller error: the loop runs until the queue drains.
func WithMaxFacts(max int) NexusOption {
	return func(n *Nexus) {
		if max > 0 {
			n.maxFacts = max
		}
	}
}
