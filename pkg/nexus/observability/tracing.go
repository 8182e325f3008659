package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the nexus tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("nexus")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEmitSpan starts a span for an entire propagation run.
	// Returns the context with span and the span itself.
	StartEmitSpan(ctx context.Context, nexusName string, seedCount int) (context.Context, trace.Span)

	// StartDatumSpan starts a span for one fact's observation.
	// The datum span should be a child of the emit span.
	StartDatumSpan(ctx context.Context, datumName, datumID string) (context.Context, trace.Span)

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

// StartEmitSpan starts a span for an entire propagation run.
func (m *otelSpanManager) StartEmitSpan(ctx context.Context, nexusName string, seedCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nexus.emit",
		trace.WithAttributes(
			attribute.String("nexus.name", nexusName),
			attribute.Int("nexus.seed_count", seedCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDatumSpan starts a span for one fact's observation.
func (m *otelSpanManager) StartDatumSpan(ctx context.Context, datumName, datumID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nexus.datum."+datumName,
		trace.WithAttributes(
			attribute.String("datum.name", datumName),
			attribute.String("datum.id", datumID),
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
