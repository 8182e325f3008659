package nexus

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	buf   *bytes.Buffer
	level slog.Level
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	enc := json.NewEncoder(h.buf)
	return enc.Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *testLogHandler) getRecords() []map[string]any {
	var records []map[string]any
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for _, line := range lines {
		if len(line) > 0 {
			var m map[string]any
			if err := json.Unmarshal(line, &m); err == nil {
				records = append(records, m)
			}
		}
	}
	return records
}

func TestEmit_WithLogger(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	nx := NewNexus("orders", WithLogger(logger)).
		Add(reactNamed("a", "input", "derived"))

	_, err := nx.Emit(context.Background(), New("input", nil))
	require.NoError(t, err)

	records := h.getRecords()
	require.NotEmpty(t, records, "expected log records")

	var foundStart, foundComplete bool
	var observedCount int
	for _, r := range records {
		msg, _ := r["msg"].(string)
		switch msg {
		case "emit starting":
			foundStart = true
			assert.Equal(t, "orders", r["nexus"])
		case "emit completed":
			foundComplete = true
			assert.Equal(t, float64(2), r["facts_observed"])
		case "datum observed":
			observedCount++
			assert.NotEmpty(t, r["datum_id"])
		}
	}

	assert.True(t, foundStart, "expected 'emit starting' record")
	assert.True(t, foundComplete, "expected 'emit completed' record")
	assert.Equal(t, 2, observedCount, "expected one 'datum observed' record per fact")
}

func TestEmit_WithLogger_Error(t *testing.T) {
	h := newTestLogHandler()
	logger := slog.New(h)

	panicking := NewOccasion("panicking", nil).
		On(Any(), func(_ context.Context, _ *ActualOccasion, _ Datum) ([]Datum, error) {
			panic("kaboom")
		})
	nx := NewNexus("orders", WithLogger(logger)).Add(panicking)

	_, err := nx.Emit(context.Background(), New("input", nil))
	require.Error(t, err)

	var foundFailed bool
	for _, r := range h.getRecords() {
		if r["msg"] == "emit failed" {
			foundFailed = true
			assert.Contains(t, r["error"], "kaboom")
		}
	}
	assert.True(t, foundFailed, "expected 'emit failed' record")
}

func TestEmit_WithTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	nx := NewNexus("orders", WithTracing(true)).
		Add(reactNamed("a", "input", "derived"))

	_, err := nx.Emit(context.Background(), New("input", nil))
	require.NoError(t, err)

	spans := recorder.Ended()
	spanNames := make(map[string]bool, len(spans))
	for _, s := range spans {
		spanNames[s.Name()] = true
	}

	assert.True(t, spanNames["nexus.emit"], "expected a nexus.emit span, got %v", spanNames)
	assert.True(t, spanNames["nexus.datum.input"], "expected a nexus.datum.input span")
	assert.True(t, spanNames["nexus.datum.derived"], "expected a nexus.datum.derived span")
}

func TestEmit_WithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	nx := NewNexus("orders", WithMetrics(true)).
		Add(reactNamed("a", "input", "derived"))

	_, err := nx.Emit(context.Background(), New("input", nil))
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			found[m.Name] = true
		}
	}

	assert.True(t, found["nexus.datum.observed"], "expected nexus.datum.observed, got %v", found)
	assert.True(t, found["nexus.datum.derived"], "expected nexus.datum.derived")
	assert.True(t, found["nexus.emit.runs"], "expected nexus.emit.runs")
	assert.True(t, found["nexus.emit.latency_ms"], "expected nexus.emit.latency_ms")
}
