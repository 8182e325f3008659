package observability

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturingLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newCapturingLogger()

	enriched := EnrichLogger(logger, "orders", "order.placed", "id-1", "corr-1")
	require.NotNil(t, enriched)
	enriched.Info("hello")

	out := buf.String()
	assert.Contains(t, out, `"nexus":"orders"`)
	assert.Contains(t, out, `"datum_name":"order.placed"`)
	assert.Contains(t, out, `"datum_id":"id-1"`)
	assert.Contains(t, out, `"correlation_id":"corr-1"`)
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "orders", "n", "i", "c"))
}

func TestLogHelpers(t *testing.T) {
	logger, buf := newCapturingLogger()

	LogEmitStart(logger, "orders", 2)
	LogDatumObserved(logger, "order.placed", "id-1", "corr-1")
	LogDerived(logger, "auditor", "id-1", 3)
	LogPrehensionError(logger, "auditor", "order.placed", errors.New("boom"))
	LogEmitComplete(logger, "orders", 5, 1.5)
	LogEmitError(logger, "orders", errors.New("boom"), 1, 0.5)

	out := buf.String()
	assert.Contains(t, out, "emit starting")
	assert.Contains(t, out, "datum observed")
	assert.Contains(t, out, "facts derived")
	assert.Contains(t, out, "prehension failed")
	assert.Contains(t, out, "emit completed")
	assert.Contains(t, out, "emit failed")
	assert.Equal(t, 6, strings.Count(out, "\n"))
}

func TestLogHelpers_NilLoggerSafe(t *testing.T) {
	// None of these may panic with a nil logger.
	LogEmitStart(nil, "orders", 1)
	LogDatumObserved(nil, "n", "i", "c")
	LogDerived(nil, "o", "i", 0)
	LogPrehensionError(nil, "o", "n", errors.New("boom"))
	LogEmitComplete(nil, "orders", 1, 1)
	LogEmitError(nil, "orders", errors.New("boom"), 0, 1)
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, float64(0))
}
