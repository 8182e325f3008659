package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSpanManager_NoProvider(t *testing.T) {
	// Without a configured tracer provider the global no-op tracer is
	// used; span lifecycle must still be safe.
	m := NewSpanManager()
	require.NotNil(t, m)

	ctx, emitSpan := m.StartEmitSpan(context.Background(), "orders", 2)
	assert.NotNil(t, emitSpan)

	datumCtx, datumSpan := m.StartDatumSpan(ctx, "order.placed", "id-1")
	assert.NotNil(t, datumSpan)

	m.AddSpanEvent(datumCtx, "nexus.datum.fanout", attribute.Int("derived_count", 1))
	m.EndSpanWithError(datumSpan, nil)
	m.EndSpanWithError(emitSpan, errors.New("boom"))
	m.EndSpanWithError(nil, nil)
}
