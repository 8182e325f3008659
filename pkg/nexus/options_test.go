package nexus

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexuskit/nexus/pkg/nexus/observability"
)

func TestWithLogger(t *testing.T) {
	logger := slog.Default()
	nx := NewNexus("test", WithLogger(logger))
	assert.Same(t, logger, nx.logger)
}

func TestWithMetrics(t *testing.T) {
	nx := NewNexus("test", WithMetrics(true))
	assert.NotEqual(t, observability.NoopMetrics{}, nx.metrics)

	nx = NewNexus("test", WithMetrics(false))
	assert.Equal(t, observability.NoopMetrics{}, nx.metrics)
}

func TestWithTracing(t *testing.T) {
	nx := NewNexus("test", WithTracing(true))
	assert.True(t, nx.tracing)

	nx = NewNexus("test", WithTracing(false))
	assert.False(t, nx.tracing)
	assert.Equal(t, observability.NoopSpanManager{}, nx.spans)
}

func TestWithMaxFacts(t *testing.T) {
	nx := NewNexus("test", WithMaxFacts(100))
	assert.Equal(t, 100, nx.maxFacts)

	// Non-positive values keep the unbounded default.
	nx = NewNexus("test", WithMaxFacts(0))
	assert.Equal(t, 0, nx.maxFacts)
	nx = NewNexus("test", WithMaxFacts(-1))
	assert.Equal(t, 0, nx.maxFacts)
}

func TestDefaults(t *testing.T) {
	nx := NewNexus("test")
	assert.Nil(t, nx.logger)
	assert.Equal(t, observability.NoopMetrics{}, nx.metrics)
	assert.Equal(t, observability.NoopSpanManager{}, nx.spans)
	assert.False(t, nx.tracing)
	assert.Equal(t, 0, nx.maxFacts)
}
