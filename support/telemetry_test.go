package support

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func disablesTracingByDefault(t *testing.T) {
	tracing, cleanup, err := newTracing(context.TODO(), DefaultConfig(), &bytes.Buffer{})
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, tracing.Enabled())
	assert.Equal(t, ExporterNone, tracing.Exporter)
}

func exportsSpansToConsole(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	var console bytes.Buffer
	cfg := DefaultConfig()
	cfg.TraceExporter = ExporterConsole

	tracing, cleanup, err := newTracing(context.TODO(), cfg, &console)
	require.NoError(t, err)
	assert.True(t, tracing.Enabled())

	_, span := otel.Tracer("test").Start(context.TODO(), "counter increase")
	span.End()
	cleanup()

	assert.Contains(t, console.String(), "counter increase")
	assert.Contains(t, console.String(), ServiceName)
}

func rejectsUnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TraceExporter = "zipkin"

	_, _, err := newTracing(context.TODO(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTracing(t *testing.T) {
	t.Run("disables tracing by default", disablesTracingByDefault)
	t.Run("exports spans to console", exportsSpansToConsole)
	t.Run("rejects unknown exporter", rejectsUnknownExporter)
}
