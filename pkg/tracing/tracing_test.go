package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestInitTracing_Disabled(t *testing.T) {
	tp, err := InitTracing(TracingConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.NotNil(t, otel.GetTextMapPropagator())
	Shutdown(context.Background(), tp, zap.NewNop())
}

func TestStartSpan_TagsDraft(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	_, span := StartSpan(context.Background(), "draft.submit", "draft-1")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "draft.submit", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("draft.id", "draft-1"))
}
