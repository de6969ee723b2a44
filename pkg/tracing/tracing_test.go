package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	rec := tracetest.NewSpanRecorder()
	shutdown := install(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec
}

func TestStartSpan_ParentChild(t *testing.T) {
	rec := installRecorder(t)

	ctx, parent := StartSpan(context.Background(), "order", "CreateOrder")
	_, child := StartSpan(ctx, "order", "LockBooks")
	child.SetAttributes(attribute.Int("books", 2))
	child.End()
	parent.End()

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "LockBooks", spans[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, spans[0].SpanContext().TraceID(), spans[1].SpanContext().TraceID())
	assert.NotEmpty(t, ExtractTraceID(ctx))
}

func TestRecordError(t *testing.T) {
	rec := installRecorder(t)

	_, span := StartSpan(context.Background(), "order", "CancelOrder")
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
