package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	// All calls are safe and do nothing.
	m.RecordRegistration(ctx, "user")
	m.RecordDeprecation(ctx, "user")
	m.RecordLookup(ctx, true)
	m.RecordEvaluation(ctx, "user_7d_spend", time.Millisecond, errors.New("boom"))
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	spanCtx, span := sm.StartEvaluateSpan(ctx, "user_7d_spend", "user")
	assert.Equal(t, ctx, spanCtx, "noop span must not derive a new context")
	assert.False(t, span.IsRecording())

	spanCtx, span = sm.StartRegistrySpan(ctx, "register", "user_7d_spend")
	assert.Equal(t, ctx, spanCtx)

	sm.EndSpanWithError(span, errors.New("boom"))
	sm.EndSpanWithError(nil, nil)
	sm.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
}
