package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

var (
	_ MetricsRecorder = NoopMetrics{}
	_ SpanManager     = NoopSpanManager{}
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	t.Run("RecordFire", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordFire(ctx, "List<String>", time.Millisecond, 1, nil)
			m.RecordFire(ctx, "", 0, 0, errors.New("boom"))
		})
	})

	t.Run("RecordDelivery", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordDelivery(ctx, "List<String>", time.Millisecond, nil)
		})
	})

	t.Run("RecordIllegalType", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordIllegalType(ctx)
		})
	})

	t.Run("nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordFire(nil, "T", 0, 0, nil) //nolint:staticcheck
		})
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	t.Run("StartFireSpan", func(t *testing.T) {
		assert.NotPanics(t, func() {
			got, span := sm.StartFireSpan(ctx, "fire-1", "List<String>")
			assert.Equal(t, ctx, got)
			span.End()
		})
	})

	t.Run("StartDeliverySpan", func(t *testing.T) {
		assert.NotPanics(t, func() {
			got, span := sm.StartDeliverySpan(ctx, "Collection<String>")
			assert.Equal(t, ctx, got)
			span.End()
		})
	})

	t.Run("EndSpanWithError", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_, span := sm.StartFireSpan(ctx, "fire-1", "T")
			sm.EndSpanWithError(span, errors.New("boom"))
			sm.EndSpanWithError(span, nil)
		})
	})

	t.Run("AddSpanEvent", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "listener.matched", attribute.String("type", "T"))
		})
	})
}
