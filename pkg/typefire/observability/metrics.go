package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records typefire dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordFire records a completed Fire call with its duration, how many
	// listeners matched, and whether it failed.
	RecordFire(ctx context.Context, eventType string, duration time.Duration, matched int, err error)

	// RecordDelivery records a single listener delivery.
	RecordDelivery(ctx context.Context, eventType string, duration time.Duration, err error)

	// RecordIllegalType records the exclusion of an illegal candidate
	// event type.
	RecordIllegalType(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	fires           metric.Int64Counter
	fireLatency     metric.Float64Histogram
	deliveries      metric.Int64Counter
	deliveryErrs    metric.Int64Counter
	deliveryLatency metric.Float64Histogram
	matched         metric.Int64Histogram
	illegalTypes    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("typefire")

	fires, err := meter.Int64Counter("typefire.fires",
		metric.WithDescription("Number of Fire calls"),
	)
	if err != nil {
		return nil, err
	}

	fireLatency, err := meter.Float64Histogram("typefire.fire.latency_ms",
		metric.WithDescription("Fire latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	deliveries, err := meter.Int64Counter("typefire.deliveries",
		metric.WithDescription("Number of listener deliveries"),
	)
	if err != nil {
		return nil, err
	}

	deliveryErrs, err := meter.Int64Counter("typefire.delivery.errors",
		metric.WithDescription("Number of listener delivery errors"),
	)
	if err != nil {
		return nil, err
	}

	deliveryLatency, err := meter.Float64Histogram("typefire.delivery.latency_ms",
		metric.WithDescription("Listener delivery latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	matched, err := meter.Int64Histogram("typefire.fire.matched_listeners",
		metric.WithDescription("Listeners matched per Fire call"),
	)
	if err != nil {
		return nil, err
	}

	illegalTypes, err := meter.Int64Counter("typefire.illegal_types",
		metric.WithDescription("Illegal candidate event types excluded"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		fires:           fires,
		fireLatency:     fireLatency,
		deliveries:      deliveries,
		deliveryErrs:    deliveryErrs,
		deliveryLatency: deliveryLatency,
		matched:         matched,
		illegalTypes:    illegalTypes,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordFire records a completed Fire call.
func (m *otelMetrics) RecordFire(ctx context.Context, eventType string, duration time.Duration, matched int, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
		attribute.Bool("success", err == nil),
	}
	m.fires.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.fireLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.matched.Record(ctx, int64(matched), metric.WithAttributes(attrs...))
}

// RecordDelivery records a single listener delivery.
func (m *otelMetrics) RecordDelivery(ctx context.Context, eventType string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
	}
	m.deliveries.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deliveryLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		m.deliveryErrs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordIllegalType records an excluded candidate type.
func (m *otelMetrics) RecordIllegalType(ctx context.Context) {
	m.illegalTypes.Add(ctx, 1)
}
