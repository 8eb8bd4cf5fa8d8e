// Package observability provides structured logging, metrics, and tracing
// for typefire event dispatch.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with fire_id and event_type fields.
func EnrichLogger(logger *slog.Logger, fireID, eventType string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("fire_id", fireID),
		slog.String("event_type", eventType),
	)
}

// LogFire logs the start of an event fire. The logger is expected to come
// from EnrichLogger, which supplies the fire ID and event type fields.
func LogFire(logger *slog.Logger, legalTypes, qualifiers int) {
	if logger == nil {
		return
	}
	logger.Debug("firing event",
		slog.Int("legal_types", legalTypes),
		slog.Int("qualifiers", qualifiers),
	)
}

// LogDelivery logs a successful delivery to a listener.
func LogDelivery(logger *slog.Logger, matchedType string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("event delivered",
		slog.String("matched_type", matchedType),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDeliveryError logs a listener failure.
func LogDeliveryError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Error("listener failed",
		slog.String("error", err.Error()),
	)
}

// LogIllegalEventType logs the exclusion of an illegal candidate event
// type. The exclusion is non-fatal; the candidate is simply skipped.
func LogIllegalEventType(logger *slog.Logger, rendered, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("illegal event type excluded",
		slog.String("type", rendered),
		slog.String("reason", reason),
	)
}

// LogNoListeners logs an event that matched no listener.
func LogNoListeners(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("no listeners matched")
}

// LogDeadLetterError logs a dead-letter store failure (non-fatal).
func LogDeadLetterError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("dead-letter record failed",
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
