package typefire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/typefire/pkg/typefire/config"
	"github.com/randalmurphal/typefire/pkg/typefire/deadletter"
	"github.com/randalmurphal/typefire/pkg/typefire/observability"
	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// DeliverFunc invokes a listener with a matched event. The default
// implementation calls the listener synchronously; replacing it is the
// extension point for asynchronous delivery.
type DeliverFunc func(ctx context.Context, l Listener, event any) error

// Dispatcher fires events at listeners. An event's type is inferred from
// its runtime class and the statically-known source type, and each
// listener whose qualifiers accept the fired qualifiers is tested
// against the event's legal types in most-specific-first order.
//
// A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	u          *typemodel.Universe
	inferrer   *Inferrer
	matcher    *Matcher
	qualifiers QualifierMatcher

	logger          *slog.Logger
	metrics         observability.MetricsRecorder
	spans           observability.SpanManager
	deadLetters     deadletter.Store
	deliver         DeliverFunc
	deliveryTimeout time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics.
// Default: disabled (no-op recorder).
func WithMetrics(enabled bool) Option {
	return func(d *Dispatcher) {
		if enabled {
			d.metrics = observability.NewMetricsRecorder()
		} else {
			d.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables or disables OpenTelemetry tracing.
// Default: disabled (no-op spans).
func WithTracing(enabled bool) Option {
	return func(d *Dispatcher) {
		if enabled {
			d.spans = observability.NewSpanManager()
		} else {
			d.spans = observability.NoopSpanManager{}
		}
	}
}

// WithDeadLetterStore records events that match no listener in store.
// Default: no recording.
func WithDeadLetterStore(store deadletter.Store) Option {
	return func(d *Dispatcher) {
		d.deadLetters = store
	}
}

// WithDeliverFunc replaces the synchronous delivery call. This is the
// asynchronous-dispatch extension point; the dispatcher itself never
// spawns goroutines.
func WithDeliverFunc(f DeliverFunc) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.deliver = f
		}
	}
}

// WithDeliveryTimeout bounds each listener invocation's context.
// Zero (the default) means no per-delivery timeout.
func WithDeliveryTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.deliveryTimeout = timeout
	}
}

// NewDispatcher creates a Dispatcher over a universe.
func NewDispatcher(u *typemodel.Universe, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		u:       u,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		deliver: func(ctx context.Context, l Listener, event any) error {
			return l.EventReceived(ctx, event)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.inferrer = NewInferrer(u, d.logger, d.metrics)
	d.matcher = NewMatcher(u)
	return d
}

// NewDispatcherFromSettings creates a Dispatcher configured by resolved
// settings, typically loaded via the config package. Explicit opts are
// applied after the settings and take precedence.
func NewDispatcherFromSettings(u *typemodel.Universe, s config.Settings, opts ...Option) (*Dispatcher, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(s.LogLevel),
	}))

	base := []Option{
		WithLogger(logger),
		WithMetrics(s.MetricsEnabled),
		WithTracing(s.TracingEnabled),
		WithDeliveryTimeout(s.DeliveryTimeout),
	}
	if s.DeadLetterEnabled {
		var store deadletter.Store
		if s.DeadLetterPath == "" {
			store = deadletter.NewMemoryStore()
		} else {
			var err error
			store, err = deadletter.NewSQLiteStore(s.DeadLetterPath)
			if err != nil {
				return nil, fmt.Errorf("open dead-letter store: %w", err)
			}
		}
		base = append(base, WithDeadLetterStore(store))
	}

	return NewDispatcher(u, append(base, opts...)...), nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Universe returns the universe the dispatcher operates over.
func (d *Dispatcher) Universe() *typemodel.Universe {
	return d.u
}

// DeadLetters returns the dead-letter store, or nil if recording is
// disabled.
func (d *Dispatcher) DeadLetters() deadletter.Store {
	return d.deadLetters
}

// Fire delivers event to every matching listener supplied by listeners.
//
// The event's type is inferred from its runtime class and source, then
// each listener is considered in iteration order: a listener is skipped
// if its slot type is absent or its qualifiers are not a subset of the
// fired qualifiers; otherwise its slot is tested against the event's
// legal types most specific first, and the listener is invoked on the
// first match. Removal from the listener source is attempted after each
// listener regardless of the outcome.
//
// A failed inference or an illegal receiver or payload kind aborts the
// fire. A listener error does not: remaining listeners still run, and
// the errors are joined into the returned DispatchError.
func (d *Dispatcher) Fire(ctx context.Context, source *typemodel.Type, qualifiers []Qualifier, event any, listeners ListenerIterator) error {
	if event == nil {
		return ErrNilEvent
	}
	if listeners == nil {
		return ErrNilListenerSource
	}

	fireID := fmt.Sprintf("fire-%s", uuid.New().String()[:8])
	start := time.Now()

	legal, err := d.inferrer.EventTypesFor(ctx, source, event)
	if err != nil {
		return &DispatchError{FireID: fireID, Stage: "infer", Err: err}
	}
	eventType := "<none>"
	if len(legal) > 0 {
		eventType = d.u.Format(legal[0])
	}

	// Every log line of this fire carries the fire ID and event type.
	flog := observability.EnrichLogger(d.logger, fireID, eventType)

	ctx, span := d.spans.StartFireSpan(ctx, fireID, eventType)
	observability.LogFire(flog, len(legal), len(qualifiers))

	matched := 0
	var deliveryErrs []error
	for {
		l, ok := listeners.Next()
		if !ok {
			break
		}
		if l == nil || l.SlotType() == nil || !d.qualifiers.Matches(l.Qualifiers(), qualifiers) {
			listeners.Remove()
			continue
		}

		for _, lt := range legal {
			match, err := d.matcher.Matches(l.SlotType(), lt)
			if err != nil {
				listeners.Remove()
				ferr := &DispatchError{FireID: fireID, Stage: "match", Err: err}
				d.spans.EndSpanWithError(span, ferr)
				d.metrics.RecordFire(ctx, eventType, time.Since(start), matched, ferr)
				return ferr
			}
			if match {
				matched++
				d.spans.AddSpanEvent(ctx, "listener.matched",
					attribute.String("slot_type", d.u.Format(l.SlotType())),
					attribute.String("matched_type", d.u.Format(lt)),
				)
				if err := d.deliverOne(ctx, flog, eventType, lt, l, event); err != nil {
					deliveryErrs = append(deliveryErrs, err)
				}
				break
			}
		}

		listeners.Remove()
	}

	if matched == 0 {
		observability.LogNoListeners(flog)
		d.recordDeadLetter(flog, fireID, eventType, qualifiers, event, start)
	}

	var fireErr error
	if len(deliveryErrs) > 0 {
		fireErr = &DispatchError{FireID: fireID, Stage: "deliver", Err: errors.Join(deliveryErrs...)}
	}
	d.spans.EndSpanWithError(span, fireErr)
	d.metrics.RecordFire(ctx, eventType, time.Since(start), matched, fireErr)
	return fireErr
}

// deliverOne invokes a single matched listener. The logger is already
// enriched with the fire's context.
func (d *Dispatcher) deliverOne(ctx context.Context, flog *slog.Logger, eventType string, matchedType *typemodel.Type, l Listener, event any) error {
	rendered := d.u.Format(matchedType)
	dctx, dspan := d.spans.StartDeliverySpan(ctx, rendered)
	if d.deliveryTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(dctx, d.deliveryTimeout)
		defer cancel()
	}

	elapsed := observability.TimedOperation()
	err := d.deliver(dctx, l, event)
	durationMs := elapsed()

	d.spans.EndSpanWithError(dspan, err)
	d.metrics.RecordDelivery(dctx, eventType, time.Duration(durationMs*float64(time.Millisecond)), err)

	if err != nil {
		observability.LogDeliveryError(flog, err)
		return err
	}
	observability.LogDelivery(flog, rendered, durationMs)
	return nil
}

// recordDeadLetter best-effort records an event that matched nothing.
// Store failures are logged and never fail the fire.
func (d *Dispatcher) recordDeadLetter(flog *slog.Logger, fireID, eventType string, qualifiers []Qualifier, event any, firedAt time.Time) {
	if d.deadLetters == nil {
		return
	}

	names := make([]string, 0, len(qualifiers))
	for _, q := range qualifiers {
		names = append(names, q.Name)
	}
	// Payload serialization is best effort; unserializable events are
	// recorded without one.
	payload, err := json.Marshal(event)
	if err != nil {
		payload = nil
	}

	if err := d.deadLetters.Record(deadletter.Record{
		ID:         fireID,
		EventType:  eventType,
		Qualifiers: names,
		Payload:    payload,
		FiredAt:    firedAt,
	}); err != nil {
		observability.LogDeadLetterError(flog, err)
	}
}
