package typefire

import (
	"errors"
	"fmt"
)

// Sentinel errors for event type inference.
var (
	// ErrVoidEventClass indicates inference was asked about the void class.
	ErrVoidEventClass = errors.New("void is never an event class")

	// ErrSourceCannotSupplyArguments indicates the source type is primitive,
	// non-generic, or raw, and so cannot supply type arguments.
	ErrSourceCannotSupplyArguments = errors.New("source type cannot supply type arguments")

	// ErrUnresolvedSourceArgument indicates a source type argument is a bare
	// type variable.
	ErrUnresolvedSourceArgument = errors.New("source type argument is an unresolved type variable")

	// ErrUnrelatedSource indicates the source type is not a supertype of the
	// concrete event class.
	ErrUnrelatedSource = errors.New("source type is not a supertype of the event class")
)

// Sentinel errors for type matching.
var (
	// ErrIllegalReceiver indicates a receiver type of a kind outside the
	// closed receiver set (primitives, arrays, declared types, type
	// variables).
	ErrIllegalReceiver = errors.New("illegal receiver type kind")

	// ErrIllegalPayload indicates a payload type of a kind outside the
	// closed payload set (primitives, arrays, declared types).
	ErrIllegalPayload = errors.New("illegal payload type kind")
)

// Sentinel errors for dispatch.
var (
	// ErrNilEvent indicates Fire was called with a nil event value.
	ErrNilEvent = errors.New("event cannot be nil")

	// ErrNilListenerSource indicates Fire was called without a listener
	// source.
	ErrNilListenerSource = errors.New("listener source cannot be nil")
)

// InferenceError wraps an invalid-argument failure of event type
// inference with the source type and event class involved.
type InferenceError struct {
	// Source is the statically-known source type, rendered.
	Source string
	// Class is the concrete event class, rendered.
	Class string
	// Err is the sentinel cause.
	Err error
}

// Error implements the error interface.
func (e *InferenceError) Error() string {
	return fmt.Sprintf("infer event type of %s from %s: %v", e.Class, e.Source, e.Err)
}

// Unwrap returns the sentinel cause for errors.Is support.
func (e *InferenceError) Unwrap() error {
	return e.Err
}

// MatchError wraps an invalid-argument failure of the assignability
// matcher.
type MatchError struct {
	// Receiver is the receiver slot type, rendered.
	Receiver string
	// Payload is the payload type, rendered.
	Payload string
	// Err is the sentinel cause.
	Err error
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	return fmt.Sprintf("match payload %s against receiver %s: %v", e.Payload, e.Receiver, e.Err)
}

// Unwrap returns the sentinel cause for errors.Is support.
func (e *MatchError) Unwrap() error {
	return e.Err
}

// DispatchError wraps a failure surfaced while firing an event, with the
// fire ID for correlation.
type DispatchError struct {
	// FireID identifies the Fire call.
	FireID string
	// Stage is the stage that failed ("infer", "match", "deliver").
	Stage string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("fire %s: %s: %v", e.FireID, e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// inconsistency panics with a diagnostic. A type-parameter lookup miss
// during final substitution assembly signals a bug in the
// congruent-supertype walk, not a recoverable caller error.
func inconsistency(format string, args ...any) {
	panic(fmt.Sprintf("typefire: internal inconsistency: "+format, args...))
}
