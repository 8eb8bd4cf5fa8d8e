package typefire

import (
	"log/slog"

	"github.com/randalmurphal/typefire/pkg/typefire/observability"
	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// LegalEventType reports whether t may be reported as a concrete event's
// type. Legal event types are exactly:
//
//  1. array types whose element type is primitive or itself a legal event
//     type, and
//  2. declared types that do not refer to a bare type variable anywhere in
//     their argument tree (a wildcard argument is inspected through its
//     bounds rather than rejected outright).
//
// Everything else, including bare type variables and top-level wildcards,
// is illegal. Rejections are logged at warn level when a logger is
// supplied; they are never an error.
func LegalEventType(logger *slog.Logger, u *typemodel.Universe, t *typemodel.Type) bool {
	switch t.Kind() {

	case typemodel.Array:
		elem := t.Elem()
		if !elem.Kind().IsPrimitive() && !LegalEventType(logger, u, elem) {
			observability.LogIllegalEventType(logger, u.Format(t), "element type is an illegal event type")
			return false
		}
		return true

	// Primitive scalars are currently excluded: an event value arrives as
	// a Go value, never as a bare primitive scalar. TODO: revisit if a
	// primitive-firing entry point is ever added.

	case typemodel.Declared:
		// An event type may not contain an unresolvable type variable; a
		// wildcard is not itself such a variable, but its bounds are
		// checked recursively.
		for _, ta := range t.Args() {
			switch ta.Kind() {
			case typemodel.Wildcard:
				if b := ta.ExtendsBound(); b != nil && !LegalEventType(logger, u, b) {
					observability.LogIllegalEventType(logger, u.Format(t), "wildcard extends bound is an illegal event type")
					return false
				}
				if b := ta.SuperBound(); b != nil && !LegalEventType(logger, u, b) {
					observability.LogIllegalEventType(logger, u.Format(t), "wildcard super bound is an illegal event type")
					return false
				}
			default:
				if !LegalEventType(logger, u, ta) {
					observability.LogIllegalEventType(logger, u.Format(t), "type argument is an illegal event type")
					return false
				}
			}
		}
		return true

	default:
		// Including, of course, type variables.
		observability.LogIllegalEventType(logger, u.Format(t), "kind "+t.Kind().String()+" is never a legal event type")
		return false
	}
}

// LegalObservedType reports whether t may appear as a receiver slot's
// declared type: any kind a parameter may bear, which is everything except
// the absence of a type and top-level wildcards. A receiver slot may carry
// a type variable even though an event's reported type may not.
func LegalObservedType(t *typemodel.Type) bool {
	switch t.Kind() {
	case typemodel.Array, typemodel.Declared, typemodel.TypeVar,
		typemodel.Bool, typemodel.Byte, typemodel.Char, typemodel.Double,
		typemodel.Float, typemodel.Int, typemodel.Long, typemodel.Short:
		return true
	default:
		return false
	}
}
