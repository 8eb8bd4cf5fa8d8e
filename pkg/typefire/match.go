package typefire

import (
	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// Matcher decides whether a payload type may be delivered to a receiver
// slot type under covariant, generics-aware rules. It is pure and safe
// for concurrent use.
type Matcher struct {
	u *typemodel.Universe
}

// NewMatcher creates a Matcher over a universe.
func NewMatcher(u *typemodel.Universe) *Matcher {
	return &Matcher{u: u}
}

// Matches reports whether an event of the payload type may be delivered
// to a receiver slot of the receiver type.
//
// The receiver kind set is closed: primitives (matched against their
// boxed wrappers), arrays (matched by identical element type; array
// covariance is not modeled), declared types (same type or assignable),
// and type variables (payload covariantly assignable to the upper bound).
// Payloads may only be arrays or declared types. Any other kind is an
// invalid argument, not a non-match.
func (m *Matcher) Matches(receiver, payload *typemodel.Type) (bool, error) {
	switch receiver.Kind() {

	case typemodel.Array:
		switch payload.Kind() {
		case typemodel.Array:
			return typemodel.SameType(m.u.ComponentType(receiver), m.u.ComponentType(payload)), nil
		case typemodel.Declared:
			return false, nil
		default:
			return false, m.illegalPayload(receiver, payload)
		}

	case typemodel.Bool, typemodel.Byte, typemodel.Char, typemodel.Double,
		typemodel.Float, typemodel.Int, typemodel.Long, typemodel.Short:
		switch payload.Kind() {
		case typemodel.Array:
			return false, nil
		case typemodel.Declared:
			return typemodel.SameType(payload, m.u.WrapperFor(receiver.Kind())), nil
		default:
			return false, m.illegalPayload(receiver, payload)
		}

	case typemodel.Declared:
		switch payload.Kind() {
		case typemodel.Array:
			return false, nil
		case typemodel.Declared:
			if typemodel.SameType(receiver, payload) {
				return true, nil
			}
			return m.assignable(receiver, payload)
		default:
			return false, m.illegalPayload(receiver, payload)
		}

	case typemodel.TypeVar:
		// A payload is assignable to a type-variable receiver if it is
		// assignable to the variable's upper bound.
		switch payload.Kind() {
		case typemodel.Array, typemodel.Declared:
			return m.u.CovariantlyAssignable(receiver, payload), nil
		default:
			return false, m.illegalPayload(receiver, payload)
		}

	default:
		return false, &MatchError{
			Receiver: m.u.Format(receiver),
			Payload:  m.u.Format(payload),
			Err:      ErrIllegalReceiver,
		}
	}
}

// assignable applies the raw/parameterized interplay rules for two
// declared types that do not denote the same type.
func (m *Matcher) assignable(receiver, payload *typemodel.Type) (bool, error) {
	if m.u.Parameterized(payload) {
		// A parameterized payload is assignable to a non-generic or raw
		// receiver if their raw forms denote the same declaration.
		if !m.u.Generic(receiver) || m.u.Raw(receiver) {
			return typemodel.SameType(m.u.RawForm(receiver), m.u.RawForm(payload)), nil
		}

		// A parameterized payload is assignable to a parameterized
		// receiver if their raw declarations are identical and every
		// positional type-argument pair passes.
		if !typemodel.SameType(m.u.RawType(receiver), m.u.RawType(payload)) {
			return false, nil
		}
		rtas := receiver.Args()
		ptas := payload.Args()
		for i := range rtas {
			rta := rtas[i]
			pta := ptas[i]
			switch rta.Kind() {

			case typemodel.Array, typemodel.Declared:
				// An actual-type receiver argument must share the payload
				// argument's raw form; if it is itself parameterized the
				// pair must additionally match recursively.
				if !typemodel.SameType(m.u.RawForm(rta), m.u.RawForm(pta)) {
					return false, nil
				}
				if m.u.YieldsRaw(rta) {
					ok, err := m.Matches(rta, pta)
					if err != nil || !ok {
						return false, err
					}
				}

			case typemodel.TypeVar:
				if !m.u.CovariantlyAssignable(rta, pta) {
					return false, nil
				}

			case typemodel.Wildcard:
				if !m.u.Contains(rta, pta) {
					return false, nil
				}

			default:
				// Type arguments can be nothing else.
				inconsistency("receiver %s carries argument of kind %s",
					m.u.Format(receiver), rta.Kind())
			}
		}
		return true, nil
	}

	// A non-generic or raw payload is assignable to a parameterized
	// receiver if their raw forms are identical and every receiver type
	// argument is either an unbounded type variable or the top type.
	if m.u.Parameterized(receiver) {
		if !typemodel.SameType(m.u.RawForm(receiver), payload) {
			return false, nil
		}
		for _, rta := range receiver.Args() {
			if !m.u.UnboundedTypeVar(rta) && !m.u.IsTop(rta) {
				return false, nil
			}
		}
		return true, nil
	}

	// Both non-generic or raw and not the same type: identity was already
	// tested by the caller.
	return false, nil
}

func (m *Matcher) illegalPayload(receiver, payload *typemodel.Type) error {
	return &MatchError{
		Receiver: m.u.Format(receiver),
		Payload:  m.u.Format(payload),
		Err:      ErrIllegalPayload,
	}
}
