package typemodel

import "strings"

// Type is an immutable value in the reified type model. Types are created
// by a Universe and never mutated afterward; algorithms construct new
// Declared values as substitution results instead of editing existing ones.
//
// Two Type values may denote the same type without being the same pointer.
// Use SameType for correspondence tests, never pointer identity. Pointer
// identity is meaningful in exactly one place: a declaration's prototype
// is interned, and the congruent-supertype walk reports "no substitution
// needed" by returning that interned pointer.
type Type struct {
	kind Kind

	// Array
	elem *Type

	// Declared and TypeVar: owning declaration.
	decl DeclIndex

	// Declared: type arguments. Empty for raw usages.
	args []*Type

	// TypeVar: index of the introducing parameter within decl.
	param int

	// Wildcard bounds. At most one is meaningful at a time.
	extends *Type
	super   *Type
}

// Kind returns the type's variant.
func (t *Type) Kind() Kind {
	return t.kind
}

// Elem returns an array type's element type, or nil for other kinds.
func (t *Type) Elem() *Type {
	return t.elem
}

// Decl returns the declaration index for Declared and TypeVar types.
func (t *Type) Decl() DeclIndex {
	return t.decl
}

// Args returns a declared type's arguments. The returned slice must not
// be modified.
func (t *Type) Args() []*Type {
	return t.args
}

// ParamIndex returns the introducing parameter's index for TypeVar types.
func (t *Type) ParamIndex() int {
	return t.param
}

// ExtendsBound returns a wildcard's upper bound, or nil.
func (t *Type) ExtendsBound() *Type {
	return t.extends
}

// SuperBound returns a wildcard's lower bound, or nil.
func (t *Type) SuperBound() *Type {
	return t.super
}

// SameType reports whether a and b denote the same type. This is the
// structural correspondence relation: it is identity-insensitive and must
// be used wherever declaration or argument correspondence is tested.
func SameType(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case None, Bool, Byte, Char, Double, Float, Int, Long, Short:
		return true
	case Array:
		return SameType(a.elem, b.elem)
	case Declared:
		if a.decl != b.decl || len(a.args) != len(b.args) {
			return false
		}
		for i := range a.args {
			if !SameType(a.args[i], b.args[i]) {
				return false
			}
		}
		return true
	case TypeVar:
		return a.decl == b.decl && a.param == b.param
	case Wildcard:
		return SameType(a.extends, b.extends) && SameType(a.super, b.super)
	default:
		return false
	}
}

// String renders the type for diagnostics. The Universe is not available
// here, so declared types render by declaration index; use Universe.Format
// for named output.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case Array:
		return t.elem.String() + "[]"
	case Declared:
		if len(t.args) == 0 {
			return t.decl.String()
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return t.decl.String() + "<" + strings.Join(parts, ", ") + ">"
	case TypeVar:
		return t.decl.String() + "#" + string(rune('A'+t.param))
	case Wildcard:
		switch {
		case t.extends != nil:
			return "? extends " + t.extends.String()
		case t.super != nil:
			return "? super " + t.super.String()
		default:
			return "?"
		}
	default:
		return t.kind.String()
	}
}
