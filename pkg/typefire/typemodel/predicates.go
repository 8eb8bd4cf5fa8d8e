package typemodel

import "fmt"

// Generic reports whether t is a usage of a declaration with type
// parameters.
func (u *Universe) Generic(t *Type) bool {
	return t != nil && t.kind == Declared && len(u.Declaration(t.decl).params) > 0
}

// Raw reports whether t is a raw usage: a declared type with zero
// arguments despite its declaration having type parameters.
func (u *Universe) Raw(t *Type) bool {
	return u.Generic(t) && len(t.args) == 0
}

// Parameterized reports whether t is a declared type carrying arguments.
func (u *Universe) Parameterized(t *Type) bool {
	return t != nil && t.kind == Declared && len(t.args) > 0
}

// RawType returns the raw (argument-free) usage of a parameterized type.
func (u *Universe) RawType(t *Type) *Type {
	if t == nil || t.kind != Declared {
		panic(fmt.Sprintf("typemodel: RawType of %s", t))
	}
	if len(t.args) == 0 {
		return t
	}
	return &Type{kind: Declared, decl: t.decl}
}

// RawForm erases a type to its non-generic-class-or-raw form: declared
// types lose their arguments, array types keep their shape with erased
// elements, type variables erase to their bound and wildcards to their
// extends bound (or the top type). Other kinds are returned unchanged.
func (u *Universe) RawForm(t *Type) *Type {
	switch t.kind {
	case Declared:
		return u.RawType(t)
	case Array:
		erased := u.RawForm(t.elem)
		if erased == t.elem {
			return t
		}
		return ArrayOf(erased)
	case TypeVar:
		return u.RawForm(u.TypeVarBound(t))
	case Wildcard:
		if t.extends != nil {
			return u.RawForm(t.extends)
		}
		return u.Top()
	default:
		return t
	}
}

// YieldsRaw reports whether erasing t discards information: t is a
// parameterized declared type, or an array whose element yields a raw
// form.
func (u *Universe) YieldsRaw(t *Type) bool {
	switch t.kind {
	case Declared:
		return len(t.args) > 0
	case Array:
		return u.YieldsRaw(t.elem)
	default:
		return false
	}
}

// ComponentType returns an array type's element type, panicking for other
// kinds.
func (u *Universe) ComponentType(t *Type) *Type {
	if t == nil || t.kind != Array {
		panic(fmt.Sprintf("typemodel: ComponentType of %s", t))
	}
	return t.elem
}

// TypeVarBound returns a type variable's declared upper bound, or the top
// type when the parameter is unbounded.
func (u *Universe) TypeVarBound(t *Type) *Type {
	if t == nil || t.kind != TypeVar {
		panic(fmt.Sprintf("typemodel: TypeVarBound of %s", t))
	}
	bound := u.Declaration(t.decl).params[t.param].Bound
	if bound == nil {
		return u.Top()
	}
	return bound
}

// UnboundedTypeVar reports whether t is a type variable whose upper bound
// is the top type.
func (u *Universe) UnboundedTypeVar(t *Type) bool {
	return t != nil && t.kind == TypeVar && u.IsTop(u.TypeVarBound(t))
}

// Contains reports whether the type argument w contains the type argument
// t, per standard wildcard containment: t must be assignable to w's
// extends bound if present, and w's super bound if present must be
// assignable to t. A non-wildcard w contains exactly itself.
func (u *Universe) Contains(w, t *Type) bool {
	if w.kind != Wildcard {
		return SameType(w, t)
	}
	if w.extends != nil && !u.CovariantlyAssignable(w.extends, t) {
		return false
	}
	if w.super != nil && !u.CovariantlyAssignable(t, w.super) {
		return false
	}
	return true
}

// CovariantlyAssignable reports whether payload may flow into receiver
// under covariant rules: the payload itself, or one of its supertypes,
// denotes the receiver's type. A type-variable receiver delegates to its
// upper bound; a raw declared receiver accepts any payload whose
// supertype raw forms include it.
func (u *Universe) CovariantlyAssignable(receiver, payload *Type) bool {
	if receiver.kind == TypeVar {
		return u.CovariantlyAssignable(u.TypeVarBound(receiver), payload)
	}
	if SameType(receiver, payload) {
		return true
	}
	switch payload.kind {
	case Array:
		// Arrays are final in the model: only the array itself or Top.
		return u.IsTop(receiver)
	case Declared:
		rawReceiver := u.Raw(receiver)
		for _, s := range u.Supertypes(payload) {
			if SameType(receiver, s) {
				return true
			}
			if rawReceiver && SameType(receiver, u.RawType(s)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
