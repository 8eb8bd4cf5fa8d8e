// Package typemodel provides the immutable type and declaration model that
// typefire's resolution algorithms consume.
//
// The model is a deliberately small reified generic-type system: primitive
// types, arrays, declared (nominal, possibly parameterized) types, type
// variables, and wildcards, plus the class/interface declarations that
// define them. A Universe is an arena of declarations addressed by stable
// indices; declarations and their type variables refer to each other
// through those indices, so the model has no reference cycles.
//
// All Type and Declaration values are immutable once a declaration is
// linked. The Universe is safe for concurrent read access; declaration
// registration is serialized internally.
package typemodel

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/randalmurphal/typefire/pkg/typefire/registry"
)

// TopName is the name of the universal top type registered in every
// Universe. Every declaration without an explicit superclass is a direct
// subtype of it.
const TopName = "Object"

// Interned primitive and none singletons. Primitives carry no declaration
// reference, so they can be shared across universes.
var (
	noneType       = &Type{kind: None}
	primitiveTypes = map[Kind]*Type{
		Bool:   {kind: Bool},
		Byte:   {kind: Byte},
		Char:   {kind: Char},
		Double: {kind: Double},
		Float:  {kind: Float},
		Int:    {kind: Int},
		Long:   {kind: Long},
		Short:  {kind: Short},
	}
)

// NoneType returns the absence-of-type value ("void").
func NoneType() *Type {
	return noneType
}

// PrimitiveType returns the interned type for a primitive kind, panicking
// for non-primitive kinds.
func PrimitiveType(k Kind) *Type {
	t, ok := primitiveTypes[k]
	if !ok {
		panic(fmt.Sprintf("typemodel: %s is not a primitive kind", k))
	}
	return t
}

// ArrayOf returns an array type with the given element type.
func ArrayOf(elem *Type) *Type {
	if elem == nil || elem.kind == None || elem.kind == Wildcard {
		panic(fmt.Sprintf("typemodel: invalid array element type %s", elem))
	}
	return &Type{kind: Array, elem: elem}
}

// Universe is an arena of declarations plus the constructors and
// introspection predicates the resolution algorithms need.
type Universe struct {
	mu    sync.RWMutex
	decls []*Declaration

	names    *registry.Registry[string, DeclIndex]
	bindings *registry.Registry[reflect.Type, DeclIndex]

	top      DeclIndex
	wrappers map[Kind]DeclIndex
}

// NewUniverse creates a Universe pre-populated with the top type and the
// eight boxed-wrapper declarations.
func NewUniverse() *Universe {
	u := &Universe{
		names:    registry.New[string, DeclIndex](),
		bindings: registry.New[reflect.Type, DeclIndex](),
		wrappers: make(map[Kind]DeclIndex, len(PrimitiveKinds)),
	}
	u.top = u.Declare(TopName).Index()
	for _, k := range PrimitiveKinds {
		w := u.Declare(WrapperNames[k])
		w.SetSuperclass(u.Top())
		u.wrappers[k] = w.Index()
	}
	return u
}

// Declare registers a new declaration with the given name and type
// parameters, interning its type variables and prototype. It panics if the
// name is already taken.
func (u *Universe) Declare(name string, paramNames ...string) *Declaration {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.names.Has(name) {
		panic(fmt.Sprintf("typemodel: declaration %q already exists", name))
	}

	idx := DeclIndex(len(u.decls))
	d := &Declaration{
		index:  idx,
		name:   name,
		params: make([]TypeParameter, len(paramNames)),
	}
	protoArgs := make([]*Type, len(paramNames))
	d.typeVars = make([]*Type, len(paramNames))
	for i, pn := range paramNames {
		d.params[i] = TypeParameter{Name: pn}
		tv := &Type{kind: TypeVar, decl: idx, param: i}
		d.typeVars[i] = tv
		protoArgs[i] = tv
	}
	d.prototype = &Type{kind: Declared, decl: idx, args: protoArgs}

	u.decls = append(u.decls, d)
	u.names.Register(name, idx)
	return d
}

// Declaration returns the declaration at the given arena index.
func (u *Universe) Declaration(i DeclIndex) *Declaration {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if i < 0 || int(i) >= len(u.decls) {
		panic(fmt.Sprintf("typemodel: no declaration at %s", i))
	}
	return u.decls[i]
}

// Lookup returns the declaration with the given name and whether it
// exists.
func (u *Universe) Lookup(name string) (*Declaration, bool) {
	idx, ok := u.names.Get(name)
	if !ok {
		return nil, false
	}
	return u.Declaration(idx), true
}

// DeclaredType constructs a usage of a declaration. The argument count
// must be zero (a raw usage) or exactly the declaration's parameter count;
// any other count panics, since it can only be a programming error.
func (u *Universe) DeclaredType(d *Declaration, args ...*Type) *Type {
	if len(args) != 0 && len(args) != len(d.params) {
		panic(fmt.Sprintf("typemodel: %s declares %d type parameters, got %d arguments",
			d.name, len(d.params), len(args)))
	}
	if len(args) == 0 {
		return &Type{kind: Declared, decl: d.index}
	}
	copied := make([]*Type, len(args))
	copy(copied, args)
	return &Type{kind: Declared, decl: d.index, args: copied}
}

// UnboundedWildcard returns the wildcard with no bounds.
func (u *Universe) UnboundedWildcard() *Type {
	return &Type{kind: Wildcard}
}

// ExtendsWildcard returns a wildcard with an upper bound.
func (u *Universe) ExtendsWildcard(bound *Type) *Type {
	return &Type{kind: Wildcard, extends: bound}
}

// SuperWildcard returns a wildcard with a lower bound.
func (u *Universe) SuperWildcard(bound *Type) *Type {
	return &Type{kind: Wildcard, super: bound}
}

// Top returns the universal top type.
func (u *Universe) Top() *Type {
	return u.Declaration(u.top).Prototype()
}

// IsTop reports whether t is the universal top type.
func (u *Universe) IsTop(t *Type) bool {
	return t != nil && t.kind == Declared && t.decl == u.top
}

// WrapperFor returns the boxed-wrapper declared type for a primitive
// kind, panicking for non-primitive kinds.
func (u *Universe) WrapperFor(k Kind) *Type {
	idx, ok := u.wrappers[k]
	if !ok {
		panic(fmt.Sprintf("typemodel: %s has no wrapper type", k))
	}
	return u.Declaration(idx).Prototype()
}

// Format renders a type with declaration names for diagnostics.
func (u *Universe) Format(t *Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case Array:
		return u.Format(t.elem) + "[]"
	case Declared:
		name := u.Declaration(t.decl).Name()
		if len(t.args) == 0 {
			return name
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = u.Format(a)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	case TypeVar:
		d := u.Declaration(t.decl)
		return d.TypeParameters()[t.param].Name
	case Wildcard:
		switch {
		case t.extends != nil:
			return "? extends " + u.Format(t.extends)
		case t.super != nil:
			return "? super " + u.Format(t.super)
		default:
			return "?"
		}
	default:
		return t.kind.String()
	}
}
