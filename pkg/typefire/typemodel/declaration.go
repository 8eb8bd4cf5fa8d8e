package typemodel

import "strconv"

// DeclIndex is a stable arena index identifying a declaration within its
// Universe. Declarations and their type variables reference each other; the
// cycle is broken by addressing both through plain indices instead of
// owning references.
type DeclIndex int

// NoDecl is the index of no declaration.
const NoDecl DeclIndex = -1

// String returns the index for diagnostics.
func (d DeclIndex) String() string {
	return "decl#" + strconv.Itoa(int(d))
}

// TypeParameter is a type-parameter declaration: a name plus an upper
// bound. A nil bound means the universe's top type.
type TypeParameter struct {
	Name  string
	Bound *Type
}

// Declaration defines a class or interface: its name, ordered type
// parameters, direct superclass usage, and direct interface usages.
//
// A Declaration is linked in two phases: Universe.Declare creates it with
// its parameter list (and interns its prototype), then SetSuperclass and
// AddInterfaces connect it into the hierarchy. After linking, a
// Declaration is never modified.
type Declaration struct {
	index      DeclIndex
	name       string
	params     []TypeParameter
	superclass *Type // Declared usage, or nil for no superclass
	interfaces []*Type
	isIface    bool
	isAbstract bool

	// prototype is the interned type whose arguments are exactly this
	// declaration's own type variables, in declaration order. It is the
	// only Declared value for which pointer identity is meaningful.
	prototype *Type

	// typeVars are the interned TypeVar values, one per parameter.
	typeVars []*Type
}

// Index returns the declaration's arena index.
func (d *Declaration) Index() DeclIndex {
	return d.index
}

// Name returns the declaration's name.
func (d *Declaration) Name() string {
	return d.name
}

// TypeParameters returns the ordered type-parameter list. The returned
// slice must not be modified.
func (d *Declaration) TypeParameters() []TypeParameter {
	return d.params
}

// Superclass returns the direct superclass usage, or nil if the
// declaration has none (the top type, or an interface).
func (d *Declaration) Superclass() *Type {
	return d.superclass
}

// Interfaces returns the direct interface usages. The returned slice must
// not be modified.
func (d *Declaration) Interfaces() []*Type {
	return d.interfaces
}

// IsInterface reports whether the declaration is an interface.
func (d *Declaration) IsInterface() bool {
	return d.isIface
}

// IsAbstract reports whether the declaration is abstract.
func (d *Declaration) IsAbstract() bool {
	return d.isAbstract
}

// Prototype returns the interned prototype: the usage whose arguments are
// exactly this declaration's own type variables. For non-generic
// declarations the prototype has no arguments.
//
// The prototype is distinct from any externally constructed usage of the
// same declaration, even one with structurally identical arguments; the
// substitution engine relies on that distinction.
func (d *Declaration) Prototype() *Type {
	return d.prototype
}

// TypeVar returns the interned type variable introduced by the i-th
// parameter.
func (d *Declaration) TypeVar(i int) *Type {
	return d.typeVars[i]
}

// SetSuperclass links the direct superclass usage. The usage's arguments
// may reference this declaration's own type variables.
func (d *Declaration) SetSuperclass(t *Type) *Declaration {
	if t != nil && t.Kind() != Declared {
		panic("typemodel: superclass must be a declared type")
	}
	d.superclass = t
	return d
}

// AddInterfaces links direct interface usages, in order.
func (d *Declaration) AddInterfaces(ts ...*Type) *Declaration {
	for _, t := range ts {
		if t.Kind() != Declared {
			panic("typemodel: interface must be a declared type")
		}
		d.interfaces = append(d.interfaces, t)
	}
	return d
}

// SetBound sets the upper bound of the i-th type parameter. A nil bound
// means the universe's top type.
func (d *Declaration) SetBound(i int, bound *Type) *Declaration {
	d.params[i].Bound = bound
	return d
}

// MarkInterface classifies the declaration as an interface.
func (d *Declaration) MarkInterface() *Declaration {
	d.isIface = true
	return d
}

// MarkAbstract classifies the declaration as abstract.
func (d *Declaration) MarkAbstract() *Declaration {
	d.isAbstract = true
	return d
}
