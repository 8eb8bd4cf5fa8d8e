package typemodel

import (
	"fmt"
	"reflect"
)

// Class is a runtime class descriptor: the statically erased shape of a
// concrete runtime value, before any type-argument inference. It is either
// void, a primitive, or a declaration, with any number of array
// dimensions.
type Class struct {
	kind Kind
	decl DeclIndex
	dims int
}

// VoidClass returns the descriptor for "no class". It is never a legal
// event class.
func VoidClass() Class {
	return Class{kind: None, decl: NoDecl}
}

// PrimitiveClass returns a descriptor for a primitive scalar, panicking
// for non-primitive kinds.
func PrimitiveClass(k Kind) Class {
	if !k.IsPrimitive() {
		panic(fmt.Sprintf("typemodel: %s is not a primitive kind", k))
	}
	return Class{kind: k, decl: NoDecl}
}

// ClassFor returns a descriptor for a declaration.
func ClassFor(d *Declaration) Class {
	return Class{kind: Declared, decl: d.Index()}
}

// Array returns a descriptor with one more array dimension.
func (c Class) Array() Class {
	c.dims++
	return c
}

// IsVoid reports whether the descriptor denotes no class.
func (c Class) IsVoid() bool {
	return c.kind == None
}

// IsPrimitive reports whether the descriptor is a primitive scalar.
func (c Class) IsPrimitive() bool {
	return c.kind.IsPrimitive() && c.dims == 0
}

// Kind returns the descriptor's kind, ignoring array dimensions.
func (c Class) Kind() Kind {
	return c.kind
}

// Dims returns the number of array dimensions.
func (c Class) Dims() int {
	return c.dims
}

// Decl returns the declaration index for declared descriptors.
func (c Class) Decl() DeclIndex {
	return c.decl
}

// goPrimitiveKinds maps Go scalar kinds onto the model's primitives.
// rune is int32 in Go, so runes divine as Int; bind a declaration
// explicitly when Char semantics are needed.
var goPrimitiveKinds = map[reflect.Kind]Kind{
	reflect.Bool:    Bool,
	reflect.Int8:    Byte,
	reflect.Int16:   Short,
	reflect.Int32:   Int,
	reflect.Int:     Int,
	reflect.Int64:   Long,
	reflect.Uint16:  Char,
	reflect.Float32: Float,
	reflect.Float64: Double,
}

// BindGoType associates a Go type (given by a sample value) with a
// declaration, so values of that type divine to the declaration's class.
func (u *Universe) BindGoType(sample any, d *Declaration) {
	u.bindings.Register(reflect.TypeOf(sample), d.Index())
}

// BindReflectType associates a reflect.Type with a declaration.
func (u *Universe) BindReflectType(rt reflect.Type, d *Declaration) {
	u.bindings.Register(rt, d.Index())
}

// Boxed returns the boxed-wrapper class for a primitive scalar
// descriptor, and any other descriptor unchanged. Primitive arrays are
// real runtime classes and are not boxed.
func (u *Universe) Boxed(c Class) Class {
	if !c.IsPrimitive() {
		return c
	}
	idx, ok := u.wrappers[c.kind]
	if !ok {
		return c
	}
	return Class{kind: Declared, decl: idx}
}

// ClassOf divines the runtime class descriptor of a Go value: pointer
// indirections are stripped, slice and array layers become array
// dimensions, scalar kinds map to primitives, and any other type must
// have been bound with BindGoType (or share a name with a registered
// declaration).
func (u *Universe) ClassOf(v any) (Class, error) {
	if v == nil {
		return VoidClass(), fmt.Errorf("typemodel: cannot divine the class of nil")
	}
	return u.classOfReflect(reflect.TypeOf(v))
}

func (u *Universe) classOfReflect(rt reflect.Type) (Class, error) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	dims := 0
	for rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array {
		// A bound slice/array type is a declared class, not an array.
		if _, ok := u.bindings.Get(rt); ok {
			break
		}
		rt = rt.Elem()
		dims++
		for rt.Kind() == reflect.Pointer {
			rt = rt.Elem()
		}
	}

	c, err := u.scalarClassOf(rt)
	if err != nil {
		return VoidClass(), err
	}
	c.dims = dims
	return c, nil
}

func (u *Universe) scalarClassOf(rt reflect.Type) (Class, error) {
	if idx, ok := u.bindings.Get(rt); ok {
		return Class{kind: Declared, decl: idx}, nil
	}
	if k, ok := goPrimitiveKinds[rt.Kind()]; ok {
		return PrimitiveClass(k), nil
	}
	if d, ok := u.Lookup(rt.Name()); ok {
		return ClassFor(d), nil
	}
	return VoidClass(), fmt.Errorf("typemodel: no declaration bound for Go type %s", rt)
}
