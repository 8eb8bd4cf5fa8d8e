package typemodel

// Kind discriminates the closed set of type variants in the model.
// Every algorithm in typefire switches exhaustively over Kind, so adding
// a variant forces a review of every consumption site.
type Kind int

const (
	// None is the absence of a type ("void"). It is never a legal event
	// or observed type.
	None Kind = iota

	// Primitive kinds.
	Bool
	Byte
	Char
	Double
	Float
	Int
	Long
	Short

	// Array is an array type with an element type.
	Array

	// Declared is a usage of a class or interface declaration, raw or
	// parameterized.
	Declared

	// TypeVar is a type variable introduced by a declaration's type
	// parameter.
	TypeVar

	// Wildcard is an unknown type argument, optionally bounded.
	Wildcard
)

var kindNames = map[Kind]string{
	None:     "none",
	Bool:     "boolean",
	Byte:     "byte",
	Char:     "char",
	Double:   "double",
	Float:    "float",
	Int:      "int",
	Long:     "long",
	Short:    "short",
	Array:    "array",
	Declared: "declared",
	TypeVar:  "typevar",
	Wildcard: "wildcard",
}

// String returns the kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsPrimitive returns true for the eight primitive kinds.
func (k Kind) IsPrimitive() bool {
	switch k {
	case Bool, Byte, Char, Double, Float, Int, Long, Short:
		return true
	default:
		return false
	}
}

// PrimitiveKinds lists the eight primitive kinds in a stable order.
var PrimitiveKinds = []Kind{Bool, Byte, Char, Double, Float, Int, Long, Short}

// WrapperNames maps each primitive kind to the name of its boxed-wrapper
// declaration. The mapping is fixed; a primitive receiver slot accepts
// exactly its wrapper as a declared payload.
var WrapperNames = map[Kind]string{
	Bool:   "Boolean",
	Byte:   "Byte",
	Char:   "Character",
	Double: "Double",
	Float:  "Float",
	Int:    "Integer",
	Long:   "Long",
	Short:  "Short",
}
