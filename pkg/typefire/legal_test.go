package typefire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

func TestLegalEventType(t *testing.T) {
	u := newTestUniverse()
	list := decl(u, "List")
	str := decl(u, "String").Prototype()
	listOfString := parameterized(u, "List", str)
	bareVar := list.TypeVar(0)

	tests := []struct {
		name string
		t    *typemodel.Type
		want bool
	}{
		{"non-generic declared", str, true},
		{"top type", u.Top(), true},
		{"raw", u.DeclaredType(list), true},
		{"parameterized with declared argument", listOfString, true},
		{"nested parameterized", parameterized(u, "List", listOfString), true},
		{"bare type variable", bareVar, false},
		{"type variable argument", u.DeclaredType(list, bareVar), false},
		{"type variable buried in nesting", parameterized(u, "List", u.DeclaredType(list, bareVar)), false},
		{"primitive scalar", typemodel.PrimitiveType(typemodel.Int), false},
		{"top-level wildcard", u.UnboundedWildcard(), false},
		{"unbounded wildcard argument", u.DeclaredType(list, u.UnboundedWildcard()), true},
		{"extends wildcard argument", u.DeclaredType(list, u.ExtendsWildcard(str)), true},
		{"super wildcard argument", u.DeclaredType(list, u.SuperWildcard(str)), true},
		{"wildcard bound hiding a variable", u.DeclaredType(list, u.ExtendsWildcard(u.DeclaredType(list, bareVar))), false},
		{"primitive array", typemodel.ArrayOf(typemodel.PrimitiveType(typemodel.Int)), true},
		{"declared array", typemodel.ArrayOf(str), true},
		{"parameterized array", typemodel.ArrayOf(listOfString), true},
		{"array of type variable argument", typemodel.ArrayOf(u.DeclaredType(list, bareVar)), false},
		{"array of bare type variable", typemodel.ArrayOf(bareVar), false},
		{"matrix of primitives", typemodel.ArrayOf(typemodel.ArrayOf(typemodel.PrimitiveType(typemodel.Double))), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LegalEventType(nil, u, tc.t))
		})
	}
}

func TestLegalObservedType(t *testing.T) {
	u := newTestUniverse()
	list := decl(u, "List")
	str := decl(u, "String").Prototype()

	// A receiver slot may carry a type variable; an event type may not.
	assert.True(t, LegalObservedType(list.TypeVar(0)))
	assert.True(t, LegalObservedType(str))
	assert.True(t, LegalObservedType(typemodel.ArrayOf(str)))
	assert.True(t, LegalObservedType(typemodel.PrimitiveType(typemodel.Int)))

	assert.False(t, LegalObservedType(u.UnboundedWildcard()))
	assert.False(t, LegalObservedType(typemodel.NoneType()))
}
