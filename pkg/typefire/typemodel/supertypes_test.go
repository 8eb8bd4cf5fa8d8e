package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rendered maps a type list to its diagnostic form for order assertions.
func rendered(u *Universe, ts []*Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = u.Format(t)
	}
	return out
}

func TestSupertypes_ParameterizedWalk(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	arrayList := decl(u, "ArrayList")
	str := decl(u, "String").Prototype()

	got := u.Supertypes(u.DeclaredType(arrayList, str))

	assert.Equal(t, []string{
		"ArrayList<String>",
		"AbstractList<String>",
		"List<String>",
		"Collection<String>",
		"Object",
	}, rendered(u, got))
}

func TestSupertypes_MostSpecificFirstTopLast(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	arrayList := decl(u, "ArrayList")
	str := decl(u, "String").Prototype()

	got := u.Supertypes(u.DeclaredType(arrayList, str))
	require.NotEmpty(t, got)
	assert.True(t, SameType(got[0], u.DeclaredType(arrayList, str)))
	assert.True(t, u.IsTop(got[len(got)-1]))
}

func TestSupertypes_RawUsageErasesAncestry(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	arrayList := decl(u, "ArrayList")

	got := u.Supertypes(u.DeclaredType(arrayList))

	assert.Equal(t, []string{
		"ArrayList",
		"AbstractList",
		"List",
		"Collection",
		"Object",
	}, rendered(u, got))
}

func TestSupertypes_NonGeneric(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	str := decl(u, "String").Prototype()

	got := u.Supertypes(str)
	assert.Equal(t, []string{"String", "Object"}, rendered(u, got))
}

func TestSupertypes_Top(t *testing.T) {
	u := NewUniverse()

	got := u.Supertypes(u.Top())
	require.Len(t, got, 1)
	assert.True(t, u.IsTop(got[0]))
}

func TestSupertypes_Array(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	str := decl(u, "String").Prototype()

	got := u.Supertypes(ArrayOf(str))
	require.Len(t, got, 2)
	assert.True(t, SameType(got[0], ArrayOf(str)))
	assert.True(t, u.IsTop(got[1]))
}

func TestSupertypes_Primitive(t *testing.T) {
	u := NewUniverse()

	got := u.Supertypes(PrimitiveType(Int))
	require.Len(t, got, 1)
	assert.Same(t, PrimitiveType(Int), got[0])
}

func TestSupertypes_DiamondDeduplicatedByDeclaration(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	str := decl(u, "String").Prototype()

	// ArrayList reaches List both through its superclass and directly;
	// List<String> must appear exactly once.
	arrayList := decl(u, "ArrayList")
	got := u.Supertypes(u.DeclaredType(arrayList, str))

	count := 0
	for _, s := range got {
		if s.Kind() == Declared && s.Decl() == decl(u, "List").Index() {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSupertypes_SubstitutesThroughIndirection(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	list := decl(u, "List")
	str := decl(u, "String").Prototype()

	// Pairwise<T> implements List<List<T>>: the walk must substitute T
	// inside the nested argument as well.
	pairwise := u.Declare("Pairwise", "T")
	pairwise.AddInterfaces(u.DeclaredType(list, u.DeclaredType(list, pairwise.TypeVar(0))))

	got := u.Supertypes(u.DeclaredType(pairwise, str))
	assert.Equal(t, []string{
		"Pairwise<String>",
		"List<List<String>>",
		"Collection<List<String>>",
		"Object",
	}, rendered(u, got))
}

func TestSupertypes_WildcardArgumentsPropagate(t *testing.T) {
	u := NewUniverse()
	declareCollections(u)
	list := decl(u, "List")
	str := decl(u, "String").Prototype()

	got := u.Supertypes(u.DeclaredType(list, u.ExtendsWildcard(str)))
	assert.Equal(t, []string{
		"List<? extends String>",
		"Collection<? extends String>",
		"Object",
	}, rendered(u, got))
}
