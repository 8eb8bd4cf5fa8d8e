package typefire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

func TestMatches_DeclaredReceivers(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)

	str := decl(u, "String").Prototype()
	integer := u.WrapperFor(typemodel.Int)
	rawList := parameterized(u, "List")
	listOfString := parameterized(u, "List", str)
	listOfInteger := parameterized(u, "List", integer)
	arrayListOfString := parameterized(u, "ArrayList", str)

	tests := []struct {
		name     string
		receiver *typemodel.Type
		payload  *typemodel.Type
		want     bool
	}{
		{"identical non-generic", str, str, true},
		{"distinct non-generic", str, integer, false},
		{"identical parameterized", listOfString, listOfString, true},
		{"different arguments", listOfString, listOfInteger, false},
		{"different declarations", listOfString, arrayListOfString, false},
		{"top receiver rejects narrower declaration", u.Top(), arrayListOfString, false},

		// Raw receiver: identical declaration only.
		{"raw receiver accepts own parameterization", rawList, listOfString, true},
		{"raw receiver rejects subtype parameterization", rawList, arrayListOfString, false},
		{"raw receiver accepts raw", rawList, rawList, true},

		// Raw payload against a parameterized receiver: every receiver
		// argument must be unbounded or top.
		{"top-argument receiver accepts raw", parameterized(u, "List", u.Top()), rawList, true},
		{"unbounded-variable receiver accepts raw", decl(u, "List").Prototype(), rawList, true},
		{"concrete-argument receiver rejects raw", listOfString, rawList, false},
		{"raw payload of a different declaration", parameterized(u, "ArrayList", u.Top()), rawList, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Matches(tc.receiver, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatches_WildcardArguments(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)

	str := decl(u, "String").Prototype()
	integer := u.WrapperFor(typemodel.Int)
	listOfString := parameterized(u, "List", str)

	tests := []struct {
		name     string
		receiver *typemodel.Type
		payload  *typemodel.Type
		want     bool
	}{
		{"unbounded wildcard", parameterized(u, "List", u.UnboundedWildcard()), listOfString, true},
		{"extends accepts the bound", parameterized(u, "List", u.ExtendsWildcard(str)), listOfString, true},
		{"extends rejects unrelated argument", parameterized(u, "List", u.ExtendsWildcard(str)), parameterized(u, "List", integer), false},
		{"extends accepts narrower argument", parameterized(u, "Collection", u.ExtendsWildcard(parameterized(u, "Collection", str))), parameterized(u, "Collection", listOfString), true},
		{"super accepts wider argument", parameterized(u, "List", u.SuperWildcard(str)), parameterized(u, "List", u.Top()), true},
		{"super rejects unrelated argument", parameterized(u, "List", u.SuperWildcard(str)), parameterized(u, "List", integer), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Matches(tc.receiver, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatches_NestedArguments(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)
	str := decl(u, "String").Prototype()

	listOfListOfString := parameterized(u, "List", parameterized(u, "List", str))

	got, err := m.Matches(listOfListOfString, listOfListOfString)
	require.NoError(t, err)
	assert.True(t, got)

	// The nested argument pair must itself match; a subtype argument's
	// raw form differs, so the pair fails.
	got, err = m.Matches(listOfListOfString, parameterized(u, "List", parameterized(u, "ArrayList", str)))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMatches_TypeVariableReceivers(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)
	str := decl(u, "String").Prototype()
	arrayListOfString := parameterized(u, "ArrayList", str)

	// An unbounded variable accepts everything assignable to the top.
	unbounded := decl(u, "List").TypeVar(0)
	got, err := m.Matches(unbounded, arrayListOfString)
	require.NoError(t, err)
	assert.True(t, got)

	// A bounded variable accepts only payloads that flow into the bound.
	bounded := u.Declare("Strings", "T")
	bounded.SetBound(0, parameterized(u, "Collection", str))

	got, err = m.Matches(bounded.TypeVar(0), arrayListOfString)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = m.Matches(bounded.TypeVar(0), u.WrapperFor(typemodel.Int))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMatches_ArrayReceivers(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)

	str := decl(u, "String").Prototype()
	intType := typemodel.PrimitiveType(typemodel.Int)

	tests := []struct {
		name     string
		receiver *typemodel.Type
		payload  *typemodel.Type
		want     bool
	}{
		{"identical primitive element", typemodel.ArrayOf(intType), typemodel.ArrayOf(intType), true},
		{"identical declared element", typemodel.ArrayOf(str), typemodel.ArrayOf(str), true},
		// No array covariance: element types must be identical.
		{"int[] never matches Object[]", typemodel.ArrayOf(u.Top()), typemodel.ArrayOf(intType), false},
		{"String[] never matches Object[]", typemodel.ArrayOf(u.Top()), typemodel.ArrayOf(str), false},
		{"dimension mismatch", typemodel.ArrayOf(typemodel.ArrayOf(intType)), typemodel.ArrayOf(intType), false},
		{"declared payload", typemodel.ArrayOf(str), str, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Matches(tc.receiver, tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatches_PrimitiveReceivers(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)

	intType := typemodel.PrimitiveType(typemodel.Int)

	got, err := m.Matches(intType, u.WrapperFor(typemodel.Int))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = m.Matches(intType, u.WrapperFor(typemodel.Long))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = m.Matches(intType, decl(u, "String").Prototype())
	require.NoError(t, err)
	assert.False(t, got)

	got, err = m.Matches(intType, typemodel.ArrayOf(intType))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestMatches_IllegalKinds(t *testing.T) {
	u := newTestUniverse()
	m := NewMatcher(u)
	str := decl(u, "String").Prototype()

	// A wildcard can never be a receiver slot type.
	_, err := m.Matches(u.UnboundedWildcard(), str)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalReceiver)
	var matchErr *MatchError
	assert.ErrorAs(t, err, &matchErr)

	// A payload can only be an array or a declared type.
	_, err = m.Matches(str, decl(u, "List").TypeVar(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalPayload)

	_, err = m.Matches(str, u.UnboundedWildcard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalPayload)

	_, err = m.Matches(typemodel.ArrayOf(str), typemodel.PrimitiveType(typemodel.Int))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalPayload)
}
