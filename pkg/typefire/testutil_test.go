package typefire

import (
	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// newTestUniverse builds the hierarchy the package tests share:
//
//	String
//	Collection<E>                                   (interface)
//	List<E> extends Collection<E>                   (interface)
//	AbstractList<E> implements List<E>              (abstract)
//	ArrayList<E> extends AbstractList<E> implements List<E>
//	Map<K, V>                                       (interface)
//	HashMap<K, V> implements Map<K, V>
//	Sup<S, T>
//	Sub<A, B> extends Sup<B, A>
//	Sub2<T> extends Sup<String, T>
//
// Go bindings: string divines as String, []string as ArrayList.
func newTestUniverse() *typemodel.Universe {
	u := typemodel.NewUniverse()

	str := u.Declare("String")

	collection := u.Declare("Collection", "E").MarkInterface()

	list := u.Declare("List", "E").MarkInterface()
	list.AddInterfaces(u.DeclaredType(collection, list.TypeVar(0)))

	abstractList := u.Declare("AbstractList", "E").MarkAbstract()
	abstractList.AddInterfaces(u.DeclaredType(list, abstractList.TypeVar(0)))

	arrayList := u.Declare("ArrayList", "E")
	arrayList.SetSuperclass(u.DeclaredType(abstractList, arrayList.TypeVar(0)))
	arrayList.AddInterfaces(u.DeclaredType(list, arrayList.TypeVar(0)))

	m := u.Declare("Map", "K", "V").MarkInterface()

	hashMap := u.Declare("HashMap", "K", "V")
	hashMap.AddInterfaces(u.DeclaredType(m, hashMap.TypeVar(0), hashMap.TypeVar(1)))

	sup := u.Declare("Sup", "S", "T")

	sub := u.Declare("Sub", "A", "B")
	sub.SetSuperclass(u.DeclaredType(sup, sub.TypeVar(1), sub.TypeVar(0)))

	sub2 := u.Declare("Sub2", "T")
	sub2.SetSuperclass(u.DeclaredType(sup, str.Prototype(), sub2.TypeVar(0)))

	u.BindGoType("", str)
	u.BindGoType([]string(nil), arrayList)

	return u
}

// decl fetches a declaration by name, panicking if absent. Test helper.
func decl(u *typemodel.Universe, name string) *typemodel.Declaration {
	d, ok := u.Lookup(name)
	if !ok {
		panic("test fixture has no declaration " + name)
	}
	return d
}

// parameterized is shorthand for a declared usage by name.
func parameterized(u *typemodel.Universe, name string, args ...*typemodel.Type) *typemodel.Type {
	return u.DeclaredType(decl(u, name), args...)
}
