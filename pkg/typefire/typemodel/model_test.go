package typemodel

// declareCollections populates a universe with a small collections
// hierarchy used across the package tests:
//
//	String
//	Collection<E>                                  (interface)
//	List<E> extends Collection<E>                  (interface)
//	AbstractList<E> implements List<E>             (abstract)
//	ArrayList<E> extends AbstractList<E> implements List<E>
//	Map<K, V>                                      (interface)
//	HashMap<K, V> implements Map<K, V>
func declareCollections(u *Universe) {
	u.Declare("String")

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
}

// decl fetches a declaration by name, panicking if absent. Test helper.
func decl(u *Universe, name string) *Declaration {
	d, ok := u.Lookup(name)
	if !ok {
		panic("test fixture has no declaration " + name)
	}
	return d
}
