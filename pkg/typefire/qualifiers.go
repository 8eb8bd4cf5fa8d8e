package typefire

// Qualifier narrows which listeners an event reaches. Qualifiers are
// compared by value; duplicates collapse under set semantics.
type Qualifier struct {
	Name string
}

// Q is shorthand for constructing a qualifier.
func Q(name string) Qualifier {
	return Qualifier{Name: name}
}

// QualifierMatcher encapsulates the event qualifier matching rules.
type QualifierMatcher struct{}

// Matches reports whether a receiver's qualifiers accept an event fired
// with the payload qualifiers: the receiver must declare no qualifiers,
// or a subset of the payload's.
func (QualifierMatcher) Matches(receiver, payload []Qualifier) bool {
	if len(receiver) == 0 {
		return true
	}
	set := make(map[Qualifier]struct{}, len(payload))
	for _, q := range payload {
		set[q] = struct{}{}
	}
	for _, q := range receiver {
		if _, ok := set[q]; !ok {
			return false
		}
	}
	return true
}
