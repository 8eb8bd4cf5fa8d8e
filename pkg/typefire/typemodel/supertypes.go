package typemodel

// Supertypes enumerates the types a value of type t may legally be viewed
// as, most specific first. The type itself is always first and the top
// type is always last. For declared types the walk is breadth-first over
// the substituted declaration hierarchy, deduplicated by declaration, so
// each supertype usage carries the arguments implied by t's own.
//
// Arrays contribute the array type itself and the top type; primitives
// contribute only themselves.
func (u *Universe) Supertypes(t *Type) []*Type {
	switch t.Kind() {
	case Array:
		return []*Type{t, u.Top()}
	case Declared:
		if t.decl == u.top {
			return []*Type{t}
		}
		var out []*Type
		// The top type is withheld from the walk and appended last.
		seen := map[DeclIndex]bool{u.top: true}
		queue := []*Type{t}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if seen[cur.decl] {
				continue
			}
			seen[cur.decl] = true
			out = append(out, cur)
			d := u.Declaration(cur.decl)
			if sc := d.Superclass(); sc != nil {
				queue = append(queue, u.substitutedUsage(cur, sc))
			}
			for _, iface := range d.Interfaces() {
				queue = append(queue, u.substitutedUsage(cur, iface))
			}
		}
		out = append(out, u.Top())
		return out
	default:
		return []*Type{t}
	}
}

// substitutedUsage rewrites a direct supertype usage declared by cur's
// declaration into the usage implied by cur's own arguments. A raw cur
// erases the usage; a parameterized cur substitutes its arguments for the
// declaration's type variables.
func (u *Universe) substitutedUsage(cur, usage *Type) *Type {
	d := u.Declaration(cur.decl)
	if len(d.params) == 0 {
		return usage
	}
	if len(cur.args) == 0 {
		return u.RawForm(usage)
	}
	return u.substitute(usage, cur.decl, cur.args)
}

// substitute replaces every type variable owned by owner with the
// positionally corresponding replacement, rebuilding only the spine that
// actually changes.
func (u *Universe) substitute(t *Type, owner DeclIndex, replacements []*Type) *Type {
	switch t.kind {
	case TypeVar:
		if t.decl == owner {
			return replacements[t.param]
		}
		return t
	case Array:
		elem := u.substitute(t.elem, owner, replacements)
		if elem == t.elem {
			return t
		}
		return ArrayOf(elem)
	case Declared:
		if len(t.args) == 0 {
			return t
		}
		var changed bool
		args := make([]*Type, len(t.args))
		for i, a := range t.args {
			args[i] = u.substitute(a, owner, replacements)
			changed = changed || args[i] != a
		}
		if !changed {
			return t
		}
		return &Type{kind: Declared, decl: t.decl, args: args}
	case Wildcard:
		extends := t.extends
		super := t.super
		if extends != nil {
			extends = u.substitute(extends, owner, replacements)
		}
		if super != nil {
			super = u.substitute(super, owner, replacements)
		}
		if extends == t.extends && super == t.super {
			return t
		}
		return &Type{kind: Wildcard, extends: extends, super: super}
	default:
		return t
	}
}
