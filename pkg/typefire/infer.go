package typefire

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/typefire/pkg/typefire/observability"
	"github.com/randalmurphal/typefire/pkg/typefire/typemodel"
)

// Inferrer computes the most specific parameterized type of a concrete
// runtime value, given a statically-known (possibly generic) source type.
// It is pure and safe for concurrent use.
type Inferrer struct {
	u       *typemodel.Universe
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// NewInferrer creates an Inferrer over a universe. The logger may be nil
// to disable the illegal-event-type warnings; a nil metrics recorder
// disables the illegal-type counter.
func NewInferrer(u *typemodel.Universe, logger *slog.Logger, metrics observability.MetricsRecorder) *Inferrer {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Inferrer{u: u, logger: logger, metrics: metrics}
}

// Universe returns the universe the inferrer operates over.
func (in *Inferrer) Universe() *typemodel.Universe {
	return in.u
}

// EventTypesFor returns the legal event types an event value bears: the
// supertypes of its inferred event type, most specific first, with
// illegal candidates excluded (warned about and counted, never fatal).
func (in *Inferrer) EventTypesFor(ctx context.Context, source *typemodel.Type, event any) ([]*typemodel.Type, error) {
	class, err := in.u.ClassOf(event)
	if err != nil {
		return nil, err
	}
	// A fired scalar arrives boxed, the way any value crossing an any
	// boundary does.
	t, err := in.EventTypeOf(source, in.u.Boxed(class))
	if err != nil {
		return nil, err
	}
	supertypes := in.u.Supertypes(t)
	legal := make([]*typemodel.Type, 0, len(supertypes))
	for _, s := range supertypes {
		if LegalEventType(in.logger, in.u, s) {
			legal = append(legal, s)
			continue
		}
		in.metrics.RecordIllegalType(ctx)
	}
	return legal, nil
}

// EventTypeOf computes the event type of a concrete runtime class,
// inferring missing type arguments from the source type.
//
// Given:
//
//	class Sup<S, T> {}
//	class Sub<A, B> extends Sup<B, A> {}
//	class Sub2<T> extends Sup<String, T> {}
//
//	    +----------------------+-------------+--------------------------+---------------------------------------------+
//	    | source               | class       | result                   | notes                                       |
//	+---+----------------------+-------------+--------------------------+---------------------------------------------+
//	| 1 | N/A                  | int         | int                      | (source not checked or used)                |
//	| 2 | N/A                  | int[]       | int[]                    | (source not checked or used)                |
//	| 3 | N/A                  | Object      | Object                   | (source not checked or used)                |
//	| 4 | N/A                  | Object[]    | Object[]                 | (source not checked or used)                |
//	| 5 | int                  | ArrayList   | ErrSourceCannotSupply... | (source cannot supply type arguments)       |
//	| 6 | int[]                | ArrayList   | ErrSourceCannotSupply... | (source cannot supply type arguments)       |
//	| 7 | List                 | ArrayList   | ErrSourceCannotSupply... | (source cannot supply type arguments)       |
//	| 8 | List[]               | ArrayList   | ErrSourceCannotSupply... | (source cannot supply type arguments)       |
//	| 9 | AbstractList<String> | ArrayList   | ArrayList<String>        |                                             |
//	|10 | List<String>[]       | ArrayList[] | ArrayList<String>[]      |                                             |
//	|11 | List<String>[]       | ArrayList   | ArrayList<String>        | (source dimensions don't matter)            |
//	|12 | List<T>              | ArrayList   | ErrUnresolvedSource...   | (arguments must be declared or array types) |
//	|13 | List<T>[]            | ArrayList   | ErrUnresolvedSource...   | (arguments must be declared or array types) |
//	|14 | Map<String, String>  | ArrayList   | ErrUnrelatedSource       | (source is not a supertype)                 |
//	|15 | Sup<String, Object>  | Sub         | Sub<Object, String>      |                                             |
//	|16 | Sup<String, Object>  | Sub2        | Sub2<Object>             |                                             |
//	+---+----------------------+-------------+--------------------------+---------------------------------------------+
func (in *Inferrer) EventTypeOf(source *typemodel.Type, class typemodel.Class) (*typemodel.Type, error) {
	if class.IsVoid() {
		return nil, &InferenceError{
			Source: in.u.Format(source),
			Class:  "void",
			Err:    ErrVoidEventClass,
		}
	}

	// Primitive scalars and arrays need no inference; source is ignored.
	if class.Kind().IsPrimitive() {
		t := typemodel.PrimitiveType(class.Kind())
		for i := 0; i < class.Dims(); i++ {
			t = typemodel.ArrayOf(t)
		}
		return t, nil
	}

	d := in.u.Declaration(class.Decl())
	t, err := in.declaredEventType(source, d)
	if err != nil {
		return nil, err
	}
	for i := 0; i < class.Dims(); i++ {
		t = typemodel.ArrayOf(t)
	}
	return t, nil
}

func (in *Inferrer) declaredEventType(source *typemodel.Type, d *typemodel.Declaration) (*typemodel.Type, error) {
	usage := d.Prototype()
	if len(d.TypeParameters()) == 0 {
		// Non-generic declared type; cases 3 and 4 above.
		return usage, nil
	}

	// Optimization: if every existing argument of the usage is already a
	// concrete reference kind, there is nothing to infer.
	needsInference := false
	for _, ta := range usage.Args() {
		switch ta.Kind() {
		case typemodel.TypeVar:
			needsInference = true
		case typemodel.Array, typemodel.Declared, typemodel.Wildcard:
			// Already concrete.
		default:
			inconsistency("usage %s carries a non-reference type argument %s", in.u.Format(usage), in.u.Format(ta))
		}
	}
	if !needsInference {
		return usage, nil
	}

	// An absent source is fine for classes that need no inference (handled
	// above), but it cannot supply type arguments.
	if source == nil {
		return nil, &InferenceError{
			Source: in.u.Format(source),
			Class:  d.Name(),
			Err:    ErrSourceCannotSupplyArguments,
		}
	}

	// "De-arrayize" the source; only its element type can supply inferred
	// type arguments, so its dimension count is irrelevant here.
	original := source
	for source.Kind() == typemodel.Array {
		source = source.Elem()
	}
	if source.Kind() != typemodel.Declared {
		return nil, &InferenceError{
			Source: in.u.Format(original),
			Class:  d.Name(),
			Err:    ErrSourceCannotSupplyArguments,
		}
	}
	sourceDecl := in.u.Declaration(source.Decl())

	// Find the usage within the event declaration's ancestry that
	// corresponds to the source declaration, with the event declaration's
	// own type variables intact. Starting from the prototype is what makes
	// those variables propagate.
	rhs := in.congruentSupertype(sourceDecl, usage)
	if rhs == nil {
		// The source and the event class are unrelated. Taking arguments
		// from an unrelated source almost certainly reflects caller error.
		return nil, &InferenceError{
			Source: in.u.Format(original),
			Class:  d.Name(),
			Err:    ErrUnrelatedSource,
		}
	}
	if rhs == usage {
		// The congruent-supertype contract: returning the prototype itself
		// means no substitution was necessary.
		return usage, nil
	}

	lhsArgs := source.Args()
	if len(lhsArgs) == 0 {
		// A raw or non-generic source cannot supply type arguments.
		return nil, &InferenceError{
			Source: in.u.Format(original),
			Class:  d.Name(),
			Err:    ErrSourceCannotSupplyArguments,
		}
	}

	// Connect the left hand side (the source usage) to the right hand side
	// (the congruent supertype, whose arguments are the event
	// declaration's type variables): e.g. for Sup<String, Object> against
	// Sup<B, A>, map B to String and A to Object.
	rhsArgs := rhs.Args()
	if len(rhsArgs) != len(lhsArgs) {
		inconsistency("congruent supertype %s and source %s disagree on arity",
			in.u.Format(rhs), in.u.Format(source))
	}
	type varKey struct {
		decl  typemodel.DeclIndex
		param int
	}
	m := make(map[varKey]*typemodel.Type, len(lhsArgs))
	for i, lhsArg := range lhsArgs {
		switch lhsArg.Kind() {
		case typemodel.Array, typemodel.Declared, typemodel.Wildcard:
		default:
			return nil, &InferenceError{
				Source: in.u.Format(original),
				Class:  d.Name(),
				Err:    ErrUnresolvedSourceArgument,
			}
		}

		rhsArg := rhsArgs[i]
		switch rhsArg.Kind() {
		case typemodel.Array, typemodel.Declared:
			// Already satisfied by a constant in the extends clause; only
			// type variables need replacing.
			continue
		case typemodel.TypeVar:
			m[varKey{rhsArg.Decl(), rhsArg.ParamIndex()}] = lhsArg
		default:
			// The right hand side comes from the prototypical hierarchy,
			// which never carries wildcards or other kinds.
			inconsistency("congruent supertype %s carries argument of kind %s",
				in.u.Format(rhs), rhsArg.Kind())
		}
	}

	if len(m) == 0 {
		// No substitution was performed for whatever reason.
		return usage, nil
	}

	// Assemble the event declaration's own parameters from the map, in
	// declaration order. Every parameter must resolve; a miss is a gap in
	// the congruent-supertype walk, not a caller error.
	params := d.TypeParameters()
	args := make([]*typemodel.Type, len(params))
	for i := range params {
		ta, ok := m[varKey{d.Index(), i}]
		if !ok {
			inconsistency("type parameter %s of %s was not resolved by substitution",
				params[i].Name, d.Name())
		}
		args[i] = ta
	}
	return in.u.DeclaredType(d, args...), nil
}

// congruentSupertype finds the usage within subtype's ancestry that
// corresponds to the target declaration, preserving subtype's own type
// variable identities. subtype must be a declared type and is normalized
// to its declaration's prototype first; only the prototype propagates
// type variables correctly through inheritance.
//
// The superclass chain is walked first; if it exhausts without a match,
// the interface graph is searched breadth-first from the original
// subtype's direct interfaces, deduplicated by declaration. Returns nil
// when target is not an ancestor at all, and returns subtype's prototype
// itself (pointer-identical) when no substitution is needed - callers
// must check for that identity to short-circuit.
func (in *Inferrer) congruentSupertype(target *typemodel.Declaration, subtype *typemodel.Type) *typemodel.Type {
	if subtype.Kind() != typemodel.Declared {
		inconsistency("congruent supertype of non-declared type %s", in.u.Format(subtype))
	}
	subtypeDecl := in.u.Declaration(subtype.Decl())
	if len(subtype.Args()) == 0 {
		// Normalize a raw usage to the prototype. Very important.
		subtype = subtypeDecl.Prototype()
	}

	rhs := subtype
	rhsDecl := subtypeDecl
	for rhsDecl != nil && rhsDecl != target {
		superclass := rhsDecl.Superclass()
		if superclass == nil {
			// No superclass left; fall through to the interface search.
			rhs = nil
			rhsDecl = nil
			continue
		}
		// Never discard the usage: it carries the substituted variables.
		rhs = superclass
		rhsDecl = in.u.Declaration(superclass.Decl())
	}
	if rhsDecl != nil {
		return rhs
	}

	seen := make(map[typemodel.DeclIndex]bool)
	var queue []*typemodel.Type
	for _, iface := range subtypeDecl.Interfaces() {
		if !seen[iface.Decl()] {
			seen[iface.Decl()] = true
			queue = append(queue, iface)
		}
	}
	for len(queue) > 0 {
		iface := queue[0]
		queue = queue[1:]
		ifaceDecl := in.u.Declaration(iface.Decl())
		if ifaceDecl == target {
			return iface
		}
		for _, super := range ifaceDecl.Interfaces() {
			if !seen[super.Decl()] {
				seen[super.Decl()] = true
				queue = append(queue, super)
			}
		}
	}
	return nil
}
