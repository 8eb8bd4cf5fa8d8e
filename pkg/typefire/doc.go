/*
Package typefire provides generics-aware event typing and dispatch.

# Overview

typefire answers a question most event buses punt on: when a value of
runtime class ArrayList is fired through a slot declared List<String>,
which listeners should see it? The library models reified generic
types (primitives, arrays, declared types, type variables, wildcards),
infers the fully parameterized type of a runtime value from its
statically-known source type, enumerates the legal event types the
value bears, and matches them against listener slot types with the
full raw/parameterized/wildcard assignability rules.

The core algorithms are pure functions over immutable types:
  - Inference: fills in a concrete class's missing type arguments by
    walking its ancestry to the source type's declaration
  - Legal-type enumeration: a value bears its inferred type plus every
    supertype that contains no bare type variables
  - Matching: assignability with no array covariance, exact primitive
    wrapper pairing, and wildcard containment

# Basic Usage

Declare a type universe, bind Go types to it, and fire:

	u := typemodel.NewUniverse()
	collection := u.Declare("Collection", "E").MarkInterface()
	list := u.Declare("List", "E").MarkInterface()
	list.AddInterfaces(u.DeclaredType(collection, list.TypeVar(0)))
	arrayList := u.Declare("ArrayList", "E")
	arrayList.AddInterfaces(u.DeclaredType(list, arrayList.TypeVar(0)))
	u.BindGoType([]string(nil), arrayList)

	stringType := u.Declare("String").Prototype()

	d := typefire.NewDispatcher(u)
	set := typefire.NewListenerSet()
	set.Add(typefire.NewListener(
	    u.DeclaredType(list, stringType), nil,
	    func(ctx context.Context, event any) error {
	        fmt.Println(event)
	        return nil
	    }))

	source := u.DeclaredType(list, stringType)
	err := d.Fire(ctx, source, nil, []string{"hello"}, set.Iterator())

The event's type is inferred as ArrayList<String>, so listeners for
List<String>, Collection<String>, and Object all receive it; a
listener for List<Integer> does not.

# Qualifiers

Qualifiers narrow delivery further. A listener receives an event only
if its qualifiers are empty or a subset of the fired qualifiers:

	set.Add(typefire.NewListener(slot, []typefire.Qualifier{typefire.Q("audit")}, fn))
	d.Fire(ctx, source, []typefire.Qualifier{typefire.Q("audit")}, event, set.Iterator())

# Dead Letters

Events that match no listener can be recorded for inspection:

	store, err := deadletter.NewSQLiteStore("./deadletters.db")
	defer store.Close()

	d := typefire.NewDispatcher(u, typefire.WithDeadLetterStore(store))

# Observability

Enable logging, metrics, and tracing:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	d := typefire.NewDispatcher(u,
	    typefire.WithLogger(logger),
	    typefire.WithMetrics(true),
	    typefire.WithTracing(true))

Logs include structured fields: fire_id, event_type, matched_type,
duration_ms. OpenTelemetry metrics: typefire.fires, typefire.fire.latency_ms,
typefire.deliveries, etc. Tracing: typefire.fire > typefire.deliver spans.

# Error Handling

Inference and matching failures carry typed wrappers:

	err := d.Fire(ctx, source, nil, event, set.Iterator())
	var dispErr *typefire.DispatchError
	if errors.As(err, &dispErr) {
	    log.Printf("fire %s failed at %s: %v", dispErr.FireID, dispErr.Stage, dispErr.Err)
	}
	if errors.Is(err, typefire.ErrUnrelatedSource) {
	    // the source type is not a supertype of the event's class
	}

A type-parameter lookup miss during substitution assembly panics: it
signals a bug in the ancestry walk, never a caller error.

# Thread Safety

  - Universe is safe for concurrent use once its declarations are linked
  - Inferrer, Matcher, and Dispatcher are safe for concurrent use
  - ListenerSet is safe for concurrent use; iterators are snapshots

# Subpackages

  - typemodel: the reified type system (types, declarations, universe)
  - deadletter: undelivered-event storage (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
  - config: configuration loading (YAML, JSON)
  - registry: generic keyed registry used by the type universe
*/
package typefire
