// Package routing builds dispatch tables from route functions declared on
// entity classes.
//
// A route function tells a runtime router which entity instance (or
// instances) should receive a message: given the message, and optionally its
// context, it returns an entity identifier or a set of identifiers. The
// package validates those declarations at build time and turns them into
// ordered, duplicate-free tables, one per owner class and message category.
// It never delivers messages itself.
//
// # Quick Start
//
// Describe the host conventions, create a resolver, and resolve the
// candidates a front end discovered:
//
//	r, err := routing.New(routing.Config{
//	    Entity:     entity,
//	    IDAccessor: "getId",
//	    Set:        set,
//	    Descriptors: []routing.Descriptor{
//	        {Category: routing.Command, Message: commandMessage, Context: commandContext},
//	        {Category: routing.Event, Message: eventMessage, Context: eventContext, Multicast: true},
//	        {Category: routing.StateUpdate, Message: entityState, Context: eventContext, Multicast: true},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//
//	res := r.Resolve(candidates)
//	if err := res.Err(); err != nil {
//	    return err // every problem found, joined
//	}
//	for _, t := range res.Tables {
//	    emit(t)
//	}
//
// # Type Model
//
// The resolver works on the small Type interface: qualified name,
// is-interface, is-assignable-from, type arguments and method lookup. It is
// never bound to a concrete representation. Two adapters ship with the
// module:
//
//   - typesys: an in-memory nominal type universe, used by the manifest
//     front end and handy in tests
//   - reflecttype: Go runtime types, with plain functions as route functions
//
// # The Pass
//
// Each candidate flows through these stages:
//
//  1. Validate: static member of a class, one or two parameters
//  2. Classify: the first parameter picks the category; a wrong second
//     parameter is WrongContextType
//  3. Owner resolution: the class must be an entity; the identifier type
//     is the result of the identifier accessor; the result type must be the
//     identifier or, where allowed, a set of it
//  4. Duplicate detection per owner, category and message type
//  5. Ordering and assembly per owner and category
//
// Every candidate is checked before the pass ends, so a single build
// surfaces every problem. A bucket (owner × category) with any error yields
// no table at all: a partial table would hide a misrouting bug.
//
// # Dispatch Order
//
// A runtime router tries entries in table order and stops at the first
// whose message type accepts the incoming message. Tables are therefore
// ordered by specificity, the way exception handlers are matched:
//
//   - concrete message types before interfaces
//   - subtypes before their supertypes
//   - otherwise, qualified name order
//
// Unrelated interfaces sharing a table are reported as AmbiguousOrder
// warnings, since a message implementing both goes to whichever sorts first.
// Disable them with WithAmbiguityWarnings(false).
//
// # Diagnostics
//
// Problems are reported as Diagnostic values carrying their kind and the
// parameters of the message, not a rendered string. Template and Params
// expose the parts; Error renders a default message. Diagnostics implement
// error and match by kind with errors.Is:
//
//	if errors.Is(res.Err(), routing.Diagnostic{Kind: routing.DuplicateRoute}) {
//	    // ...
//	}
//
// # Hooks
//
// Hooks observe a pass without coupling to a logging system:
//
//	r, err := routing.New(cfg,
//	    routing.WithOnDiagnostic(func(d routing.Diagnostic) {
//	        fmt.Fprintln(os.Stderr, d)
//	    }),
//	    routing.WithOnTable(func(t *routing.Table) {
//	        metrics.Incr("routing.tables", "category:"+t.Category.String())
//	    }),
//	    routing.WithLogger(slog.Default()),
//	)
//
// # Thread Safety
//
// A Resolver is safe for concurrent use. Each Resolve call keeps its own
// owner cache and diagnostics; nothing is shared between passes.
package routing
