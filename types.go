package routing

// Type is the minimal view of a host type the resolver needs.
//
// Implementations adapt whatever the host uses to describe types: a compiler
// AST, runtime reflection, or an in-memory declaration model (see the typesys
// and reflecttype packages). The resolver never inspects a concrete
// representation.
//
// Values must be comparable: the resolver uses them as map keys when caching
// owner resolution.
type Type interface {
	// QualifiedName returns the fully qualified name of the type. Two types
	// with the same qualified name are the same type, so aliases must resolve
	// to the name of the type they denote.
	QualifiedName() string

	// IsInterface reports whether the type is an interface or another
	// abstract capability rather than a concrete type.
	IsInterface() bool

	// IsAssignableFrom reports whether a value of other can be used where
	// this type is expected: other is this type or a narrower type
	// implementing or extending it.
	IsAssignableFrom(other Type) bool

	// TypeArguments returns the generic arguments of the type, or nil.
	TypeArguments() []Type

	// Method returns the result type of the named method declared on the
	// type or inherited from any of its supertypes.
	Method(name string) (Type, bool)
}

// SameType reports whether a and b denote the same type. Identity is by
// qualified name, not by structure.
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.QualifiedName() == b.QualifiedName()
}

// TypeName returns the qualified name of t, or "<none>" when t is nil.
func TypeName(t Type) string {
	if t == nil {
		return "<none>"
	}
	return t.QualifiedName()
}

// simpleName strips the qualifier from a type name, keeping generic
// arguments intact: "io.acme.Set<io.acme.OrderId>" becomes "Set<io.acme.OrderId>".
func simpleName(t Type) string {
	name := TypeName(t)
	cut := len(name)
	for i := 0; i < len(name); i++ {
		if name[i] == '<' || name[i] == '[' {
			cut = i
			break
		}
	}
	for i := cut - 1; i >= 0; i-- {
		if name[i] == '.' || name[i] == '/' {
			return name[i+1:]
		}
	}
	return name
}

// isStrictSubtype reports whether sub is assignable to super and the two are
// different types.
func isStrictSubtype(sub, super Type) bool {
	return !SameType(sub, super) && super.IsAssignableFrom(sub)
}

// SupertypeArguments is implemented by types that can report the arguments
// they bind for a generic supertype, such as a class extending Set<OrderId>.
type SupertypeArguments interface {
	TypeArgumentsOf(super Type) []Type
}

// typeArgumentsOf returns t's own type arguments, or those it binds for
// super when it has none.
func typeArgumentsOf(t, super Type) []Type {
	if args := t.TypeArguments(); len(args) > 0 {
		return args
	}
	if g, ok := t.(SupertypeArguments); ok {
		return g.TypeArgumentsOf(super)
	}
	return nil
}
