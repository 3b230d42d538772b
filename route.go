package routing

import (
	"cmp"
	"fmt"
	"strings"
)

// Location points at a declaration in source for diagnostics.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Compare orders locations by file, then line, then column.
func (l Location) Compare(o Location) int {
	if c := cmp.Compare(l.File, o.File); c != 0 {
		return c
	}
	if c := cmp.Compare(l.Line, o.Line); c != 0 {
		return c
	}
	return cmp.Compare(l.Column, o.Column)
}

// Candidate is a raw route function declaration produced by a front end.
//
// Example:
//
//	routing.Candidate{
//	    Name:      "route",
//	    Location:  routing.Location{File: "order.go", Line: 42},
//	    Params:    []routing.Type{orderCreated},
//	    Return:    orderID,
//	    Static:    true,
//	    Enclosing: order,
//	}
type Candidate struct {
	Name     string
	Location Location

	// Params holds the declared parameter types in order.
	Params []Type

	// Return is the declared result type, or nil if the function has none.
	Return Type

	// Static reports whether the function is a static member of its
	// enclosing class. Hosts with companion-style holders set it when the
	// holder is a fixed singleton member of the class.
	Static bool

	// Enclosing is the class declaring the function, or nil for a
	// top-level function.
	Enclosing Type
}

// Signature renders the candidate as name(Param, ...) with simple type names.
func (c Candidate) Signature() string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = simpleName(p)
	}
	return c.Name + "(" + strings.Join(names, ", ") + ")"
}

// Shape says whether a route function yields one identifier or many.
type Shape int

const (
	Unicast Shape = iota
	Multicast
)

func (s Shape) String() string {
	if s == Multicast {
		return "multicast"
	}
	return "unicast"
}

// Owner is the entity class declaring route functions.
type Owner struct {
	// Type is the entity class itself.
	Type Type

	// ID is the entity identifier type, taken from the result of the
	// identifier accessor.
	ID Type
}

// Name returns the qualified name of the owner class.
func (o *Owner) Name() string { return TypeName(o.Type) }

func (o *Owner) String() string { return o.Name() }

// RouteFunction is a validated and classified Candidate.
type RouteFunction struct {
	Name     string
	Category Category
	Owner    *Owner

	// Message is the type of the first parameter.
	Message Type

	// Context is the type of the second parameter, or nil.
	Context Type

	Return   Type
	Shape    Shape
	Location Location
}

// AcceptsContext reports whether the function takes a context parameter.
func (f *RouteFunction) AcceptsContext() bool { return f.Context != nil }

// Signature renders the function as name(Message[, Context]). When qualified
// is false, simple type names are used.
func (f *RouteFunction) Signature(qualified bool) string {
	name := simpleName
	if qualified {
		name = TypeName
	}
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(name(f.Message))
	if f.AcceptsContext() {
		b.WriteString(", ")
		b.WriteString(name(f.Context))
	}
	b.WriteByte(')')
	return b.String()
}

func (f *RouteFunction) String() string { return f.Signature(true) }
