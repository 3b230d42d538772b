// Package reflecttype adapts Go runtime types to the routing type model.
//
// Go has no classes or static members, so the mapping is by convention:
//
//   - an owner is any named type; route functions are plain functions
//     registered against it with Candidate;
//   - a "subtype" is a type implementing an interface, or an interface
//     whose method set includes another interface's;
//   - the identifier accessor is a method (ID by default) with one result;
//   - a set of identifiers is a map[ID]struct{} or a []ID.
//
// Capabilities that Go cannot express as a plain interface, such as "has a
// method named ID returning anything", are modelled with Capability.
package reflecttype

import (
	"reflect"
	"runtime"

	"github.com/bjaus/routing"
)

// Type wraps a reflect.Type. The zero value is not usable; create one with
// Of or TypeOf.
type Type struct {
	t reflect.Type
}

var _ routing.Type = Type{}

// Of wraps t. It returns nil for a nil t so that absent types stay absent.
func Of(t reflect.Type) routing.Type {
	if t == nil {
		return nil
	}
	return Type{t: t}
}

// TypeOf returns the routing type of T:
//
//	reflecttype.TypeOf[OrderCreated]()
//	reflecttype.TypeOf[Event]() // an interface
func TypeOf[T any]() routing.Type {
	return Of(reflect.TypeFor[T]())
}

// Reflect returns the wrapped reflect.Type.
func (t Type) Reflect() reflect.Type { return t.t }

// QualifiedName returns "pkg/path.Name" for named types and the Go syntax
// of the type otherwise.
func (t Type) QualifiedName() string { return qualifiedName(t.t) }

func (t Type) String() string { return t.QualifiedName() }

// IsInterface reports whether the type is an interface type.
func (t Type) IsInterface() bool { return t.t.Kind() == reflect.Interface }

// IsAssignableFrom reports whether a value of other can be assigned to t.
// Pointer receivers count: *T implementing an interface makes T assignable
// too, matching how route functions take messages by value or pointer.
func (t Type) IsAssignableFrom(other routing.Type) bool {
	o, ok := other.(Type)
	if !ok {
		return false
	}
	if o.t == t.t {
		return true
	}
	if t.t.Kind() == reflect.Interface {
		if o.t.Implements(t.t) {
			return true
		}
		return o.t.Kind() != reflect.Pointer && o.t.Kind() != reflect.Interface &&
			reflect.PointerTo(o.t).Implements(t.t)
	}
	return o.t.AssignableTo(t.t)
}

// TypeArguments returns the element type of identifier containers: the key
// of a map, the element of a slice or array.
func (t Type) TypeArguments() []routing.Type {
	switch t.t.Kind() {
	case reflect.Map:
		return []routing.Type{Type{t: t.t.Key()}}
	case reflect.Slice, reflect.Array:
		return []routing.Type{Type{t: t.t.Elem()}}
	}
	return nil
}

// Method returns the single result type of the named method of t or *t.
func (t Type) Method(name string) (routing.Type, bool) {
	return methodResult(t.t, name)
}

func methodResult(t reflect.Type, name string) (routing.Type, bool) {
	m, ok := t.MethodByName(name)
	if !ok && t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		m, ok = reflect.PointerTo(t).MethodByName(name)
	}
	if !ok || m.Type.NumOut() != 1 {
		return nil, false
	}
	return Type{t: m.Type.Out(0)}, true
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// Capability is an abstract type satisfied by any type with a method of the
// given name and exactly one result. It stands in for generic capabilities
// such as "routable entity with some identifier type".
type Capability struct {
	name   string
	method string
}

var _ routing.Type = Capability{}

// NewCapability creates a capability named name requiring method.
func NewCapability(name, method string) Capability {
	return Capability{name: name, method: method}
}

func (c Capability) QualifiedName() string { return c.name }
func (c Capability) IsInterface() bool     { return true }
func (c Capability) TypeArguments() []routing.Type {
	return nil
}

// IsAssignableFrom reports whether other is a Go type with the method, or
// the capability itself.
func (c Capability) IsAssignableFrom(other routing.Type) bool {
	switch o := other.(type) {
	case Capability:
		return o == c
	case Type:
		_, ok := methodResult(o.t, c.method)
		return ok
	}
	return false
}

// Method returns nothing: the result type of a capability's method is only
// known for concrete implementations.
func (c Capability) Method(string) (routing.Type, bool) { return nil, false }

// Set is the container type for multicast results. It accepts maps with
// empty-struct values and slices.
type Set struct{}

var _ routing.Type = Set{}

func (Set) QualifiedName() string         { return "set" }
func (Set) IsInterface() bool             { return true }
func (Set) TypeArguments() []routing.Type { return nil }
func (Set) Method(string) (routing.Type, bool) {
	return nil, false
}

// IsAssignableFrom reports whether other is map[K]struct{} or []K.
func (Set) IsAssignableFrom(other routing.Type) bool {
	o, ok := other.(Type)
	if !ok {
		return false
	}
	switch o.t.Kind() {
	case reflect.Map:
		e := o.t.Elem()
		return e.Kind() == reflect.Struct && e.NumField() == 0
	case reflect.Slice:
		return true
	}
	return false
}

// Candidate describes fn, a Go function, as a route function of owner.
// A nil owner yields a top-level candidate. The location is taken from the
// function's entry point when available.
//
// Example:
//
//	reflecttype.Candidate(reflect.TypeFor[Order](), "RouteCreated",
//	    func(e OrderCreated) OrderID { return e.OrderID })
func Candidate(owner reflect.Type, name string, fn any) routing.Candidate {
	ft := reflect.TypeOf(fn)
	c := routing.Candidate{
		Name:      name,
		Static:    true,
		Enclosing: Of(owner),
	}
	if ft == nil || ft.Kind() != reflect.Func {
		return c
	}
	for i := range ft.NumIn() {
		c.Params = append(c.Params, Type{t: ft.In(i)})
	}
	if ft.NumOut() == 1 {
		c.Return = Type{t: ft.Out(0)}
	}
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		file, line := f.FileLine(f.Entry())
		c.Location = routing.Location{File: file, Line: line}
	}
	return c
}
