// Package typesys provides an in-memory nominal type model.
//
// A Universe holds named classes and interfaces with their supertypes and
// method result types, generic instances such as Set<OrderId>, and aliases.
// Its types implement routing.Type, so hosts that describe declarations as
// data (a manifest, a compiler plugin's output) can hand them to the
// resolver without writing their own adapter.
package typesys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bjaus/routing"
)

var (
	// ErrUnknownType is returned when a reference names no declared type.
	ErrUnknownType = errors.New("typesys: unknown type")
	// ErrDuplicateType is returned when a name is declared twice.
	ErrDuplicateType = errors.New("typesys: duplicate type")
	// ErrMalformedRef is returned for a reference that does not parse.
	ErrMalformedRef = errors.New("typesys: malformed type reference")
)

// Kind is the declaration kind of a type.
type Kind int

const (
	Class Kind = iota
	Interface
)

func (k Kind) String() string {
	if k == Interface {
		return "interface"
	}
	return "class"
}

// Type is a declared type or a generic instance of one.
type Type struct {
	name    string
	kind    Kind
	supers  []*Type
	methods map[string]routing.Type

	// origin and args are set for generic instances only.
	origin *Type
	args   []*Type
}

var (
	_ routing.Type               = (*Type)(nil)
	_ routing.SupertypeArguments = (*Type)(nil)
)

// QualifiedName returns the declared name, with arguments for instances:
// "io.acme.Set<io.acme.OrderId>".
func (t *Type) QualifiedName() string { return t.name }

// IsInterface reports whether the type was declared as an interface.
func (t *Type) IsInterface() bool { return t.decl().kind == Interface }

// Kind returns the declaration kind.
func (t *Type) Kind() Kind { return t.decl().kind }

func (t *Type) String() string { return t.name }

// decl returns the generic declaration of an instance, or t itself.
func (t *Type) decl() *Type {
	if t.origin != nil {
		return t.origin
	}
	return t
}

// Supertypes returns the direct supertypes in declaration order.
func (t *Type) Supertypes() []*Type { return t.decl().supers }

// TypeArguments returns the arguments of a generic instance.
func (t *Type) TypeArguments() []routing.Type {
	if len(t.args) == 0 {
		return nil
	}
	out := make([]routing.Type, len(t.args))
	for i, a := range t.args {
		out[i] = a
	}
	return out
}

// IsAssignableFrom reports whether other is t or one of its subtypes.
//
// Generic instances are invariant in their arguments: Set<A> accepts
// Set<A> and its subtypes, never Set<B>. A generic declaration used without
// arguments accepts every instance of itself and of its subtypes. A raw
// supertype of an instance inherits the instance's arguments, so
// SortedSet<A> extending Set is a Set<A>.
func (t *Type) IsAssignableFrom(other routing.Type) bool {
	o, ok := other.(*Type)
	if !ok || o == nil {
		return false
	}
	if t == o {
		return true
	}
	return t.derives(o)
}

// derives reports whether sub, or a type it reaches through its
// supertypes, has t's declaration and matches t's arguments.
func (t *Type) derives(sub *Type) bool {
	_, ok := t.search(sub)
	return ok
}

// search walks sub and its supertypes for a node with t's declaration and
// matching arguments, returning the arguments bound at that node.
func (t *Type) search(sub *Type) ([]*Type, bool) {
	type visit struct {
		c    *Type
		args string
	}
	seen := make(map[visit]bool)
	var walk func(c *Type, args []*Type) ([]*Type, bool)
	walk = func(c *Type, args []*Type) ([]*Type, bool) {
		if len(c.args) > 0 {
			args = c.args
		}
		if c.decl() == t.decl() && (len(t.args) == 0 || sameArgs(t.args, args)) {
			return args, true
		}
		v := visit{c: c.decl(), args: argNames(args)}
		if seen[v] {
			return nil, false
		}
		seen[v] = true
		for _, s := range c.decl().supers {
			if found, ok := walk(s, args); ok {
				return found, true
			}
		}
		return nil, false
	}
	return walk(sub, nil)
}

// TypeArgumentsOf returns the arguments t binds for the generic supertype
// super: for OrderIds extending Set<OrderId> and super Set, [OrderId].
func (t *Type) TypeArgumentsOf(super routing.Type) []routing.Type {
	s, ok := super.(*Type)
	if !ok || s == nil {
		return nil
	}
	args, _ := s.decl().search(t)
	if len(args) == 0 {
		return nil
	}
	out := make([]routing.Type, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func sameArgs(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func argNames(args []*Type) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.name
	}
	return strings.Join(names, ", ")
}

// Method returns the result type of the named method, searching the type
// first and then its supertypes breadth-first in declaration order.
func (t *Type) Method(name string) (routing.Type, bool) {
	queue := []*Type{t.decl()}
	seen := make(map[*Type]bool)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		if r, ok := c.methods[name]; ok {
			return r, true
		}
		for _, s := range c.supers {
			queue = append(queue, s.decl())
		}
	}
	return nil, false
}

// Universe is a set of named types. It is not safe for concurrent
// mutation; build it once and then share it read-only.
type Universe struct {
	types     map[string]*Type
	instances map[string]*Type
}

// New creates an empty Universe.
func New() *Universe {
	return &Universe{
		types:     make(map[string]*Type),
		instances: make(map[string]*Type),
	}
}

// Declare adds a named type of the given kind.
func (u *Universe) Declare(name string, kind Kind) (*Type, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "<>, ") {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRef, name)
	}
	if _, ok := u.types[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}
	t := &Type{name: name, kind: kind}
	u.types[name] = t
	return t, nil
}

// Class declares a class with the given supertypes. It panics if the name
// is taken; use Declare when names come from input.
func (u *Universe) Class(name string, supers ...*Type) *Type {
	return u.must(name, Class, supers)
}

// Interface declares an interface extending the given interfaces. It
// panics if the name is taken; use Declare when names come from input.
func (u *Universe) Interface(name string, supers ...*Type) *Type {
	return u.must(name, Interface, supers)
}

func (u *Universe) must(name string, kind Kind, supers []*Type) *Type {
	t, err := u.Declare(name, kind)
	if err != nil {
		panic(err)
	}
	t.supers = append(t.supers, supers...)
	return t
}

// Extend adds direct supertypes to a declared type.
func (t *Type) Extend(supers ...*Type) *Type {
	d := t.decl()
	d.supers = append(d.supers, supers...)
	return t
}

// WithMethod records a method and its result type on a declared type.
func (t *Type) WithMethod(name string, result routing.Type) *Type {
	d := t.decl()
	if d.methods == nil {
		d.methods = make(map[string]routing.Type)
	}
	d.methods[name] = result
	return t
}

// Alias makes alias another name for target. Lookups of alias return
// target itself, so both names denote one type.
func (u *Universe) Alias(alias string, target *Type) error {
	alias = strings.TrimSpace(alias)
	if _, ok := u.types[alias]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, alias)
	}
	u.types[alias] = target
	return nil
}

// Lookup returns the type declared under name or one of its aliases.
func (u *Universe) Lookup(name string) (*Type, bool) {
	t, ok := u.types[name]
	return t, ok
}

// Instance returns the generic instance of decl with the given arguments.
// Instances are interned, so equal references yield the same *Type.
func (u *Universe) Instance(decl *Type, args ...*Type) *Type {
	decl = decl.decl()
	if len(args) == 0 {
		return decl
	}
	name := decl.name + "<" + argNames(args) + ">"
	if t, ok := u.instances[name]; ok {
		return t
	}
	t := &Type{name: name, kind: decl.kind, origin: decl, args: args}
	u.instances[name] = t
	return t
}

// Resolve parses a type reference such as "Set<OrderId>" or
// "Map<K, List<V>>" and returns the type it names.
func (u *Universe) Resolve(ref string) (*Type, error) {
	p := refParser{src: ref}
	t, err := p.parse(u)
	if err != nil {
		return nil, err
	}
	if p.skipSpace(); p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return t, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) parse(u *Universe) (*Type, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("<>, ", rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRef, p.src)
	}
	decl, ok := u.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return decl, nil
	}
	p.pos++

	var args []*Type
	for {
		arg, err := p.parse(u)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRef, p.src)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
			continue
		case '>':
			p.pos++
			return u.Instance(decl, args...), nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrMalformedRef, p.src)
		}
	}
}
