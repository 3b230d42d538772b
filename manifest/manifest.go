// Package manifest loads route function candidates from a JSON manifest.
//
// A manifest is what a source-scanning front end hands to the resolver: the
// types it saw, the host's category descriptors, and the candidate
// declarations. For example:
//
//	{
//	  "entity": "Entity",
//	  "idAccessor": "getId",
//	  "set": "Set",
//	  "types": [
//	    {"name": "Entity", "kind": "interface"},
//	    {"name": "Set", "kind": "interface"},
//	    {"name": "EventMessage", "kind": "interface"},
//	    {"name": "EventContext", "kind": "class"},
//	    {"name": "OrderId", "kind": "class"},
//	    {"name": "OrderEvent", "kind": "interface", "extends": ["EventMessage"]},
//	    {"name": "OrderCreated", "kind": "class", "extends": ["OrderEvent"]},
//	    {"name": "Order", "kind": "class", "extends": ["Entity"], "methods": {"getId": "OrderId"}}
//	  ],
//	  "aliases": {"Created": "OrderCreated"},
//	  "categories": [
//	    {"category": "event", "message": "EventMessage", "context": "EventContext", "multicast": true}
//	  ],
//	  "candidates": [
//	    {"name": "route", "file": "Order.java", "line": 12, "params": ["OrderCreated"],
//	     "returns": "OrderId", "static": true, "enclosing": "Order"}
//	  ]
//	}
//
// Type references may be generic ("Set<OrderId>") and may use aliases.
package manifest

import (
	"fmt"
	"os"

	"github.com/bjaus/routing"
	"github.com/bjaus/routing/typesys"
)

var (
	typeEntry = All(
		Required("name", "kind"),
		OneOf("kind", "class", "interface"),
		Strings("extends"),
	)
	categoryEntry = All(
		Required("category", "message", "context"),
		OneOf("category", "command", "event", "state-update"),
		Bools("multicast"),
		Strings("owners"),
	)
	candidateEntry = All(
		Required("name"),
		Strings("params"),
		Bools("static"),
		Ints("line", "column"),
	)
)

var categoryNames = map[string]routing.Category{
	"command":      routing.Command,
	"event":        routing.Event,
	"state-update": routing.StateUpdate,
}

// Manifest is a loaded manifest.
type Manifest struct {
	Universe   *typesys.Universe
	Config     routing.Config
	Candidates []routing.Candidate
}

// LoadFile reads and loads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load parses a manifest with the JSON inspector.
func Load(raw []byte) (*Manifest, error) {
	return LoadWith(JSONInspector(), raw)
}

// LoadWith parses a manifest using the given inspector.
func LoadWith(insp Inspector, raw []byte) (*Manifest, error) {
	doc, err := insp.Inspect(raw)
	if err != nil {
		return nil, err
	}
	l := &loader{doc: doc, u: typesys.New()}
	steps := []func() error{
		l.declareTypes,
		l.declareAliases,
		l.linkTypes,
		l.config,
		l.candidates,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return &Manifest{Universe: l.u, Config: l.cfg, Candidates: l.cands}, nil
}

type loader struct {
	doc   View
	u     *typesys.Universe
	cfg   routing.Config
	cands []routing.Candidate
}

// each walks the array at path, stopping at the first error.
func (l *loader) each(path string, fn func(i int, v View) error) error {
	var err error
	l.doc.Each(path, func(i int, v View) bool {
		if e := fn(i, v); e != nil {
			err = fmt.Errorf("%s[%d]: %w", path, i, e)
			return false
		}
		return true
	})
	return err
}

func (l *loader) declareTypes() error {
	return l.each("types", func(_ int, v View) error {
		if err := typeEntry.Check(v); err != nil {
			return err
		}
		name, _ := v.GetString("name")
		kind := typesys.Class
		if k, _ := v.GetString("kind"); k == "interface" {
			kind = typesys.Interface
		}
		_, err := l.u.Declare(name, kind)
		return err
	})
}

func (l *loader) declareAliases() error {
	var err error
	l.doc.EachField("aliases", func(alias, target string) bool {
		t, e := l.u.Resolve(target)
		if e == nil {
			e = l.u.Alias(alias, t)
		}
		if e != nil {
			err = fmt.Errorf("aliases.%s: %w", alias, e)
			return false
		}
		return true
	})
	return err
}

func (l *loader) linkTypes() error {
	return l.each("types", func(_ int, v View) error {
		name, _ := v.GetString("name")
		t, _ := l.u.Lookup(name)
		for _, ref := range v.GetStrings("extends") {
			super, err := l.u.Resolve(ref)
			if err != nil {
				return err
			}
			t.Extend(super)
		}
		var err error
		v.EachField("methods", func(method, ref string) bool {
			var result *typesys.Type
			result, err = l.u.Resolve(ref)
			if err != nil {
				err = fmt.Errorf("method %s: %w", method, err)
				return false
			}
			t.WithMethod(method, result)
			return true
		})
		return err
	})
}

func (l *loader) resolve(path string, v View) (routing.Type, error) {
	ref, ok := v.GetString(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, path)
	}
	t, err := l.u.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// optional resolves the reference at path, returning nil when absent.
func (l *loader) optional(path string, v View) (routing.Type, error) {
	if !v.HasField(path) {
		return nil, nil
	}
	return l.resolve(path, v)
}

func (l *loader) config() error {
	entity, err := l.resolve("entity", l.doc)
	if err != nil {
		return err
	}
	l.cfg.Entity = entity
	if l.cfg.Set, err = l.optional("set", l.doc); err != nil {
		return err
	}
	l.cfg.IDAccessor, _ = l.doc.GetString("idAccessor")

	return l.each("categories", func(_ int, v View) error {
		if err := categoryEntry.Check(v); err != nil {
			return err
		}
		name, _ := v.GetString("category")
		d := routing.Descriptor{Category: categoryNames[name]}
		var err error
		if d.Message, err = l.resolve("message", v); err != nil {
			return err
		}
		if d.Context, err = l.resolve("context", v); err != nil {
			return err
		}
		d.Multicast, _ = v.GetBool("multicast")
		for _, ref := range v.GetStrings("owners") {
			t, err := l.u.Resolve(ref)
			if err != nil {
				return fmt.Errorf("owners: %w", err)
			}
			d.Owners = append(d.Owners, t)
		}
		l.cfg.Descriptors = append(l.cfg.Descriptors, d)
		return nil
	})
}

func (l *loader) candidates() error {
	return l.each("candidates", func(_ int, v View) error {
		if err := candidateEntry.Check(v); err != nil {
			return err
		}
		c := routing.Candidate{}
		c.Name, _ = v.GetString("name")
		c.Location.File, _ = v.GetString("file")
		c.Location.Line, _ = v.GetInt("line")
		c.Location.Column, _ = v.GetInt("column")
		c.Static, _ = v.GetBool("static")

		for _, ref := range v.GetStrings("params") {
			t, err := l.u.Resolve(ref)
			if err != nil {
				return fmt.Errorf("params: %w", err)
			}
			c.Params = append(c.Params, t)
		}
		var err error
		if c.Return, err = l.optional("returns", v); err != nil {
			return err
		}
		if c.Enclosing, err = l.optional("enclosing", v); err != nil {
			return err
		}
		l.cands = append(l.cands, c)
		return nil
	})
}
