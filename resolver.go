package routing

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"
)

// Resolver turns route function candidates into dispatch tables.
//
// Usage:
//  1. Describe the host conventions in a Config
//  2. Create a resolver with New
//  3. Call Resolve with the candidates discovered for one build
//
// A Resolver holds no per-pass state and is safe for concurrent use: every
// call to Resolve works on its own caches and diagnostics.
type Resolver struct {
	cfg           Config
	hooks         hooks
	logger        *slog.Logger
	warnAmbiguous bool
}

// New creates a Resolver for the given config.
//
// Example:
//
//	r, err := routing.New(cfg,
//	    routing.WithOnDiagnostic(func(d routing.Diagnostic) {
//	        fmt.Fprintln(os.Stderr, d)
//	    }),
//	)
func New(cfg Config, opts ...Option) (*Resolver, error) {
	normalized, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	r := &Resolver{
		cfg:           normalized,
		logger:        slog.New(slog.DiscardHandler),
		warnAmbiguous: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the normalized config the resolver checks against.
func (r *Resolver) Config() Config { return r.cfg }

// Classify finds the category of a validated candidate using the
// resolver's descriptors.
func (r *Resolver) Classify(c Candidate) (Descriptor, *Diagnostic) {
	return Classify(c, r.cfg.Descriptors)
}

// Result is the outcome of one resolution pass.
type Result struct {
	// Tables holds one table per owner and category without errors,
	// sorted by owner name, then category.
	Tables []*Table

	// Diagnostics holds every reported problem, errors and warnings.
	Diagnostics []Diagnostic
}

// Table returns the table of the named owner and category, or nil.
func (res *Result) Table(owner string, c Category) *Table {
	for _, t := range res.Tables {
		if t.Owner.Name() == owner && t.Category == c {
			return t
		}
	}
	return nil
}

// Errors returns the error-severity diagnostics.
func (res *Result) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range res.Diagnostics {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the warning-severity diagnostics.
func (res *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range res.Diagnostics {
		if !d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

// Failed reports whether the pass produced any error diagnostic.
func (res *Result) Failed() bool {
	return slices.ContainsFunc(res.Diagnostics, Diagnostic.IsError)
}

// Err joins the error diagnostics, or returns nil when there are none.
func (res *Result) Err() error {
	var errs []error
	for _, d := range res.Errors() {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}

// Resolve runs a full pass over the candidates.
//
// The pass flow:
//  1. Sort candidates into a canonical order
//  2. Validate the structure of each candidate
//  3. Classify it into a category
//  4. Resolve its owner and check the result type
//  5. Detect duplicate routes per owner and category
//  6. Order and assemble each owner/category bucket
//
// Every candidate is checked, so one pass reports every problem. A bucket
// touched by any error produces no table.
func (r *Resolver) Resolve(candidates []Candidate) *Result {
	p := &pass{
		Resolver:      r,
		owners:        NewOwnerResolver(r.cfg),
		poisoned:      make(map[bucketKey]bool),
		poisonedClass: make(map[string]bool),
		res:           &Result{},
	}

	var routes []*RouteFunction
	for _, c := range canonical(candidates) {
		if fn := p.candidate(c); fn != nil {
			for _, h := range r.hooks.onRoute {
				h(fn)
			}
			routes = append(routes, fn)
		}
	}

	ok, dups := DetectDuplicates(routes)
	for _, d := range dups {
		p.report(d)
		p.poisoned[bucketKey{owner: TypeName(d.Enclosing), category: d.Category}] = true
	}

	p.assemble(ok)
	r.logger.Debug("routing pass complete",
		slog.Int("candidates", len(candidates)),
		slog.Int("tables", len(p.res.Tables)),
		slog.Int("diagnostics", len(p.res.Diagnostics)))
	return p.res
}

// pass holds the state of one Resolve call.
type pass struct {
	*Resolver
	owners        *OwnerResolver
	poisoned      map[bucketKey]bool
	poisonedClass map[string]bool
	res           *Result
}

func (p *pass) report(diags ...Diagnostic) {
	for _, d := range diags {
		p.res.Diagnostics = append(p.res.Diagnostics, d)
		for _, h := range p.hooks.onDiagnostic {
			h(d)
		}
	}
}

// poison marks the buckets a diagnostic invalidates. Without a category,
// every bucket of the enclosing class is affected.
func (p *pass) poison(d Diagnostic) {
	if d.Enclosing == nil {
		return
	}
	name := TypeName(d.Enclosing)
	if d.HasCategory {
		p.poisoned[bucketKey{owner: name, category: d.Category}] = true
		return
	}
	p.poisonedClass[name] = true
}

func (p *pass) fail(diags ...Diagnostic) {
	p.report(diags...)
	for _, d := range diags {
		p.poison(d)
	}
}

func (p *pass) candidate(c Candidate) *RouteFunction {
	if diags := Validate(c); len(diags) > 0 {
		p.fail(diags...)
		return nil
	}
	desc, d := p.Classify(c)
	if d != nil {
		p.fail(*d)
		return nil
	}
	fn, diags := p.owners.Route(c, desc)
	if len(diags) > 0 {
		p.fail(diags...)
		return nil
	}
	return fn
}

func (p *pass) assemble(routes []*RouteFunction) {
	buckets := make(map[bucketKey][]*RouteFunction)
	var keys []bucketKey
	for _, f := range routes {
		k := keyOf(f)
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], f)
	}
	slices.SortFunc(keys, func(a, b bucketKey) int {
		if c := cmp.Compare(a.owner, b.owner); c != 0 {
			return c
		}
		return cmp.Compare(a.category, b.category)
	})

	for _, k := range keys {
		if p.poisoned[k] || p.poisonedClass[k.owner] {
			p.logger.Debug("skipping table with errors",
				slog.String("owner", k.owner),
				slog.String("category", k.category.String()))
			continue
		}
		ordered := Order(buckets[k])
		if p.warnAmbiguous {
			p.report(ambiguities(ordered)...)
		}
		t := Assemble(ordered)
		p.res.Tables = append(p.res.Tables, t)
		for _, h := range p.hooks.onTable {
			h(t)
		}
	}
}

// canonical returns the candidates sorted by location, then by name,
// qualified parameter types and return type, so a pass does not depend on
// discovery order.
func canonical(candidates []Candidate) []Candidate {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := a.Location.Compare(b.Location); c != 0 {
			return c
		}
		if c := cmp.Compare(TypeName(a.Enclosing), TypeName(b.Enclosing)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if c := slices.CompareFunc(a.Params, b.Params, compareTypeNames); c != 0 {
			return c
		}
		return compareTypeNames(a.Return, b.Return)
	})
	return out
}

func compareTypeNames(a, b Type) int {
	return cmp.Compare(TypeName(a), TypeName(b))
}
