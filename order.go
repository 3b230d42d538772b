package routing

import (
	"cmp"
	"slices"
)

// Compare orders two message types by specificity:
//
//   - a concrete type sorts before an interface;
//   - between two types of the same kind, a subtype sorts before its
//     supertype;
//   - unrelated types of the same kind sort by qualified name.
//
// The name fallback carries no meaning beyond making the order reproducible.
func Compare(a, b Type) int {
	if SameType(a, b) {
		return 0
	}
	switch ai, bi := a.IsInterface(), b.IsInterface(); {
	case ai && !bi:
		return 1
	case !ai && bi:
		return -1
	}
	if a.IsAssignableFrom(b) {
		return 1
	}
	if b.IsAssignableFrom(a) {
		return -1
	}
	return cmp.Compare(a.QualifiedName(), b.QualifiedName())
}

// Order sorts the route functions of one owner and category into dispatch
// order: the first function whose message type accepts an incoming message
// is the one that routes it.
//
// Concrete message types come before interfaces. Within each group a subtype
// always precedes its supertypes, and types with no ordering constraint
// between them are taken in qualified-name order. The result does not
// depend on the input order, even where the name fallback alone would not be
// transitive.
func Order(functions []*RouteFunction) []*RouteFunction {
	var concrete, abstract []*RouteFunction
	for _, f := range functions {
		if f.Message.IsInterface() {
			abstract = append(abstract, f)
		} else {
			concrete = append(concrete, f)
		}
	}
	out := make([]*RouteFunction, 0, len(functions))
	out = append(out, topoSort(concrete)...)
	out = append(out, topoSort(abstract)...)
	return out
}

// topoSort orders functions so that every strict subtype precedes its
// supertypes, picking the smallest ready function by name at each step.
func topoSort(functions []*RouteFunction) []*RouteFunction {
	fs := slices.Clone(functions)
	slices.SortStableFunc(fs, byName)

	n := len(fs)
	succ := make([][]int, n)
	indeg := make([]int, n)
	for i := range fs {
		for j := range fs {
			if i != j && isStrictSubtype(fs[i].Message, fs[j].Message) {
				succ[i] = append(succ[i], j)
				indeg[j]++
			}
		}
	}

	done := make([]bool, n)
	out := make([]*RouteFunction, 0, n)
	for len(out) < n {
		next := -1
		for i := range fs {
			if !done[i] && indeg[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			// Cyclic assignability means a broken type model; fall back to
			// name order for what is left.
			for i := range fs {
				if !done[i] {
					next = i
					break
				}
			}
		}
		done[next] = true
		out = append(out, fs[next])
		for _, j := range succ[next] {
			indeg[j]--
		}
	}
	return out
}

func byName(a, b *RouteFunction) int {
	if c := cmp.Compare(TypeName(a.Message), TypeName(b.Message)); c != 0 {
		return c
	}
	return a.Location.Compare(b.Location)
}

// ambiguities reports pairs of unrelated interface message types in one
// bucket. A concrete message implementing both is routed by whichever sorts
// first, which is decided by name alone.
func ambiguities(ordered []*RouteFunction) []Diagnostic {
	var diags []Diagnostic
	for i, a := range ordered {
		if !a.Message.IsInterface() {
			continue
		}
		for _, b := range ordered[i+1:] {
			if !b.Message.IsInterface() || SameType(a.Message, b.Message) {
				continue
			}
			if a.Message.IsAssignableFrom(b.Message) || b.Message.IsAssignableFrom(a.Message) {
				continue
			}
			diags = append(diags, Diagnostic{
				Kind:        AmbiguousOrder,
				Severity:    SeverityWarning,
				Function:    b.Signature(false),
				Location:    b.Location,
				Enclosing:   b.Owner.Type,
				Category:    b.Category,
				HasCategory: true,
				Expected:    a.Message,
				Actual:      b.Message,
			})
		}
	}
	return diags
}
