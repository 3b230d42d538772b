package routing

import (
	"slices"
)

// bucketKey identifies the dispatch table a route function belongs to.
type bucketKey struct {
	owner    string
	category Category
}

func keyOf(f *RouteFunction) bucketKey {
	return bucketKey{owner: f.Owner.Name(), category: f.Category}
}

type routeKey struct {
	bucketKey
	message string
}

// DetectDuplicates finds route functions of one owner and category that
// route the same message type. Types are grouped by identity, so aliases of
// one type conflict with each other.
//
// Functions outside any conflict are returned in their input order. Each
// conflicting group yields one DuplicateRoute diagnostic listing every
// declaration, sorted by source position and pointing at the last one.
func DetectDuplicates(functions []*RouteFunction) ([]*RouteFunction, []Diagnostic) {
	groups := make(map[routeKey][]*RouteFunction, len(functions))
	var order []routeKey
	for _, f := range functions {
		k := routeKey{bucketKey: keyOf(f), message: TypeName(f.Message)}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	var ok []*RouteFunction
	for _, f := range functions {
		k := routeKey{bucketKey: keyOf(f), message: TypeName(f.Message)}
		if len(groups[k]) == 1 {
			ok = append(ok, f)
		}
	}

	var diags []Diagnostic
	for _, k := range order {
		group := groups[k]
		if len(group) < 2 {
			continue
		}
		diags = append(diags, duplicateDiagnostic(group))
	}
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Location.Compare(b.Location)
	})
	return ok, diags
}

func duplicateDiagnostic(group []*RouteFunction) Diagnostic {
	sorted := slices.Clone(group)
	slices.SortStableFunc(sorted, func(a, b *RouteFunction) int {
		return a.Location.Compare(b.Location)
	})

	last := sorted[len(sorted)-1]
	d := Diagnostic{
		Kind:        DuplicateRoute,
		Function:    last.Signature(false),
		Location:    last.Location,
		Enclosing:   last.Owner.Type,
		Category:    last.Category,
		HasCategory: true,
		Message:     sorted[0].Message,
	}
	for _, f := range sorted {
		d.Locations = append(d.Locations, f.Location)
		d.Functions = append(d.Functions, f.Signature(false))
	}
	return d
}
