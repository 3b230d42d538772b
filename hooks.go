package routing

import "log/slog"

// OnRouteFunc is called for every candidate that passes validation,
// classification, and owner resolution, before duplicate detection.
type OnRouteFunc func(f *RouteFunction)

// OnDiagnosticFunc is called for every diagnostic as it is reported.
type OnDiagnosticFunc func(d Diagnostic)

// OnTableFunc is called for every assembled dispatch table.
type OnTableFunc func(t *Table)

// hooks holds all configured hook functions.
type hooks struct {
	onRoute      []OnRouteFunc
	onDiagnostic []OnDiagnosticFunc
	onTable      []OnTableFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOnRoute adds a hook called for each resolved route function.
// Multiple hooks are called in order.
//
// Example:
//
//	routing.WithOnRoute(func(f *routing.RouteFunction) {
//	    log.Printf("%s route %s in %s", f.Category, f, f.Owner)
//	})
func WithOnRoute(fn OnRouteFunc) Option {
	return func(r *Resolver) {
		r.hooks.onRoute = append(r.hooks.onRoute, fn)
	}
}

// WithOnDiagnostic adds a hook called for each diagnostic, errors and
// warnings alike. Multiple hooks are called in order.
//
// Example:
//
//	routing.WithOnDiagnostic(func(d routing.Diagnostic) {
//	    fmt.Fprintln(os.Stderr, d)
//	})
func WithOnDiagnostic(fn OnDiagnosticFunc) Option {
	return func(r *Resolver) {
		r.hooks.onDiagnostic = append(r.hooks.onDiagnostic, fn)
	}
}

// WithOnTable adds a hook called for each assembled table, in the order
// tables appear in the Result. Multiple hooks are called in order.
func WithOnTable(fn OnTableFunc) Option {
	return func(r *Resolver) {
		r.hooks.onTable = append(r.hooks.onTable, fn)
	}
}

// WithLogger sets the logger used for debug tracing of each pass.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAmbiguityWarnings controls the AmbiguousOrder warnings reported for
// unrelated interface message types sharing a table. Enabled by default.
func WithAmbiguityWarnings(enabled bool) Option {
	return func(r *Resolver) {
		r.warnAmbiguous = enabled
	}
}
