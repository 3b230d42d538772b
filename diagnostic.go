package routing

import (
	"fmt"
	"strings"
)

// Kind identifies the rule a Diagnostic reports.
type Kind int

const (
	// WrongArity: the candidate declares 0 or 3+ parameters.
	WrongArity Kind = iota + 1
	// NotMemberOfClass: the candidate is not a static member of a class.
	NotMemberOfClass
	// WrongContextType: the first parameter matched a category but the
	// second parameter has the wrong type.
	WrongContextType
	// UnrecognizedSignature: the first parameter matches no category.
	UnrecognizedSignature
	// OwnerNotEntity: the declaring class lacks the entity capability.
	OwnerNotEntity
	// WrongOwnerKind: the owner is an entity, but not one allowed to
	// declare routes of the matched category.
	WrongOwnerKind
	// ReturnTypeMismatch: the result is neither the identifier type nor a
	// set of it.
	ReturnTypeMismatch
	// DuplicateRoute: several functions of one owner and category route
	// the same message type.
	DuplicateRoute
	// AmbiguousOrder: two unrelated interface message types share a
	// bucket, so their relative order is by name only.
	AmbiguousOrder
)

func (k Kind) String() string {
	switch k {
	case WrongArity:
		return "WrongArity"
	case NotMemberOfClass:
		return "NotMemberOfClass"
	case WrongContextType:
		return "WrongContextType"
	case UnrecognizedSignature:
		return "UnrecognizedSignature"
	case OwnerNotEntity:
		return "OwnerNotEntity"
	case WrongOwnerKind:
		return "WrongOwnerKind"
	case ReturnTypeMismatch:
		return "ReturnTypeMismatch"
	case DuplicateRoute:
		return "DuplicateRoute"
	case AmbiguousOrder:
		return "AmbiguousOrder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Severity tells whether a diagnostic fails the build.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Membership explains a NotMemberOfClass diagnostic.
type Membership int

const (
	// TopLevel: the function has no enclosing class.
	TopLevel Membership = iota + 1
	// NotStatic: the function is an instance member.
	NotStatic
)

// Diagnostic is one reported problem. It carries the parameters of its
// message rather than a rendered string so hosts can format or localize it;
// Error renders a default English message.
type Diagnostic struct {
	Kind     Kind
	Severity Severity

	// Function is the offending declaration rendered as name(Params...).
	Function string
	Location Location

	// Enclosing is the declaring class, when known.
	Enclosing Type

	// Category is the matched category, when HasCategory is set.
	Category    Category
	HasCategory bool

	// Count is the parameter count for WrongArity.
	Count int

	// Membership is set for NotMemberOfClass.
	Membership Membership

	// Expected and Actual are the types compared by WrongContextType and
	// ReturnTypeMismatch. For AmbiguousOrder they are the two message types.
	Expected Type
	Actual   Type

	// Allowed lists the permitted owner base types for WrongOwnerKind.
	Allowed []Type

	// Message is the routed message type for DuplicateRoute.
	Message Type

	// Locations lists every conflicting declaration of a DuplicateRoute,
	// sorted by source position.
	Locations []Location
	// Functions lists the conflicting declarations, parallel to Locations.
	Functions []string
}

// Template returns a fmt format string for the diagnostic. Params returns
// the matching arguments.
func (d Diagnostic) Template() string {
	switch d.Kind {
	case WrongArity:
		return "the route function `%s` must accept one or two parameters; encountered: %d"
	case NotMemberOfClass:
		if d.Membership == NotStatic {
			return "the route function `%s` must be a static member of its class"
		}
		return "the route function `%s` must be a static member of an entity class"
	case WrongContextType:
		return "the second parameter of the route function `%s` must be `%s`; encountered: `%s`"
	case UnrecognizedSignature:
		return "the route function `%s` does not route a known message type; encountered: `%s`"
	case OwnerNotEntity:
		return "the declaring class `%s` of the route function `%s` must implement `%s`"
	case WrongOwnerKind:
		return "a %s route function can only be declared in a class derived from %s; encountered: `%s` (function `%s`)"
	case ReturnTypeMismatch:
		return "the route function `%s` must return `%s` or a set of it; encountered: `%s`"
	case DuplicateRoute:
		return "the class `%s` declares more than one %s route function for `%s`:\n%s"
	case AmbiguousOrder:
		return "the class `%s` routes unrelated %s message types `%s` and `%s`; a message implementing both goes to the first by name"
	default:
		return "%s"
	}
}

// Params returns the arguments for Template.
func (d Diagnostic) Params() []any {
	switch d.Kind {
	case WrongArity:
		return []any{d.Function, d.Count}
	case NotMemberOfClass:
		return []any{d.Function}
	case WrongContextType:
		return []any{d.Function, TypeName(d.Expected), TypeName(d.Actual)}
	case UnrecognizedSignature:
		return []any{d.Function, TypeName(d.Actual)}
	case OwnerNotEntity:
		return []any{TypeName(d.Enclosing), d.Function, TypeName(d.Expected)}
	case WrongOwnerKind:
		return []any{d.Category, joinTypes(d.Allowed), TypeName(d.Actual), d.Function}
	case ReturnTypeMismatch:
		return []any{d.Function, TypeName(d.Expected), TypeName(d.Actual)}
	case DuplicateRoute:
		lines := make([]string, len(d.Locations))
		for i, loc := range d.Locations {
			lines[i] = fmt.Sprintf(" * `%s` at %s", d.Functions[i], loc)
		}
		return []any{TypeName(d.Enclosing), d.Category, TypeName(d.Message), strings.Join(lines, "\n")}
	case AmbiguousOrder:
		return []any{TypeName(d.Enclosing), d.Category, TypeName(d.Expected), TypeName(d.Actual)}
	default:
		return []any{d.Kind}
	}
}

// Error implements error with the default rendering.
func (d Diagnostic) Error() string {
	return fmt.Sprintf(d.Template(), d.Params()...)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Error())
}

// IsError reports whether the diagnostic fails the build.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// Is makes errors.Is match diagnostics by kind:
//
//	errors.Is(result.Err(), routing.Diagnostic{Kind: routing.DuplicateRoute})
func (d Diagnostic) Is(target error) bool {
	t, ok := target.(Diagnostic)
	return ok && t.Kind == d.Kind
}

func joinTypes(ts []Type) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = "`" + TypeName(t) + "`"
	}
	return strings.Join(names, " or ")
}

func candidateDiagnostic(kind Kind, c Candidate) Diagnostic {
	return Diagnostic{
		Kind:      kind,
		Function:  c.Signature(),
		Location:  c.Location,
		Enclosing: c.Enclosing,
	}
}
