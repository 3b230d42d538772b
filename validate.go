package routing

// Validate checks the structural rules every route function must satisfy,
// whatever its category:
//
//  1. It is a static member of exactly one enclosing class.
//  2. It accepts one or two parameters.
//
// Every violated rule is reported. A nil result means the candidate may
// proceed to classification. The type of a second parameter is checked
// later, by Classify.
func Validate(c Candidate) []Diagnostic {
	var diags []Diagnostic

	switch {
	case c.Enclosing == nil:
		d := candidateDiagnostic(NotMemberOfClass, c)
		d.Membership = TopLevel
		diags = append(diags, d)
	case !c.Static:
		d := candidateDiagnostic(NotMemberOfClass, c)
		d.Membership = NotStatic
		diags = append(diags, d)
	}

	if n := len(c.Params); n < 1 || n > 2 {
		d := candidateDiagnostic(WrongArity, c)
		d.Count = n
		diags = append(diags, d)
	}

	return diags
}
