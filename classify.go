package routing

// Classify finds the category of a validated candidate.
//
// Descriptors are tried in the order given, which the Resolver fixes to
// Command, Event, StateUpdate. A descriptor matches when the first parameter
// is assignable to its message capability. Once the first parameter matches,
// classification stops: a second parameter of any type other than the
// descriptor's context type yields WrongContextType rather than falling
// through to the next category.
//
// When no descriptor matches, Classify returns UnrecognizedSignature.
func Classify(c Candidate, descriptors []Descriptor) (Descriptor, *Diagnostic) {
	if len(c.Params) == 0 {
		d := candidateDiagnostic(UnrecognizedSignature, c)
		return Descriptor{}, &d
	}

	msg := c.Params[0]
	for _, desc := range descriptors {
		if !desc.Message.IsAssignableFrom(msg) {
			continue
		}
		if len(c.Params) > 1 && !SameType(c.Params[1], desc.Context) {
			d := candidateDiagnostic(WrongContextType, c)
			d.Category = desc.Category
			d.HasCategory = true
			d.Expected = desc.Context
			d.Actual = c.Params[1]
			return Descriptor{}, &d
		}
		return desc, nil
	}

	d := candidateDiagnostic(UnrecognizedSignature, c)
	d.Actual = msg
	return Descriptor{}, &d
}
