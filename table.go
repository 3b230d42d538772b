package routing

// Entry is one row of a dispatch table.
type Entry struct {
	Message Type
	Route   *RouteFunction
}

// Table is the ordered dispatch table of one owner and category. No two
// entries share a message type, and entries are in specificity order.
type Table struct {
	Owner    *Owner
	Category Category
	Entries  []Entry
}

// Assemble wraps ordered route functions into a Table keyed by the owner
// and category of the first function. It performs no validation and keeps
// the given order. It returns nil for an empty list.
func Assemble(ordered []*RouteFunction) *Table {
	if len(ordered) == 0 {
		return nil
	}
	t := &Table{
		Owner:    ordered[0].Owner,
		Category: ordered[0].Category,
		Entries:  make([]Entry, len(ordered)),
	}
	for i, f := range ordered {
		t.Entries[i] = Entry{Message: f.Message, Route: f}
	}
	return t
}

// Routes returns the route functions of the table in dispatch order.
func (t *Table) Routes() []*RouteFunction {
	out := make([]*RouteFunction, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Route
	}
	return out
}

// Match returns the first entry whose message type accepts a message of
// type msg. This is the lookup a runtime router performs.
func (t *Table) Match(msg Type) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Message.IsAssignableFrom(msg) {
			return e, true
		}
	}
	return Entry{}, false
}
