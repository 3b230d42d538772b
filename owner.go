package routing

// ownerResult is a cached resolution of one declaring class. Exactly one of
// owner and diag is set.
type ownerResult struct {
	owner *Owner
	diag  *Diagnostic
}

// OwnerResolver resolves declaring classes into Owners.
//
// Results are cached per declaring class, so every candidate of one class
// shares a single *Owner. A resolver belongs to one resolution pass: create
// a fresh one with NewOwnerResolver for each pass and do not share it
// between goroutines.
type OwnerResolver struct {
	entity     Type
	idAccessor string
	set        Type
	cache      map[Type]ownerResult
}

// NewOwnerResolver creates a resolver for the given config. The config
// should already be validated; an empty IDAccessor falls back to
// DefaultIDAccessor.
func NewOwnerResolver(cfg Config) *OwnerResolver {
	accessor := cfg.IDAccessor
	if accessor == "" {
		accessor = DefaultIDAccessor
	}
	return &OwnerResolver{
		entity:     cfg.Entity,
		idAccessor: accessor,
		set:        cfg.Set,
		cache:      make(map[Type]ownerResult),
	}
}

// Resolve returns the Owner declaring the candidate.
//
// The declaring class must implement the entity capability, and its
// identifier type is the result type of the identifier accessor, looked up
// on the class and its supertypes.
func (r *OwnerResolver) Resolve(c Candidate) (*Owner, *Diagnostic) {
	if c.Enclosing == nil {
		d := candidateDiagnostic(NotMemberOfClass, c)
		d.Membership = TopLevel
		return nil, &d
	}

	res, ok := r.cache[c.Enclosing]
	if !ok {
		res = r.resolve(c.Enclosing)
		r.cache[c.Enclosing] = res
	}
	if res.diag != nil {
		// The cached diagnostic names the first candidate seen; point this
		// one at the current candidate.
		d := *res.diag
		d.Function = c.Signature()
		d.Location = c.Location
		return nil, &d
	}
	return res.owner, nil
}

func (r *OwnerResolver) resolve(cls Type) ownerResult {
	notEntity := func() ownerResult {
		return ownerResult{diag: &Diagnostic{
			Kind:      OwnerNotEntity,
			Enclosing: cls,
			Expected:  r.entity,
		}}
	}
	if !r.entity.IsAssignableFrom(cls) {
		return notEntity()
	}
	id, ok := cls.Method(r.idAccessor)
	if !ok || id == nil {
		return notEntity()
	}
	return ownerResult{owner: &Owner{Type: cls, ID: id}}
}

// checkOwnerKind verifies the owner derives from one of the descriptor's
// allowed entity base types.
func checkOwnerKind(c Candidate, owner *Owner, desc Descriptor) *Diagnostic {
	if len(desc.Owners) == 0 {
		return nil
	}
	for _, base := range desc.Owners {
		if base.IsAssignableFrom(owner.Type) {
			return nil
		}
	}
	d := candidateDiagnostic(WrongOwnerKind, c)
	d.Category = desc.Category
	d.HasCategory = true
	d.Allowed = desc.Owners
	d.Actual = owner.Type
	return &d
}

// shape checks the candidate's result against the owner identifier type.
// A unicast function returns a type assignable to the identifier. A multicast
// function returns the set type whose single argument is assignable to it.
func (r *OwnerResolver) shape(c Candidate, owner *Owner, desc Descriptor) (Shape, *Diagnostic) {
	ret := c.Return
	if ret != nil {
		if owner.ID.IsAssignableFrom(ret) {
			return Unicast, nil
		}
		if desc.Multicast && r.set != nil && r.set.IsAssignableFrom(ret) {
			args := typeArgumentsOf(ret, r.set)
			if len(args) == 1 && args[0] != nil && owner.ID.IsAssignableFrom(args[0]) {
				return Multicast, nil
			}
		}
	}
	d := candidateDiagnostic(ReturnTypeMismatch, c)
	d.Category = desc.Category
	d.HasCategory = true
	d.Expected = owner.ID
	d.Actual = ret
	return 0, &d
}

// Route resolves the owner of a classified candidate and checks its result
// type, producing the RouteFunction.
func (r *OwnerResolver) Route(c Candidate, desc Descriptor) (*RouteFunction, []Diagnostic) {
	owner, diag := r.Resolve(c)
	if diag != nil {
		diag.Category = desc.Category
		diag.HasCategory = true
		return nil, []Diagnostic{*diag}
	}

	var diags []Diagnostic
	if d := checkOwnerKind(c, owner, desc); d != nil {
		diags = append(diags, *d)
	}
	shape, d := r.shape(c, owner, desc)
	if d != nil {
		diags = append(diags, *d)
	}
	if len(diags) > 0 {
		return nil, diags
	}

	fn := &RouteFunction{
		Name:     c.Name,
		Category: desc.Category,
		Owner:    owner,
		Message:  c.Params[0],
		Return:   c.Return,
		Shape:    shape,
		Location: c.Location,
	}
	if len(c.Params) > 1 {
		fn.Context = c.Params[1]
	}
	return fn, nil
}
