package domain

// Entity is a descriptor together with the type-parameter bindings that were
// in effect where it was reached. Entities derived from a parent keep the
// parent's bindings so generic members resolve against the right arguments.
type Entity struct {
	typ      *Type
	bindings map[string]*Type
}

// NewEntity creates a root entity. An instantiated generic binds its own
// type parameters.
func NewEntity(t *Type) Entity {
	return Entity{typ: t, bindings: bind(nil, t)}
}

// Type returns the descriptor with the entity's bindings applied.
func (e Entity) Type() *Type {
	return e.typ
}

// Identity returns the registry key of the entity's type.
func (e Entity) Identity() string {
	return e.typ.Identity()
}

// Binding returns the type bound to a type parameter name.
func (e Entity) Binding(name string) (*Type, bool) {
	t, ok := e.bindings[name]
	return t, ok
}

// CreateDependent derives the entity for a related type, such as a supertype
// or an accessor's return type, resolving it against the current bindings.
func (e Entity) CreateDependent(t *Type) Entity {
	resolved := substitute(t, e.bindings)
	return Entity{typ: resolved, bindings: bind(e.bindings, resolved)}
}

func bind(parent map[string]*Type, t *Type) map[string]*Type {
	if t == nil || len(t.TypeParams) == 0 || len(t.TypeParams) != len(t.TypeArgs) {
		return parent
	}

	bindings := make(map[string]*Type, len(parent)+len(t.TypeParams))
	for name, bound := range parent {
		bindings[name] = bound
	}
	for i, name := range t.TypeParams {
		bindings[name] = t.TypeArgs[i]
	}
	return bindings
}

// substitute replaces bound type parameters inside t. Unchanged subtrees are
// shared, changed nodes are shallow copies.
func substitute(t *Type, bindings map[string]*Type) *Type {
	if t == nil || len(bindings) == 0 {
		return t
	}

	switch t.Kind {
	case KindTypeParam:
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
		return t
	case KindSlice, KindPointer:
		elem := substitute(t.Elem, bindings)
		if elem == t.Elem {
			return t
		}
		c := *t
		c.Elem = elem
		return &c
	case KindMap:
		key := substitute(t.Key, bindings)
		elem := substitute(t.Elem, bindings)
		if key == t.Key && elem == t.Elem {
			return t
		}
		c := *t
		c.Key = key
		c.Elem = elem
		return &c
	}

	if len(t.TypeArgs) == 0 {
		return t
	}

	changed := false
	args := make([]*Type, len(t.TypeArgs))
	for i, arg := range t.TypeArgs {
		args[i] = substitute(arg, bindings)
		if args[i] != arg {
			changed = true
		}
	}
	if !changed {
		return t
	}
	c := *t
	c.TypeArgs = args
	return &c
}
