package compiler

// Env is an immutable binding environment. Each Extend returns a new
// environment pointing at its parent, so a branch that fails can drop its
// bindings by discarding the returned value. The nil *Env is the empty
// environment.
type Env struct {
	parent   *Env
	name     string
	value    any
	conflict string // first name captured twice, inherited by children
}

// Extend binds name to v. When name is already bound the new environment
// is marked as conflicting; Run turns the mark into a BindingConflictError.
func (e *Env) Extend(name string, v any) *Env {
	next := &Env{parent: e, name: name, value: v}
	if e != nil {
		next.conflict = e.conflict
	}
	if next.conflict == "" {
		if _, ok := e.Lookup(name); ok {
			next.conflict = name
		}
	}
	return next
}

// Overwrite binds name to v, shadowing any earlier binding without
// marking a conflict.
func (e *Env) Overwrite(name string, v any) *Env {
	next := &Env{parent: e, name: name, value: v}
	if e != nil {
		next.conflict = e.conflict
	}
	return next
}

// Lookup returns the most recent value bound to name.
func (e *Env) Lookup(name string) (any, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// Conflict returns the first name that was captured twice.
func (e *Env) Conflict() (string, bool) {
	if e == nil || e.conflict == "" {
		return "", false
	}
	return e.conflict, true
}

// Len returns the number of distinct names bound.
func (e *Env) Len() int {
	return len(e.Map())
}

// Map flattens the environment. The latest binding of a name wins.
func (e *Env) Map() map[string]any {
	out := make(map[string]any)
	for cur := e; cur != nil; cur = cur.parent {
		if _, seen := out[cur.name]; !seen {
			out[cur.name] = cur.value
		}
	}
	return out
}
