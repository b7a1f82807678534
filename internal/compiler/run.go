package compiler

import (
	"errors"
	"fmt"
)

// ErrBindingConflict is the sentinel wrapped by BindingConflictError.
var ErrBindingConflict = errors.New("binding conflict")

// BindingConflictError reports a name captured twice in one successful
// match.
type BindingConflictError struct {
	Name string
}

func (e *BindingConflictError) Error() string {
	return fmt.Sprintf("binding %q captured more than once", e.Name)
}

func (e *BindingConflictError) Is(target error) bool {
	return target == ErrBindingConflict
}

// Result is the outcome of Run.
type Result struct {
	Matched  bool
	Bindings map[string]any
}

// Run evaluates m against candidate starting from an empty environment.
// Bindings is empty when the match fails.
func Run(m Matcher, candidate any) (Result, error) {
	out, env := m.Match(candidate, nil)
	if !out.Matched {
		return Result{Bindings: map[string]any{}}, nil
	}
	if name, ok := env.Conflict(); ok {
		return Result{}, &BindingConflictError{Name: name}
	}
	return Result{Matched: true, Bindings: env.Map()}, nil
}
