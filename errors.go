package missmatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnoswap-labs/missmatch/internal/compiler"
	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

var (
	// ErrSyntax is matched by every parse error.
	ErrSyntax = pattern.ErrSyntax
	// ErrBindingConflict is matched when one name is captured twice in a
	// successful match.
	ErrBindingConflict = compiler.ErrBindingConflict
	ErrUnknownNode     = compiler.ErrUnknownNode
	ErrMisplacedRest   = compiler.ErrMisplacedRest
	// ErrNonExhaustive is matched when no case accepted the candidate.
	ErrNonExhaustive = errors.New("non-exhaustive patterns")
)

type (
	ParseError           = pattern.ParseError
	BindingConflictError = compiler.BindingConflictError
)

// NonExhaustiveError lists the patterns tried, in order, when none of them
// matched.
type NonExhaustiveError struct {
	Patterns []string
}

func (e *NonExhaustiveError) Error() string {
	if len(e.Patterns) == 0 {
		return ErrNonExhaustive.Error() + ": no cases given"
	}
	return fmt.Sprintf("%s: none of %s matched", ErrNonExhaustive, strings.Join(e.Patterns, ", "))
}

func (e *NonExhaustiveError) Is(target error) bool {
	return target == ErrNonExhaustive
}
