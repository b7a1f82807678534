// Package missmatch provides structural pattern matching over Go values.
//
// A pattern is a short string describing the shape of a value: sequences,
// keyed records, numbers, strings, booleans, functions, dates and regular
// expressions, with literal alternatives and named captures. Patterns are
// parsed once, compiled into matchers and cached by the Engine.
//
// Key components:
//
// Engine: compiles and caches patterns, and dispatches a candidate over an
// ordered list of cases.
//
// Pattern: a compiled pattern. Run reports whether a candidate matches and
// what it captured.
//
// Case: a pattern paired with a Handler. The first matching case wins;
// when none matches, Match returns a *NonExhaustiveError.
//
// Usage:
//
//	result, err := missmatch.Match([]any{4, 2},
//	    missmatch.When("a(n@a,n@b)", func(b missmatch.Bindings) (any, error) {
//	        return b["a"], nil
//	    }),
//	    missmatch.When("_", missmatch.Return("other")),
//	)
//	if err != nil {
//	    // handle error
//	}
//
// Candidates are ordinary Go values. Numbers of every numeric kind compare
// as numbers, slices and arrays are sequences, and maps with string keys,
// structs and *value.Object are records. See the value package for the
// full mapping.
package missmatch
