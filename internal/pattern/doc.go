/*
Package pattern provides the parser for the structural pattern language used to
describe the shape of runtime values.

# Overview

A pattern is a single term. The parser reads it with a hand-written recursive
descent and produces an AST whose nodes are compiled into matchers by the
compiler package. Parsing is a pure function of the pattern text.

# Syntax

Patterns are built from one-character tags:

  - a: an ordered sequence. a(p1, p2) matches element by element, a() matches
    only empty sequences, a(p|) ignores the elements after p and a(p|@r)
    binds them to r as a new slice.
  - o: a keyed record. o(.x, :y) requires an own property x and a property y
    reachable through the prototype chain. A property may carry a nested
    pattern: o(.coord:o(.x, .y)).
  - n, s, S, b, f, d, r: number, string, non-empty string, boolean, function,
    date and regular expression. A parenthesized literal list turns the tag
    into an alternation: n(1, 2, 3), s("a", /^b/), d("2024-01-02").
  - _: any value. _(1, "one", true) accepts any listed literal.

Any term may be followed by @name to bind the matched value. Names start
with a letter, '$' or '_' and continue with letters, digits, '$' or '_'.

	a(n@x, n@y)          sequence of exactly two numbers, bound to x and y
	o(.inner:o(.x:s@x))  nested record whose inner.x is a string, bound to x
	n(0,1)@n             the number 0 or 1, bound to n

# Whitespace

Whitespace is allowed only around list separators inside parentheses, after
the rest marker and at the end of the pattern. It is never allowed inside a
binding, a literal or before the first term.

# Errors

Every failure is a *ParseError carrying the byte offset, a description of
what was expected and the token found there:

	unexpected token ')' at offset 6 where pattern was expected
*/
package pattern
