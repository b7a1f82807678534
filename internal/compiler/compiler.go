// Package compiler builds matchers from pattern ASTs and evaluates them.
package compiler

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

var (
	// ErrUnknownNode is returned for a node the parser cannot produce.
	ErrUnknownNode = errors.New("unknown pattern node")
	// ErrMisplacedRest is returned for a rest node outside an array.
	ErrMisplacedRest = errors.New("rest pattern outside an array")
)

// RestPolicy decides how a rest capture treats a name that is already
// bound in the same match.
type RestPolicy int

const (
	// RestConflict treats a rest capture like any other capture: a second
	// binding of the name is a conflict.
	RestConflict RestPolicy = iota
	// RestOverwrite lets a rest capture replace the earlier binding.
	RestOverwrite
)

func (p RestPolicy) String() string {
	switch p {
	case RestConflict:
		return "conflict"
	case RestOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("RestPolicy(%d)", int(p))
	}
}

// ParseRestPolicy maps "conflict" and "overwrite" to a policy. The empty
// string selects RestConflict.
func ParseRestPolicy(s string) (RestPolicy, error) {
	switch s {
	case "", "conflict":
		return RestConflict, nil
	case "overwrite":
		return RestOverwrite, nil
	default:
		return RestConflict, fmt.Errorf("invalid rest policy %q", s)
	}
}

// Options controls compilation.
type Options struct {
	RestPolicy RestPolicy
}

type Option func(*Options)

// WithRestPolicy sets how rest captures handle names bound earlier.
func WithRestPolicy(p RestPolicy) Option {
	return func(o *Options) {
		o.RestPolicy = p
	}
}

// Compile turns an AST into a matcher. Compiled matchers hold no state
// and may be shared between goroutines.
func Compile(node pattern.Node, opts ...Option) (Matcher, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	c := &compiler{opts: o}
	return c.compile(node)
}

type compiler struct {
	opts Options
}

func (c *compiler) compile(node pattern.Node) (Matcher, error) {
	m, err := c.compileNode(node)
	if err != nil {
		return nil, err
	}

	if name := node.Binding(); name != "" {
		m = &bindMatcher{name: name, inner: m}
	}
	return m, nil
}

func (c *compiler) compileNode(node pattern.Node) (Matcher, error) {
	switch n := node.(type) {
	case *pattern.ArrayNode:
		m := &arrayMatcher{policy: c.opts.RestPolicy}
		elems, err := c.compileAll(n.Elements)
		if err != nil {
			return nil, err
		}
		m.elems = elems
		if n.Rest != nil {
			m.rest = &restCapture{name: n.Rest.Bind}
		}
		return m, nil

	case *pattern.EmptyArrayNode:
		return emptyArrayMatcher{}, nil

	case *pattern.ObjectNode:
		m := &objectMatcher{props: make([]Matcher, 0, len(n.Properties))}
		for _, prop := range n.Properties {
			pm, err := c.compile(prop)
			if err != nil {
				return nil, err
			}
			m.props = append(m.props, pm)
		}
		return m, nil

	case *pattern.PropertyNode:
		m := &propertyMatcher{name: n.Name, proto: n.Proto}
		if n.Type != nil {
			typ, err := c.compile(n.Type)
			if err != nil {
				return nil, err
			}
			m.typ = typ
		}
		return m, nil

	case *pattern.TypeNode:
		m := &typeMatcher{kind: n.Type}
		if n.Literals != nil {
			lits, err := c.compile(n.Literals)
			if err != nil {
				return nil, err
			}
			m.literals = lits
		}
		return m, nil

	case *pattern.RestNode:
		// the enclosing array captures the tail itself
		return nil, fmt.Errorf("%w: %s", ErrMisplacedRest, n)

	case *pattern.AlternationNode:
		opts, err := c.compileAll(n.Options)
		if err != nil {
			return nil, err
		}
		return &alternationMatcher{options: opts}, nil

	case *pattern.EqualsNode:
		return &equalsMatcher{literal: n.Value}, nil

	case *pattern.RegexMatchNode:
		return &regexMatcher{re: n.Regexp}, nil

	case *pattern.DateEqualsNode:
		return &dateMatcher{date: n.Date}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownNode, node)
	}
}

func (c *compiler) compileAll(nodes []pattern.Node) ([]Matcher, error) {
	out := make([]Matcher, 0, len(nodes))
	for _, node := range nodes {
		m, err := c.compile(node)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
