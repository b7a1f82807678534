package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NodeKind defines the kind of an AST node.
type NodeKind int

const (
	KindArray NodeKind = iota
	KindEmptyArray
	KindObject
	KindOwnProperty
	KindProtoProperty
	KindNumber
	KindString
	KindNonBlankString
	KindBoolean
	KindCallable
	KindDate
	KindRegex
	KindAny
	KindRest
	KindAlternation
	KindLiteralEquals
	KindLiteralRegexMatch
	KindLiteralDateEquals
)

func (k NodeKind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindEmptyArray:
		return "empty array"
	case KindObject:
		return "object"
	case KindOwnProperty:
		return "own property"
	case KindProtoProperty:
		return "prototype property"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNonBlankString:
		return "non-blank string"
	case KindBoolean:
		return "boolean"
	case KindCallable:
		return "function"
	case KindDate:
		return "date"
	case KindRegex:
		return "regexp"
	case KindAny:
		return "any"
	case KindRest:
		return "rest"
	case KindAlternation:
		return "alternation"
	case KindLiteralEquals:
		return "literal"
	case KindLiteralRegexMatch:
		return "regex match"
	case KindLiteralDateEquals:
		return "date literal"
	default:
		return "unknown"
	}
}

// Node is implemented by every AST node. The set of implementations is
// closed: only this package can add one.
type Node interface {
	Kind() NodeKind  // returns the node kind
	String() string  // debugging or printing purpose
	Position() int   // where the node starts in the input
	Binding() string // the binding name, or "" when unbound
	node()
}

var (
	_ Node = (*ArrayNode)(nil)
	_ Node = (*EmptyArrayNode)(nil)
	_ Node = (*ObjectNode)(nil)
	_ Node = (*PropertyNode)(nil)
	_ Node = (*TypeNode)(nil)
	_ Node = (*RestNode)(nil)
	_ Node = (*AlternationNode)(nil)
	_ Node = (*EqualsNode)(nil)
	_ Node = (*RegexMatchNode)(nil)
	_ Node = (*DateEqualsNode)(nil)
)

// ArrayNode matches an ordered sequence element by element. Rest, when
// set, follows the elements.
type ArrayNode struct {
	Elements []Node
	Rest     *RestNode
	Bind     string
	pos      int
}

func (a *ArrayNode) Kind() NodeKind  { return KindArray }
func (a *ArrayNode) Position() int   { return a.pos }
func (a *ArrayNode) Binding() string { return a.Bind }
func (a *ArrayNode) node()           {}

func (a *ArrayNode) String() string {
	children := a.Elements
	if a.Rest != nil {
		children = append(children[:len(children):len(children)], a.Rest)
	}
	return tree(fmt.Sprintf("ArrayNode%s(%d elements)", bindSuffix(a.Bind), len(a.Elements)), children)
}

// EmptyArrayNode matches only zero-length sequences.
type EmptyArrayNode struct {
	Bind string
	pos  int
}

func (e *EmptyArrayNode) Kind() NodeKind  { return KindEmptyArray }
func (e *EmptyArrayNode) Position() int   { return e.pos }
func (e *EmptyArrayNode) Binding() string { return e.Bind }
func (e *EmptyArrayNode) node()           {}
func (e *EmptyArrayNode) String() string  { return "EmptyArrayNode" + bindSuffix(e.Bind) }

// ObjectNode matches a keyed record holding every listed property.
type ObjectNode struct {
	Properties []*PropertyNode
	Bind       string
	pos        int
}

func (o *ObjectNode) Kind() NodeKind  { return KindObject }
func (o *ObjectNode) Position() int   { return o.pos }
func (o *ObjectNode) Binding() string { return o.Bind }
func (o *ObjectNode) node()           {}

func (o *ObjectNode) String() string {
	children := make([]Node, len(o.Properties))
	for i, p := range o.Properties {
		children[i] = p
	}
	return tree(fmt.Sprintf("ObjectNode%s(%d properties)", bindSuffix(o.Bind), len(o.Properties)), children)
}

// PropertyNode tests that a record holds Name, either directly (own) or
// anywhere on its prototype chain, and optionally that the value matches
// Type.
type PropertyNode struct {
	Name  string
	Proto bool
	Type  Node
	Bind  string
	pos   int
}

func (p *PropertyNode) Kind() NodeKind {
	if p.Proto {
		return KindProtoProperty
	}
	return KindOwnProperty
}

func (p *PropertyNode) Position() int   { return p.pos }
func (p *PropertyNode) Binding() string { return p.Bind }
func (p *PropertyNode) node()           {}

func (p *PropertyNode) String() string {
	label := fmt.Sprintf("PropertyNode(%s %q)%s", p.Kind(), p.Name, bindSuffix(p.Bind))
	if p.Type == nil {
		return label
	}
	return tree(label, []Node{p.Type})
}

// TypeNode is a type-tag leaf: n, s, S, b, f, d, r or _. Literals, when
// set, restricts the leaf to the listed values.
type TypeNode struct {
	Type     NodeKind
	Literals *AlternationNode
	Bind     string
	pos      int
}

func (t *TypeNode) Kind() NodeKind  { return t.Type }
func (t *TypeNode) Position() int   { return t.pos }
func (t *TypeNode) Binding() string { return t.Bind }
func (t *TypeNode) node()           {}

func (t *TypeNode) String() string {
	label := fmt.Sprintf("TypeNode(%s)%s", t.Type, bindSuffix(t.Bind))
	if t.Literals == nil {
		return label
	}
	return tree(label, []Node{t.Literals})
}

// RestNode consumes the remaining elements of an array.
type RestNode struct {
	Bind string
	pos  int
}

func (r *RestNode) Kind() NodeKind  { return KindRest }
func (r *RestNode) Position() int   { return r.pos }
func (r *RestNode) Binding() string { return r.Bind }
func (r *RestNode) node()           {}
func (r *RestNode) String() string  { return "RestNode" + bindSuffix(r.Bind) }

// AlternationNode succeeds when any of its literal options does.
type AlternationNode struct {
	Options []Node
	pos     int
}

func (a *AlternationNode) Kind() NodeKind  { return KindAlternation }
func (a *AlternationNode) Position() int   { return a.pos }
func (a *AlternationNode) Binding() string { return "" }
func (a *AlternationNode) node()           {}

func (a *AlternationNode) String() string {
	return tree(fmt.Sprintf("AlternationNode(%d options)", len(a.Options)), a.Options)
}

// EqualsNode holds a number (float64), string, bool or *regexp.Regexp
// literal compared for strict equality.
type EqualsNode struct {
	Value any
	pos   int
}

func (e *EqualsNode) Kind() NodeKind  { return KindLiteralEquals }
func (e *EqualsNode) Position() int   { return e.pos }
func (e *EqualsNode) Binding() string { return "" }
func (e *EqualsNode) node()           {}
func (e *EqualsNode) String() string  { return fmt.Sprintf("EqualsNode(%s)", formatLiteral(e.Value)) }

// RegexMatchNode matches strings accepted by Regexp.
type RegexMatchNode struct {
	Regexp *regexp.Regexp
	pos    int
}

func (r *RegexMatchNode) Kind() NodeKind  { return KindLiteralRegexMatch }
func (r *RegexMatchNode) Position() int   { return r.pos }
func (r *RegexMatchNode) Binding() string { return "" }
func (r *RegexMatchNode) node()           {}
func (r *RegexMatchNode) String() string  { return fmt.Sprintf("RegexMatchNode(/%s/)", r.Regexp) }

// DateEqualsNode matches dates denoting the same instant as Date. Raw keeps
// the literal text as written.
type DateEqualsNode struct {
	Date time.Time
	Raw  string
	pos  int
}

func (d *DateEqualsNode) Kind() NodeKind  { return KindLiteralDateEquals }
func (d *DateEqualsNode) Position() int   { return d.pos }
func (d *DateEqualsNode) Binding() string { return "" }
func (d *DateEqualsNode) node()           {}

func (d *DateEqualsNode) String() string {
	return fmt.Sprintf("DateEqualsNode(%s)", d.Date.Format(time.RFC3339Nano))
}

func bindSuffix(name string) string {
	if name == "" {
		return ""
	}
	return "@" + name
}

func tree(label string, children []Node) string {
	if len(children) == 0 {
		return label
	}
	var sb strings.Builder
	sb.WriteString(label)
	sb.WriteString(":")
	for i, child := range children {
		// apply indentation for children node
		childStr := strings.ReplaceAll(child.String(), "\n", "\n  ")
		sb.WriteString(fmt.Sprintf("\n  %d: %s", i, childStr))
	}
	return sb.String()
}
