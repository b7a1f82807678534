package compiler

import (
	"regexp"
	"time"

	"github.com/gnoswap-labs/missmatch/internal/pattern"
	"github.com/gnoswap-labs/missmatch/value"
)

// Outcome is the result of one matcher call.
type Outcome struct {
	Matched bool
	// Value is what a binding on this matcher captures: the property value
	// for property tests, the candidate otherwise.
	Value any
}

// Matcher tests a candidate value. Match returns the environment to
// continue with; on failure it is the environment it was given.
type Matcher interface {
	Match(v any, env *Env) (Outcome, *Env)
}

func miss(v any) Outcome { return Outcome{Value: v} }
func hit(v any) Outcome  { return Outcome{Matched: true, Value: v} }

// arrayMatcher applies elems positionally. rest, when set, accepts every
// element after them.
type arrayMatcher struct {
	elems  []Matcher
	rest   *restCapture
	policy RestPolicy
}

func (m *arrayMatcher) Match(v any, env *Env) (Outcome, *Env) {
	seq, ok := value.AsSeq(v)
	if !ok {
		return miss(v), env
	}

	count := len(m.elems)
	if m.rest != nil {
		count++
	}
	if count > seq.Len() {
		return miss(v), env
	}
	if count == 0 {
		return hit(v), env
	}
	if m.rest == nil && seq.Len() > len(m.elems) {
		return miss(v), env
	}

	cur := env
	for i, elem := range m.elems {
		out, next := elem.Match(seq.At(i), cur)
		if !out.Matched {
			return miss(v), env
		}
		cur = next
	}

	if m.rest != nil && m.rest.name != "" {
		tail := seq.From(len(m.elems))
		if m.policy == RestOverwrite {
			cur = cur.Overwrite(m.rest.name, tail)
		} else {
			cur = cur.Extend(m.rest.name, tail)
		}
	}
	return hit(v), cur
}

type emptyArrayMatcher struct{}

func (emptyArrayMatcher) Match(v any, env *Env) (Outcome, *Env) {
	seq, ok := value.AsSeq(v)
	if !ok || seq.Len() != 0 {
		return miss(v), env
	}
	return hit(v), env
}

type objectMatcher struct {
	props []Matcher
}

func (m *objectMatcher) Match(v any, env *Env) (Outcome, *Env) {
	if !value.IsRecord(v) {
		return miss(v), env
	}

	cur := env
	for _, prop := range m.props {
		out, next := prop.Match(v, cur)
		if !out.Matched {
			return miss(v), env
		}
		cur = next
	}
	return hit(v), cur
}

type propertyMatcher struct {
	name  string
	proto bool
	typ   Matcher // nil when the property has no nested pattern
}

func (m *propertyMatcher) Match(v any, env *Env) (Outcome, *Env) {
	rec, ok := value.AsRecord(v)
	if !ok {
		return miss(v), env
	}

	var (
		prop  any
		found bool
	)
	if m.proto {
		prop, found = rec.Lookup(m.name)
	} else {
		prop, found = rec.Own(m.name)
	}
	if !found {
		return Outcome{Value: prop}, env
	}

	cur := env
	if m.typ != nil {
		out, next := m.typ.Match(prop, env)
		if !out.Matched {
			return Outcome{Value: prop}, env
		}
		cur = next
	}
	return Outcome{Matched: true, Value: prop}, cur
}

// typeMatcher is a type-tag leaf, optionally restricted to a literal list.
type typeMatcher struct {
	kind     pattern.NodeKind
	literals Matcher
}

func (m *typeMatcher) Match(v any, env *Env) (Outcome, *Env) {
	if !hasType(m.kind, v) {
		return miss(v), env
	}
	if m.literals == nil {
		return hit(v), env
	}
	out, next := m.literals.Match(v, env)
	if !out.Matched {
		return miss(v), env
	}
	return hit(v), next
}

func hasType(kind pattern.NodeKind, v any) bool {
	switch kind {
	case pattern.KindNumber:
		return value.IsNumber(v)
	case pattern.KindString:
		return value.IsString(v)
	case pattern.KindNonBlankString:
		s, ok := value.String(v)
		return ok && s != ""
	case pattern.KindBoolean:
		return value.IsBool(v)
	case pattern.KindCallable:
		return value.IsCallable(v)
	case pattern.KindDate:
		return value.IsDate(v)
	case pattern.KindRegex:
		return value.IsRegexp(v)
	case pattern.KindAny:
		return true
	default:
		return false
	}
}

type alternationMatcher struct {
	options []Matcher
}

func (m *alternationMatcher) Match(v any, env *Env) (Outcome, *Env) {
	for _, opt := range m.options {
		if out, next := opt.Match(v, env); out.Matched {
			return hit(v), next
		}
	}
	return miss(v), env
}

type equalsMatcher struct {
	literal any
}

func (m *equalsMatcher) Match(v any, env *Env) (Outcome, *Env) {
	return Outcome{Matched: value.Equal(m.literal, v), Value: v}, env
}

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Match(v any, env *Env) (Outcome, *Env) {
	s, ok := value.String(v)
	return Outcome{Matched: ok && m.re.MatchString(s), Value: v}, env
}

type dateMatcher struct {
	date time.Time
}

func (m *dateMatcher) Match(v any, env *Env) (Outcome, *Env) {
	t, ok := value.Date(v)
	return Outcome{Matched: ok && t.Equal(m.date), Value: v}, env
}

// restCapture names the tail of an array. An empty name discards it.
type restCapture struct {
	name string
}

// bindMatcher captures the extracted value of inner under name.
type bindMatcher struct {
	name  string
	inner Matcher
}

func (m *bindMatcher) Match(v any, env *Env) (Outcome, *Env) {
	out, next := m.inner.Match(v, env)
	if !out.Matched {
		return out, env
	}
	return out, next.Extend(m.name, out.Value)
}
