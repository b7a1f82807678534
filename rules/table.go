package rules

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/formatter"
)

var funcMap = template.FuncMap{
	"json": formatter.FormatValue,
}

// Policy returns the rest policy declared by the table.
func (t *Table) Policy() (missmatch.RestPolicy, error) {
	if err := t.ensurePrepared(); err != nil {
		return missmatch.RestConflict, err
	}
	return t.policy, nil
}

// Engine returns a new engine using the table's rest policy.
func (t *Table) Engine(opts ...missmatch.Option) (*missmatch.Engine, error) {
	policy, err := t.Policy()
	if err != nil {
		return nil, err
	}
	opts = append(opts, missmatch.WithRestPolicy(policy))
	return missmatch.New(opts...), nil
}

// DispatchCases converts the rules into dispatch cases, in table order.
func (t *Table) DispatchCases() ([]missmatch.Case, error) {
	if err := t.ensurePrepared(); err != nil {
		return nil, err
	}

	cases := make([]missmatch.Case, 0, len(t.Cases))
	for i := range t.Cases {
		r := &t.Cases[i]
		cases = append(cases, missmatch.When(r.Pattern, r.handler()))
	}
	return cases, nil
}

// Dispatch runs candidate through the table with engine.
func (t *Table) Dispatch(engine *missmatch.Engine, candidate any) (any, error) {
	cases, err := t.DispatchCases()
	if err != nil {
		return nil, err
	}
	return engine.Match(candidate, cases...)
}

// ensurePrepared validates t once. Tables built by hand are prepared on
// first use, so concurrent callers share the result.
func (t *Table) ensurePrepared() error {
	t.prepare.Do(func() {
		t.prepareErr = t.validate()
	})
	return t.prepareErr
}

func (r *Rule) handler() missmatch.Handler {
	if r.tmpl == nil {
		return missmatch.Return(r.Value)
	}

	tmpl := r.tmpl
	name := r.label()
	return func(b missmatch.Bindings) (any, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, map[string]any(b)); err != nil {
			return nil, fmt.Errorf("failed to render result of %s: %w", name, err)
		}
		return buf.String(), nil
	}
}
