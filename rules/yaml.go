// Package rules loads ordered dispatch tables from YAML.
package rules

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/internal/compiler"
	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

// ErrInvalidTable is wrapped by every validation failure of Parse.
var ErrInvalidTable = errors.New("invalid rule table")

// Rule is one case of a table. A rule yields Result rendered as a
// text/template over the bindings, or Value verbatim when Result is empty.
type Rule struct {
	Name    string `yaml:"name,omitempty"`
	Pattern string `yaml:"pattern"`
	Result  string `yaml:"result,omitempty"`
	Value   any    `yaml:"value,omitempty"`

	tmpl *template.Template
}

// Table is an ordered list of rules tried first to last.
type Table struct {
	Name       string `yaml:"name"`
	RestPolicy string `yaml:"rest_policy,omitempty"`
	Cases      []Rule `yaml:"cases"`

	policy     missmatch.RestPolicy
	prepare    sync.Once
	prepareErr error
}

// Load reads and validates the table stored at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table and checks that every pattern and result template
// is well formed.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if err := t.ensurePrepared(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes t to path as YAML.
func Save(path string, t *Table) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (t *Table) validate() error {
	policy, err := compiler.ParseRestPolicy(t.RestPolicy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	t.policy = policy

	if len(t.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidTable)
	}

	for i := range t.Cases {
		r := &t.Cases[i]
		if _, err := pattern.Parse(r.Pattern); err != nil {
			return fmt.Errorf("%w: case %d (%s): %w", ErrInvalidTable, i, r.label(), err)
		}
		if r.Result != "" && r.Value != nil {
			return fmt.Errorf("%w: case %d (%s): result and value are exclusive", ErrInvalidTable, i, r.label())
		}
		if r.Result == "" {
			continue
		}
		tmpl, err := template.New(r.label()).Funcs(funcMap).Option("missingkey=error").Parse(r.Result)
		if err != nil {
			return fmt.Errorf("%w: case %d (%s): %w", ErrInvalidTable, i, r.label(), err)
		}
		r.tmpl = tmpl
	}
	return nil
}

func (r *Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Pattern
}

// Sample returns the table written by "mm init".
func Sample() *Table {
	return &Table{
		Name:       "shapes",
		RestPolicy: missmatch.RestConflict.String(),
		Cases: []Rule{
			{Name: "empty", Pattern: "a()", Value: "empty list"},
			{Name: "pair", Pattern: "a(n@a,n@b)", Result: "pair {{.a}} {{.b}}"},
			{Name: "list", Pattern: "a(_@head|@tail)", Result: "list starting with {{json .head}} and {{len .tail}} more"},
			{Name: "point", Pattern: "o(.x:n@x,.y:n@y)", Result: "point at ({{.x}}, {{.y}})"},
			{Name: "greeting", Pattern: `o(.name:S@name)`, Result: "hello {{.name}}"},
			{Name: "fallback", Pattern: "_", Value: "unknown shape"},
		},
	}
}
