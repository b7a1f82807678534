package missmatch

import (
	"go.uber.org/zap"
)

// Bindings maps capture names to the values they matched.
type Bindings map[string]any

// Handler produces the result of a matched case.
type Handler func(Bindings) (any, error)

// Case pairs a pattern with the handler run when it matches.
type Case struct {
	Pattern string
	Handler Handler
}

// When builds a case.
func When(pattern string, h Handler) Case {
	return Case{Pattern: pattern, Handler: h}
}

// Return builds a handler that ignores the bindings and returns v.
func Return(v any) Handler {
	return func(Bindings) (any, error) {
		return v, nil
	}
}

// Match tries cases in order and calls the handler of the first one whose
// pattern matches candidate. A nil handler yields a nil result. When no
// case matches, Match returns a *NonExhaustiveError; include a "_" case to
// catch everything.
func (e *Engine) Match(candidate any, cases ...Case) (any, error) {
	tried := make([]string, 0, len(cases))
	for i, c := range cases {
		p, err := e.Compile(c.Pattern)
		if err != nil {
			return nil, err
		}

		res, err := p.Run(candidate)
		if err != nil {
			return nil, err
		}
		if !res.Matched {
			tried = append(tried, c.Pattern)
			continue
		}

		e.logger.Debug("case matched",
			zap.String("pattern", c.Pattern),
			zap.Int("index", i),
			zap.Int("bindings", len(res.Bindings)),
		)
		if c.Handler == nil {
			return nil, nil
		}
		return c.Handler(Bindings(res.Bindings))
	}

	e.logger.Debug("no case matched", zap.Strings("patterns", tried))
	return nil, &NonExhaustiveError{Patterns: tried}
}
