package missmatch

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch/internal/cache"
	"github.com/gnoswap-labs/missmatch/internal/compiler"
	"github.com/gnoswap-labs/missmatch/value"
)

type (
	// Result reports whether a pattern matched and what it captured.
	Result     = compiler.Result
	RestPolicy = compiler.RestPolicy
)

const (
	RestConflict  = compiler.RestConflict
	RestOverwrite = compiler.RestOverwrite
)

type config struct {
	logger     *zap.Logger
	restPolicy RestPolicy
}

// Option configures an Engine.
type Option func(*config)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRestPolicy sets how rest captures treat names bound earlier in the
// same match.
func WithRestPolicy(p RestPolicy) Option {
	return func(c *config) {
		c.restPolicy = p
	}
}

// Engine compiles patterns, caches them by source text and dispatches
// candidates over cases. It is safe for concurrent use.
type Engine struct {
	cache  *cache.Cache
	logger *zap.Logger
	policy RestPolicy
}

// New creates an engine with an empty pattern cache.
func New(opts ...Option) *Engine {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return &Engine{
		cache:  cache.NewCache(cfg.logger, compiler.WithRestPolicy(cfg.restPolicy)),
		logger: cfg.logger,
		policy: cfg.restPolicy,
	}
}

// RestPolicy returns the policy patterns are compiled with.
func (e *Engine) RestPolicy() RestPolicy { return e.policy }

// Cached returns the number of compiled patterns held by the engine.
func (e *Engine) Cached() int { return e.cache.Len() }

// Pattern is a compiled pattern. It holds no match state and may be run
// from several goroutines at once.
type Pattern struct {
	src     string
	matcher compiler.Matcher
}

// Compile parses and compiles src, reusing an earlier result for the same
// text.
func (e *Engine) Compile(src string) (*Pattern, error) {
	m, err := e.cache.Compile(src)
	if err != nil {
		return nil, err
	}
	return &Pattern{src: src, matcher: m}, nil
}

// MustCompile is like Compile but panics on error.
func (e *Engine) MustCompile(src string) *Pattern {
	p, err := e.Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the pattern text.
func (p *Pattern) Source() string { return p.src }

func (p *Pattern) String() string { return p.src }

// Run matches candidate against the pattern with a fresh set of bindings.
func (p *Pattern) Run(candidate any) (Result, error) {
	return compiler.Run(p.matcher, candidate)
}

// Matches reports whether candidate matches, ignoring bindings.
func (p *Pattern) Matches(candidate any) bool {
	res, err := p.Run(candidate)
	return err == nil && res.Matched
}

// MatchJSON decodes text and dispatches the decoded value over cases.
func (e *Engine) MatchJSON(text string, cases ...Case) (any, error) {
	candidate, err := value.DecodeJSON(text)
	if err != nil {
		return nil, fmt.Errorf("failed to decode candidate: %w", err)
	}
	return e.Match(candidate, cases...)
}

var defaultEngine = New()

// Compile compiles src with the default engine.
func Compile(src string) (*Pattern, error) {
	return defaultEngine.Compile(src)
}

// MustCompile compiles src with the default engine and panics on error.
func MustCompile(src string) *Pattern {
	return defaultEngine.MustCompile(src)
}

// Match dispatches candidate over cases with the default engine.
func Match(candidate any, cases ...Case) (any, error) {
	return defaultEngine.Match(candidate, cases...)
}

// MatchJSON decodes text and dispatches it with the default engine.
func MatchJSON(text string, cases ...Case) (any, error) {
	return defaultEngine.MatchJSON(text, cases...)
}
