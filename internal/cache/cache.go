// Package cache memoizes compiled patterns by their source text.
package cache

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch/internal/compiler"
	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

type Entry struct {
	Matcher   compiler.Matcher
	CreatedAt time.Time
	hits      atomic.Int64
}

// Hits returns how many lookups were served by this entry.
func (e *Entry) Hits() int64 { return e.hits.Load() }

// Cache maps pattern text to its compiled matcher for the lifetime of the
// process. Entries are never evicted.
type Cache struct {
	entries map[string]*Entry
	mutex   sync.RWMutex
	opts    []compiler.Option
	logger  *zap.Logger
}

func NewCache(logger *zap.Logger, opts ...compiler.Option) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		entries: make(map[string]*Entry),
		opts:    opts,
		logger:  logger,
	}
}

// Get returns the matcher stored for src.
func (c *Cache) Get(src string) (compiler.Matcher, bool) {
	c.mutex.RLock()
	entry, exists := c.entries[src]
	c.mutex.RUnlock()
	if !exists {
		return nil, false
	}

	entry.hits.Add(1)
	return entry.Matcher, true
}

// Compile returns the cached matcher for src, parsing and compiling it on
// first use. Failed compiles are not stored. When two callers race on the
// same new pattern both compile, and the first stored matcher is kept.
func (c *Cache) Compile(src string) (compiler.Matcher, error) {
	if m, ok := c.Get(src); ok {
		c.logger.Debug("pattern cache hit", zap.String("pattern", src))
		return m, nil
	}

	node, err := pattern.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern %q: %w", src, err)
	}
	m, err := compiler.Compile(node, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", src, err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if entry, exists := c.entries[src]; exists {
		return entry.Matcher, nil
	}
	c.entries[src] = &Entry{Matcher: m, CreatedAt: time.Now()}
	c.logger.Debug("pattern compiled",
		zap.String("pattern", src),
		zap.Int("entries", len(c.entries)),
	)
	return m, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Patterns returns the cached pattern texts in sorted order.
func (c *Cache) Patterns() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]string, 0, len(c.entries))
	for src := range c.entries {
		out = append(out, src)
	}
	sort.Strings(out)
	return out
}

// Entry returns the cache entry for src.
func (c *Cache) Entry(src string) (*Entry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[src]
	return entry, exists
}
