package rules

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle is how long the watcher waits after a change so that a burst of
// writes is read as one.
const settle = 100 * time.Millisecond

// Watcher keeps a table in sync with its file. A reload that fails keeps
// the previous table.
type Watcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	// mu guards table and started.
	mu      sync.RWMutex
	table   *Table
	started bool

	reloads chan *Table
	done    chan struct{}
}

// NewWatcher loads the table at path and prepares to watch it.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	table, err := Load(abs)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// editors often replace the file, so watch its directory
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("error adding directory to watcher: %w", err)
	}

	return &Watcher{
		path:    abs,
		logger:  logger,
		watcher: fw,
		table:   table,
		reloads: make(chan *Table, 1),
		done:    make(chan struct{}),
	}, nil
}

// Table returns the current table.
func (w *Watcher) Table() *Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.table
}

// Reloads delivers each table loaded after a change. Slow readers only
// see the latest one.
func (w *Watcher) Reloads() <-chan *Table {
	return w.reloads
}

// Start runs the watch loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("already watching")
	}
	w.started = true

	go w.watchLoop(ctx)
	return nil
}

// Close stops watching and waits for the loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()

	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	time.Sleep(settle)
	table, err := Load(w.path)
	if err != nil {
		w.logger.Error("failed to reload rule table", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.table = table
	w.mu.Unlock()

	w.logger.Info("rule table reloaded",
		zap.String("path", w.path),
		zap.String("table", table.Name),
		zap.Int("cases", len(table.Cases)),
	)

	// drop a reload nobody picked up
	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- table:
	default:
	}
}
