// Package batch dispatches many JSON candidates concurrently.
package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/gnoswap-labs/missmatch/value"
)

// Dispatcher turns one decoded candidate into a result.
type Dispatcher interface {
	Dispatch(candidate any) (any, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(candidate any) (any, error)

func (f DispatcherFunc) Dispatch(candidate any) (any, error) { return f(candidate) }

// Item is the outcome for one input.
type Item struct {
	Index  int    `json:"index"`
	Input  string `json:"input"`
	Result any    `json:"result,omitempty"`
	Err    error  `json:"-"`
}

// Options controls ProcessInputs.
type Options struct {
	// Workers bounds concurrent dispatches. Zero means one per CPU.
	Workers int
	// Progress receives a progress bar when set.
	Progress    io.Writer
	Description string
}

// ProcessInput decodes input as JSON and dispatches it.
func ProcessInput(d Dispatcher, input string) (any, error) {
	candidate, err := value.DecodeJSON(input)
	if err != nil {
		return nil, err
	}
	return d.Dispatch(candidate)
}

// ProcessInputs runs every input through d and returns the items in input
// order. A failing input is reported in its item and does not stop the
// others. Cancelling ctx stops scheduling new inputs.
func ProcessInputs(
	ctx context.Context,
	logger *zap.Logger,
	d Dispatcher,
	inputs []string,
	opts Options,
) ([]Item, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(opts.Description),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	items := make([]Item, len(inputs))
	sem := semaphore.NewWeighted(int64(workers))
	var g errgroup.Group

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return nil, err
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			_ = g.Wait()
			return nil, err
		}

		g.Go(func() error {
			defer sem.Release(1)

			result, err := ProcessInput(d, input)
			if err != nil {
				logger.Error("Error processing input", zap.Int("index", i), zap.Error(err))
			}
			items[i] = Item{Index: i, Input: input, Result: result, Err: err}
			if bar != nil {
				_ = bar.Add(1)
			}
			// per-input failures stay in the item
			return nil
		})
	}
	_ = g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}
	return items, nil
}

// ReadInputs returns the non-blank lines of r.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			inputs = append(inputs, line)
		}
	}
	return inputs, scanner.Err()
}

// Failed counts the items that carry an error.
func Failed(items []Item) int {
	n := 0
	for _, item := range items {
		if item.Err != nil {
			n++
		}
	}
	return n
}
