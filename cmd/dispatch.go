package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/batch"
	"github.com/gnoswap-labs/missmatch/formatter"
	"github.com/gnoswap-labs/missmatch/rules"
)

type dispatchOptions struct {
	rulesPath  string
	workers    int
	progress   bool
	watch      bool
	jsonOutput bool
	outPath    string
}

type dispatchOutput struct {
	Index  int    `json:"index"`
	Input  string `json:"input"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func newDispatchCmd(opts *rootOptions) *cobra.Command {
	o := &dispatchOptions{}

	dispatchCmd := &cobra.Command{
		Use:   "dispatch [json...]",
		Short: "Dispatch JSON values through a rule table",
		Long: "Dispatch JSON values through a rule table.\n" +
			"Values are read one per line from standard input when none are given.\n" +
			"With --watch the table is reloaded whenever its file changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.watch {
				if len(args) > 0 {
					return fmt.Errorf("--watch reads values from standard input only")
				}
				return runWatchDispatch(cmd.Context(), opts.logger, o, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			inputs := args
			if len(inputs) == 0 {
				var err error
				inputs, err = batch.ReadInputs(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read values: %w", err)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			var progress io.Writer
			if o.progress {
				progress = cmd.ErrOrStderr()
			}
			return runBatchDispatch(ctx, opts.logger, o, inputs, progress, cmd.OutOrStdout())
		},
	}

	flags := dispatchCmd.Flags()
	flags.StringVarP(&o.rulesPath, "rules", "r", defaultRulesPath, "Path to the rule table")
	flags.IntVar(&o.workers, "workers", 0, "Number of concurrent dispatches (default: one per CPU)")
	flags.BoolVar(&o.progress, "progress", false, "Show a progress bar on standard error")
	flags.BoolVar(&o.watch, "watch", false, "Reload the rule table when its file changes")
	flags.BoolVar(&o.jsonOutput, "json", false, "Output results in JSON format")
	flags.StringVarP(&o.outPath, "output", "o", "", "Output path (when using JSON)")
	return dispatchCmd
}

func runBatchDispatch(
	ctx context.Context,
	logger *zap.Logger,
	o *dispatchOptions,
	inputs []string,
	progress io.Writer,
	out io.Writer,
) error {
	table, err := rules.Load(o.rulesPath)
	if err != nil {
		return err
	}
	d, err := tableDispatcher(table, logger)
	if err != nil {
		return err
	}

	items, err := batch.ProcessInputs(ctx, logger, d, inputs, batch.Options{
		Workers:     o.workers,
		Progress:    progress,
		Description: "dispatching",
	})
	if err != nil {
		logger.Error("Error processing values", zap.Error(err))
		return err
	}

	if err := printItems(out, items, o.jsonOutput, o.outPath); err != nil {
		return err
	}
	if batch.Failed(items) > 0 {
		return errReported
	}
	return nil
}

func runWatchDispatch(ctx context.Context, logger *zap.Logger, o *dispatchOptions, in io.Reader, out io.Writer) error {
	w, err := rules.NewWatcher(o.rulesPath, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := w.Start(ctx); err != nil {
		return err
	}

	d, err := tableDispatcher(w.Table(), logger)
	if err != nil {
		return err
	}

	index := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case table := <-w.Reloads():
			next, err := tableDispatcher(table, logger)
			if err != nil {
				logger.Error("Error preparing reloaded table", zap.Error(err))
			} else {
				d = next
			}
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := batch.ProcessInput(d, line)
		item := batch.Item{Index: index, Input: line, Result: result, Err: err}
		index++
		if err := printItem(out, item, o.jsonOutput); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func tableDispatcher(table *rules.Table, logger *zap.Logger) (batch.Dispatcher, error) {
	engine, err := table.Engine(missmatch.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	cases, err := table.DispatchCases()
	if err != nil {
		return nil, err
	}
	return batch.DispatcherFunc(func(candidate any) (any, error) {
		return engine.Match(candidate, cases...)
	}), nil
}

func printItems(out io.Writer, items []batch.Item, isJson bool, jsonOutput string) error {
	if !isJson {
		for _, item := range items {
			if err := printItem(out, item, false); err != nil {
				return err
			}
		}
		return nil
	}

	outputs := make([]dispatchOutput, len(items))
	for i, item := range items {
		outputs[i] = newDispatchOutput(item)
	}
	d, err := json.Marshal(outputs)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if jsonOutput == "" {
		fmt.Fprintln(out, string(d))
		return nil
	}
	return os.WriteFile(jsonOutput, d, 0o644)
}

// printItem writes a single item, as one JSON object per line in JSON mode.
func printItem(out io.Writer, item batch.Item, isJson bool) error {
	if !isJson {
		fmt.Fprint(out, formatter.FormatDispatch(item.Input, item.Result, item.Err))
		return nil
	}
	d, err := json.Marshal(newDispatchOutput(item))
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(out, string(d))
	return nil
}

func newDispatchOutput(item batch.Item) dispatchOutput {
	o := dispatchOutput{Index: item.Index, Input: item.Input, Result: item.Result}
	if item.Err != nil {
		o.Error = item.Err.Error()
	}
	return o
}
