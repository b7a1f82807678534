package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

// ErrNoMatch is returned when a candidate matched nothing.
var ErrNoMatch = errors.New("no match")

// errReported marks a failure whose message was already written.
var errReported = errors.New("reported")

type rootOptions struct {
	verbose bool
	noColor bool
	timeout time.Duration

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:              "mm",
		Short:            "mm - match values against structural patterns",
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			opts.logger = logger
			color.NoColor = opts.noColor || !isTerminal(os.Stdout)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Set a timeout for batch dispatch")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newDispatchCmd(opts))
	return rootCmd
}

// Execute runs the mm command line. Failures other than ErrNoMatch are
// printed to stderr before being returned.
func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrNoMatch) && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	}
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
