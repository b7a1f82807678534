package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/formatter"
	"github.com/gnoswap-labs/missmatch/internal/pattern"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var canonical bool

	parseCmd := &cobra.Command{
		Use:   "parse <pattern>",
		Short: "Parse a pattern and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := pattern.Parse(args[0])
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatParseError("pattern", args[0], err))
				return errReported
			}

			opts.logger.Debug("pattern parsed", zap.String("pattern", args[0]), zap.Stringer("kind", node.Kind()))
			if canonical {
				fmt.Fprintln(cmd.OutOrStdout(), pattern.Format(node))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), node.String())
			}
			return nil
		},
	}

	parseCmd.Flags().BoolVar(&canonical, "canonical", false, "Print the pattern in canonical form instead of the tree")
	return parseCmd
}

func isSyntaxError(err error) bool {
	return errors.Is(err, missmatch.ErrSyntax)
}
