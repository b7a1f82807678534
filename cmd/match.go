package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch"
	"github.com/gnoswap-labs/missmatch/formatter"
	"github.com/gnoswap-labs/missmatch/internal/compiler"
	"github.com/gnoswap-labs/missmatch/value"
)

type matchOutput struct {
	Pattern  string         `json:"pattern"`
	Matched  bool           `json:"matched"`
	Bindings map[string]any `json:"bindings"`
}

func newMatchCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		restPolicy string
	)

	matchCmd := &cobra.Command{
		Use:   "match <pattern> [json]",
		Short: "Match a JSON value against a pattern and print the bindings",
		Long: "Match a JSON value against a pattern and print the bindings.\n" +
			"The value is read from standard input when it is not given as an argument.\n" +
			"Exits with status 1 when the value does not match.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := compiler.ParseRestPolicy(restPolicy)
			if err != nil {
				return err
			}

			text, err := readCandidate(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			engine := missmatch.New(missmatch.WithLogger(opts.logger), missmatch.WithRestPolicy(policy))
			res, err := runMatch(engine, args[0], text)
			if err != nil {
				if isSyntaxError(err) {
					fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatParseError("pattern", args[0], err))
					return errReported
				}
				opts.logger.Debug("match failed", zap.String("pattern", args[0]), zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				d, err := json.Marshal(matchOutput{Pattern: args[0], Matched: res.Matched, Bindings: res.Bindings})
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(out, string(d))
			} else {
				fmt.Fprint(out, formatter.FormatResult(args[0], res.Matched, res.Bindings))
			}

			if !res.Matched {
				return ErrNoMatch
			}
			return nil
		},
	}

	matchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result in JSON format")
	matchCmd.Flags().StringVar(&restPolicy, "rest-policy", "", "How a rest capture treats an existing binding (conflict or overwrite)")
	return matchCmd
}

func runMatch(engine *missmatch.Engine, src, text string) (missmatch.Result, error) {
	p, err := engine.Compile(src)
	if err != nil {
		return missmatch.Result{}, err
	}
	candidate, err := value.DecodeJSON(text)
	if err != nil {
		return missmatch.Result{}, fmt.Errorf("failed to decode candidate: %w", err)
	}
	return p.Run(candidate)
}

func readCandidate(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read candidate: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no candidate given")
	}
	return text, nil
}
