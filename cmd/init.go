package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/missmatch/rules"
)

const defaultRulesPath = "rules.yaml"

func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample rule table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultRulesPath
			if len(args) > 0 {
				path = args[0]
			}
			if err := initRuleTable(path, force); err != nil {
				opts.logger.Error("Error initializing rule table", zap.String("path", path), zap.Error(err))
				return errReported
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule table created: %s\n", path)
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return initCmd
}

func initRuleTable(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	return rules.Save(path, rules.Sample())
}
