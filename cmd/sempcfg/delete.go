package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/sempcfg"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <config>",
		Short: "Print the commands that remove a configuration",
		Long: `The delete command lowers a configuration document into DELETE commands,
children before parents. Default objects cannot be deleted; they are disabled
instead when their type has an "enabled" attribute.

Example:
  sempcfg delete --spec semp-v2-config.json vpn.yaml
  sempcfg delete -s semp-v2-config.json --journal runs.db vpn.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), sempcfg.ModeDelete, args[0])
		},
	}
	return cmd
}
