package main

import (
	"github.com/spf13/cobra"

	"github.com/reoring/sempcfg"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <config>",
		Short: "Print the commands that create a configuration",
		Long: `The create command lowers a configuration document into POST commands for
new objects and PATCH commands for the pre-existing default objects.

Objects that must be disabled while their children change are created
disabled and enabled again once their children exist.

Example:
  sempcfg create --spec semp-v2-config.json vpn.yaml
  sempcfg create -s semp-v2-config.json --select '$.config' -o table vpn.yaml
  sempcfg create -s semp-v2-config.json --execute --url http://broker:8080/SEMP/v2/config vpn.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), sempcfg.ModeCreate, args[0])
		},
	}
	return cmd
}
