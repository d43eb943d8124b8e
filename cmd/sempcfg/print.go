package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPrintCmd())
}

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <config>",
		Short: "Print the normalised configuration tree",
		Long: `The print command shows the configuration tree after reserved and
deprecated objects, read-only attributes and default values have been removed.
The output is canonical JSON and can be fed back to create or delete.

Example:
  sempcfg print --spec semp-v2-config.json vpn.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(args[0])
		},
	}
	return cmd
}

func runPrint(docPath string) error {
	root, err := loadTree(docPath)
	if err != nil {
		return err
	}
	out, err := root.TreeJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}
