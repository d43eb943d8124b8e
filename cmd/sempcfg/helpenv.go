package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/reoring/sempcfg/internal/config"
)

func init() {
	rootCmd.AddCommand(helpEnvCommand)
}

var helpEnvCommand = &cobra.Command{
	Use:   "helpenv",
	Short: "Show environment variable help",
	Long: `Shows a table of the environment variables, the associated CLI option,
and the currently evaluated value of each setting.`,
	Run: showEnvHelp,
}

func showEnvHelp(cmd *cobra.Command, args []string) {
	headers := []string{
		"Env Name",
		"CLI Option",
		"Value",
	}
	rows := make([][]string, 0, len(config.EnvVars))
	for _, ev := range config.EnvVars {
		rows = append(rows, []string{ev.Name, ev.Flag, cfg.Value(ev.Flag)})
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()
}
