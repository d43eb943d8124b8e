package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/sempcfg/internal/config"
	"github.com/reoring/sempcfg/internal/logging"
)

// Global settings, bound to persistent flags.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "sempcfg",
	Short: "Turn broker configuration documents into SEMP v2 commands",
	Long: `sempcfg reads a nested JSON or YAML description of message VPN objects,
normalises it against the SEMP v2 config API document, and prints the ordered
POST/PATCH/DELETE commands that create or remove that configuration.

Commands are printed in the order they must be applied. With --execute they are
also sent to the broker, stopping at the first failure.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(logging.Options{Format: cfg.LogFormat, Verbose: cfg.Verbose})
	},
}

func init() {
	cfg.AddFlags(rootCmd.PersistentFlags())
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output. Status messages go to stderr so stdout only
// carries the command list.

// printInfo prints a status message
func printInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// printVerbose prints a status message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
