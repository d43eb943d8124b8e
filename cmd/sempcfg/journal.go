package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/internal/journal"
	"github.com/reoring/sempcfg/internal/logging"
)

func init() {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect command lists recorded with --journal",
	}
	cmd.AddCommand(newJournalListCmd(), newJournalShowCmd(), newJournalReplayCmd())
	rootCmd.AddCommand(cmd)
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalList()
		},
	}
}

func newJournalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the commands of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalShow(args[0])
		},
	}
}

func newJournalReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Send the commands of a recorded run to --url",
		Long: `The replay command sends a recorded command list to the broker in its
original order, stopping at the first failure. The outcome is stored back in
the journal.

Example:
  sempcfg journal replay --journal runs.db --url http://broker:8080/SEMP/v2/config 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, id, err := openRun(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = j.Close() }()
			if cfg.URL == "" {
				return fmt.Errorf("replay needs --url (or SEMPCFG_URL)")
			}
			return runJournalReplay(cmd.Context(), j, id)
		},
	}
}

// runStore is the part of the journal a replay needs.
type runStore interface {
	Load(id int64) (*command.List, error)
	MarkApplied(id int64, applied int, runErr error) error
}

// runJournalReplay resends run id and stores the outcome. A failed journal
// update is logged so the broker error is the one returned.
func runJournalReplay(ctx context.Context, j runStore, id int64) error {
	l, err := j.Load(id)
	if err != nil {
		return err
	}
	applied, runErr := replay(ctx, l)
	if err := j.MarkApplied(id, applied, runErr); err != nil {
		logging.Warn("journal update failed", "run", id, "err", err)
	}
	return runErr
}

func openJournal() (*journal.Journal, error) {
	if cfg.Journal == "" {
		return nil, fmt.Errorf("--journal (or SEMPCFG_JOURNAL) is required")
	}
	if _, err := os.Stat(cfg.Journal); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return journal.Open(cfg.Journal)
}

func openRun(arg string) (*journal.Journal, int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid run id %q", arg)
	}
	j, err := openJournal()
	if err != nil {
		return nil, 0, err
	}
	return j, id, nil
}

func runJournalList() error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	runs, err := j.Runs()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		applied := "-"
		if r.Applied >= 0 {
			applied = strconv.Itoa(r.Applied)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Mode,
			r.Source,
			r.Created.Format(time.RFC3339),
			strconv.Itoa(r.Commands),
			applied,
			r.Error,
		})
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Mode", "Source", "Created", "Commands", "Applied", "Error"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func runJournalShow(arg string) error {
	j, id, err := openRun(arg)
	if err != nil {
		return err
	}
	defer func() { _ = j.Close() }()

	l, err := j.Load(id)
	if err != nil {
		return err
	}
	format, err := command.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	return command.Write(os.Stdout, l, format)
}
