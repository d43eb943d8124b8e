package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reoring/sempcfg"
	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/document"
	"github.com/reoring/sempcfg/executor"
	"github.com/reoring/sempcfg/internal/journal"
	"github.com/reoring/sempcfg/internal/logging"
	"github.com/reoring/sempcfg/spec"
)

// loadTree imports the schema, reads the configuration document and returns
// the normalised tree.
func loadTree(docPath string) (*sempcfg.Object, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg, diag, err := spec.ImportFile(cfg.SpecPath, spec.DefaultOptions())
	if diag != nil {
		for _, w := range diag.Warnings() {
			logging.Warn("spec import", "file", cfg.SpecPath, "warning", w)
		}
	}
	if err != nil {
		return nil, err
	}
	printVerbose("Loaded %d object types from %s\n", len(reg.Paths())-1, cfg.SpecPath)

	doc, err := document.LoadFile(docPath, cfg.Selector)
	if err != nil {
		return nil, err
	}
	root, err := sempcfg.NewRoot(reg, "")
	if err != nil {
		return nil, err
	}
	if err := root.FromMap(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	if err := normalize(root); err != nil {
		return nil, fmt.Errorf("%s: %w", docPath, err)
	}
	return root, nil
}

// normalize drops broker-internal and deprecated objects, server-computed
// attributes and, unless --keep-defaults is set, default-valued attributes.
func normalize(root *sempcfg.Object) error {
	if err := root.RemoveChildren(sempcfg.Reserved, sempcfg.Deprecated); err != nil {
		return err
	}
	if err := root.RemoveAttributes(spec.ReadOnly); err != nil {
		return err
	}
	if !cfg.KeepDefaults {
		if err := root.RemoveAttributesWithDefaultValue(); err != nil {
			return err
		}
	}
	logging.Debug("tree normalised", "keepDefaults", cfg.KeepDefaults)
	return nil
}

// runPlan generates the commands for docPath, prints them and optionally
// records and replays them.
func runPlan(ctx context.Context, mode sempcfg.Mode, docPath string) error {
	root, err := loadTree(docPath)
	if err != nil {
		return err
	}
	l, err := sempcfg.Plan(root, mode)
	if err != nil {
		return fmt.Errorf("%s: %w", docPath, err)
	}
	logging.Info("plan ready", "mode", mode.String(), "source", docPath, "commands", l.Len())

	var (
		j     *journal.Journal
		runID int64
	)
	if cfg.Journal != "" {
		j, err = journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer func() { _ = j.Close() }()
		if runID, err = j.Record(mode.String(), docPath, l); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		printVerbose("Recorded run %d in %s\n", runID, cfg.Journal)
	}

	format, err := command.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := command.Write(os.Stdout, l, format); err != nil {
		return err
	}

	if !cfg.Execute {
		return nil
	}
	applied, runErr := replay(ctx, l)
	if j != nil {
		if err := j.MarkApplied(runID, applied, runErr); err != nil {
			logging.Warn("journal update failed", "run", runID, "err", err)
		}
	}
	return runErr
}

// replay sends l to the broker configured by --url.
func replay(ctx context.Context, l *command.List) (int, error) {
	ex, err := executor.New(executor.Options{
		BaseURL:  cfg.URL,
		User:     cfg.User,
		Password: cfg.Password,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return 0, err
	}
	applied, err := ex.Run(ctx, l)
	printInfo("Applied %d of %d commands to %s\n", applied, l.Len(), cfg.URL)
	return applied, err
}
