package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"snapvault/internal/catalog"
	"snapvault/internal/config"
	"snapvault/internal/executor"
	"snapvault/internal/journal"
	"snapvault/internal/logging"
	"snapvault/internal/plan"
	"snapvault/internal/probe"
	"snapvault/internal/review"
)

type importOptions struct {
	source string
	dest   string
	move   bool
	dryRun bool
	all    bool
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import SOURCE",
		Short: "Review and import new media from a source directory",
		Long: `Import scans SOURCE for photos and videos, plans a dated destination for
each file not already archived, and opens the plan in a text editor for
review. Edit the action letters, save, and quit to execute the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if cfg == nil {
				return errors.New("configuration unavailable")
			}
			opts.source = args[0]

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			verbose := ctx.verboseFlag != nil && *ctx.verboseFlag
			return runImport(runCtx, cmd, cfg, ctx.newLogger(), opts, verbose)
		},
	}

	cmd.Flags().StringVar(&opts.dest, "dest", "", "Archive destination (default from config)")
	cmd.Flags().BoolVarP(&opts.move, "move", "m", false, "Move files instead of copying")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the reviewed plan without touching files")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Review the full plan without cursor positioning")
	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts importOptions, verbose bool) error {
	srcRoot, err := resolveDirectory(opts.source, "source")
	if err != nil {
		return err
	}

	dest := opts.dest
	if dest == "" {
		dest = cfg.Paths.Destination
	}
	destRoot, err := resolveDirectory(dest, "destination")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	prober := probe.NewFileProber(cfg.Import.FFprobeBinary, logger)

	store, err := catalog.Open(cfg.CacheFilePath(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := catalog.Refresh(ctx, destRoot, store.Entries(destRoot), prober, cfg.Import.ExcludedExtensions, logger)
	if err != nil {
		return fmt.Errorf("scan destination: %w", err)
	}
	store.SetEntries(destRoot, entries)
	if err := store.Save(); err != nil {
		return err
	}

	idx, err := catalog.BuildIndex(entries)
	if err != nil {
		return err
	}

	planner := plan.NewPlanner(prober, verbose, logger)
	tasks, unrecognized, err := planner.Plan(ctx, srcRoot, idx)
	if err != nil {
		return fmt.Errorf("plan import: %w", err)
	}
	if unrecognized > 0 {
		fmt.Fprintf(out, "Skipped %d file(s) without readable capture metadata\n", unrecognized)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "Nothing to import")
		return nil
	}

	line := 0
	if !opts.all {
		line = review.MarkCursor(tasks)
	}

	editor := review.NewEditor(cfg.Import.Editor, logger)
	edited, err := editor.Review(ctx, tasks, opts.move, line)
	if err != nil {
		return err
	}

	resolved := review.Resolve(edited, logger)
	if resolved == nil {
		fmt.Fprintln(out, "Import cancelled")
		return nil
	}
	if len(resolved) == 0 {
		fmt.Fprintln(out, "No tasks selected")
		return nil
	}

	started := time.Now()
	execOpts := executor.Options{
		Move:     opts.move,
		DryRun:   opts.dryRun,
		Progress: isatty.IsTerminal(os.Stdout.Fd()),
		Out:      out,
	}
	executed, execErr := executor.Run(ctx, resolved, srcRoot, destRoot, execOpts, logger)

	if cfg.Journal.Enabled && !opts.dryRun && executed > 0 {
		if err := recordBatch(ctx, cfg, logger, resolved, srcRoot, destRoot, opts.move, executed, started); err != nil {
			logger.Warn("journal write failed", logging.Error(err))
		}
	}

	if execErr != nil {
		return fmt.Errorf("executed %d of %d task(s): %w", executed, len(resolved), execErr)
	}

	verb := "Copied"
	if opts.move {
		verb = "Moved"
	}
	if opts.dryRun {
		verb = "Would have processed"
	}
	fmt.Fprintf(out, "%s %d file(s) to %s\n", verb, executed, destRoot)
	return nil
}

func recordBatch(ctx context.Context, cfg *config.Config, logger *slog.Logger, tasks []plan.Task, srcRoot, destRoot string, move bool, executed int, started time.Time) error {
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	mode := "copy"
	if move {
		mode = "move"
	}
	batch := journal.Batch{
		ID:            uuid.NewString(),
		SourceRoot:    srcRoot,
		DestRoot:      destRoot,
		Mode:          mode,
		TaskCount:     len(tasks),
		ExecutedCount: executed,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}
	ops := make([]journal.Operation, 0, executed)
	for i := 0; i < executed && i < len(tasks); i++ {
		ops = append(ops, journal.Operation{Seq: i + 1, Source: tasks[i].Source, Dest: tasks[i].Dest})
	}
	if err := store.RecordBatch(ctx, batch, ops); err != nil {
		return err
	}
	logger.Info("batch journaled", logging.String(logging.FieldBatchID, batch.ID))
	return nil
}

// resolveDirectory expands the path and requires an existing directory.
func resolveDirectory(path, role string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%s directory not specified", role)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s path: %w", role, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return "", fmt.Errorf("%s directory %s: %w", role, expanded, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s path %s is not a directory", role, expanded)
	}
	return filepath.Clean(expanded), nil
}
