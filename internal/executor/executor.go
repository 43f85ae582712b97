package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"snapvault/internal/logging"
	"snapvault/internal/plan"
)

// Options controls how a resolved batch executes.
type Options struct {
	// Move removes the source after a successful transfer; otherwise the
	// source is left in place.
	Move bool
	// DryRun prints the operations instead of performing them.
	DryRun bool
	// Progress renders a progress bar; disable when stdout is not a
	// terminal.
	Progress bool
	// Out receives dry-run lines. Defaults to stdout.
	Out io.Writer
}

// Run executes the resolved task list against the filesystem and returns the
// number of completed operations. The first failure aborts the batch;
// earlier operations are not rolled back.
func Run(ctx context.Context, tasks []plan.Task, srcRoot, destRoot string, opts Options, logger *slog.Logger) (int, error) {
	logger = logging.NewComponentLogger(logger, "executor")
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var tracker *progress.Tracker
	var pw progress.Writer
	if opts.Progress && !opts.DryRun && len(tasks) > 0 {
		pw = progress.NewWriter()
		pw.SetOutputWriter(out)
		pw.SetUpdateFrequency(100 * time.Millisecond)
		tracker = &progress.Tracker{Message: "importing", Total: int64(len(tasks))}
		pw.AppendTracker(tracker)
		go pw.Render()
		defer stopProgress(pw)
	}

	executed := 0
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		src := filepath.Join(srcRoot, filepath.FromSlash(task.Source))
		if _, err := os.Stat(src); err != nil {
			return executed, fmt.Errorf("source vanished before execution: %s: %w", src, err)
		}

		if opts.DryRun {
			fmt.Fprintln(out, plan.FormatLine(task))
			executed++
			continue
		}

		if tracker != nil {
			tracker.UpdateMessage(task.Dest)
		}

		target := filepath.Join(destRoot, filepath.FromSlash(task.Dest))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return executed, fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}

		var err error
		if opts.Move {
			err = moveFile(src, target)
		} else {
			err = copyFile(src, target)
		}
		if err != nil {
			return executed, err
		}

		logger.Debug("executed task",
			logging.String("source", task.Source),
			logging.String("dest", task.Dest),
			logging.Bool("move", opts.Move))
		executed++
		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}
	return executed, nil
}

func stopProgress(pw progress.Writer) {
	pw.Stop()
	for i := 0; i < 50 && pw.IsRenderInProgress(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
}
