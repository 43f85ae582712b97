package plan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"

	"snapvault/internal/catalog"
	"snapvault/internal/logging"
	"snapvault/internal/probe"
)

// Planner turns a source tree into a task list, pre-marking files the
// archive already holds.
type Planner struct {
	prober  probe.Prober
	verbose bool
	logger  *slog.Logger
}

// NewPlanner constructs a planner. Verbose mode appends size and timestamp
// to every task comment.
func NewPlanner(pr probe.Prober, verbose bool, logger *slog.Logger) *Planner {
	return &Planner{
		prober:  pr,
		verbose: verbose,
		logger:  logging.NewComponentLogger(logger, "planner"),
	}
}

// Plan walks srcRoot in discovery order and produces one task per probeable
// file. Files whose metadata cannot be read are reported, counted, and left
// out; the count is the second return value. The task order determines where
// the review cursor heuristic positions itself, so it is never sorted
// afterwards.
func (p *Planner) Plan(ctx context.Context, srcRoot string, idx *catalog.Index) ([]Task, int, error) {
	var tasks []Task
	unrecognized := 0

	err := filepath.WalkDir(srcRoot, func(fpath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %s: %w", fpath, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, fpath)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", fpath, err)
		}
		rel = filepath.ToSlash(rel)

		meta, err := p.prober.Probe(ctx, fpath)
		if err != nil {
			p.logger.Warn("unrecognized file",
				logging.String(logging.FieldPath, fpath),
				logging.Error(err))
			unrecognized++
			return nil
		}
		taken, err := meta.TakenTime()
		if err != nil {
			p.logger.Warn("unrecognized file",
				logging.String(logging.FieldPath, fpath),
				logging.Error(err))
			unrecognized++
			return nil
		}

		name := path.Base(rel)
		date := taken.Format("2006-01-02")
		task := Task{
			Action: ActionProceed,
			Source: rel,
			Dest:   date + "/" + name,
		}

		fp := catalog.Fingerprint{Size: meta.Size, Taken: meta.Taken}
		if existing, ok := idx.Lookup(name, fp); ok {
			task.Action = ActionSkip
			task.Comment = "in " + path.Dir(existing)
		}
		if p.verbose {
			detail := fmt.Sprintf("size: %d, time: %s", meta.Size, meta.Taken)
			if task.Comment != "" {
				task.Comment += ", " + detail
			} else {
				task.Comment = detail
			}
		}

		tasks = append(tasks, task)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	p.logger.Debug("planned import",
		logging.String(logging.FieldRoot, srcRoot),
		logging.Int("tasks", len(tasks)),
		logging.Int("unrecognized", unrecognized))
	return tasks, unrecognized, nil
}
