package review

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"snapvault/internal/logging"
	"snapvault/internal/plan"
)

// headerLineCount is the number of lines Header emits, including the
// trailing blank line. Task N renders at line headerLineCount+N+1.
const headerLineCount = 7

// Header documents the line grammar and action letters at the top of the
// scratch file. The verb reflects whether this run moves or copies.
func Header(move bool) string {
	operation := "copy"
	if move {
		operation = "move"
	}
	return fmt.Sprintf(`# action source dest comment
# actions:
#   y: %s
#   n: skip
#   f: first, skip all previous
#   c: cancel, skip all

`, operation)
}

// Render writes the header and one line per task.
func Render(w io.Writer, tasks []plan.Task, move bool) error {
	if _, err := io.WriteString(w, Header(move)); err != nil {
		return err
	}
	for _, task := range tasks {
		if _, err := io.WriteString(w, plan.FormatLine(task)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Parse reads the edited scratch content back into tasks. Blank lines and
// comment lines are skipped; a line that fails to parse is reported and
// discarded without blocking the rest.
func Parse(r io.Reader, logger *slog.Logger) ([]plan.Task, error) {
	logger = logging.NewComponentLogger(logger, "review")

	var tasks []plan.Task
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		task, err := plan.ParseLine(line)
		if err != nil {
			logger.Warn("unrecognized line", logging.String("line", line))
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read review file: %w", err)
	}
	return tasks, nil
}

// Resolve applies the control actions to the edited task list and returns
// the final execution list in the operator's order. A cancel anywhere aborts
// the whole batch; the last first marker truncates the list to start at
// itself; only proceed and first tasks survive.
func Resolve(tasks []plan.Task, logger *slog.Logger) []plan.Task {
	logger = logging.NewComponentLogger(logger, "review")

	cancelIdx, firstIdx := -1, -1
	for i, task := range tasks {
		switch task.Action {
		case plan.ActionCancel:
			cancelIdx = i
		case plan.ActionFirst:
			firstIdx = i
		case plan.ActionProceed, plan.ActionSkip:
		default:
			logger.Warn("unrecognized action; task will not run",
				logging.String("action", task.Action),
				logging.String("line", plan.FormatLine(task)))
		}
	}

	if cancelIdx >= 0 {
		logger.Info("cancel action found; aborting batch",
			logging.String("line", plan.FormatLine(tasks[cancelIdx])))
		return nil
	}

	if firstIdx >= 0 {
		logger.Info("first action found; skipping earlier tasks",
			logging.String("line", plan.FormatLine(tasks[firstIdx])),
			logging.Int("skipped", firstIdx))
		tasks = tasks[firstIdx:]
	}

	final := make([]plan.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Action == plan.ActionProceed || task.Action == plan.ActionFirst {
			final = append(final, task)
		}
	}
	return final
}

// MarkCursor positions the review for repeat runs over the same card: it
// finds the last skip-marked task, flips the task after it to first (or the
// final task to cancel when the skips reach the end), and returns the
// 1-based scratch-file line the editor should open at. Returns 0 and leaves
// tasks untouched when no task is skip-marked.
func MarkCursor(tasks []plan.Task) int {
	for i := len(tasks) - 1; i >= 0; i-- {
		if tasks[i].Action != plan.ActionSkip {
			continue
		}
		if i == len(tasks)-1 {
			tasks[i].Action = plan.ActionCancel
			return headerLineCount + i + 1
		}
		tasks[i+1].Action = plan.ActionFirst
		return headerLineCount + i + 2
	}
	return 0
}
