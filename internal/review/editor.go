package review

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"snapvault/internal/logging"
	"snapvault/internal/plan"
)

// Editor hands the rendered task list to an external text editor and parses
// the result. The editor blocks the whole run; a non-zero exit aborts it.
type Editor struct {
	command string
	logger  *slog.Logger
}

// NewEditor constructs an editor runner. An empty command falls back to
// $EDITOR, then vim.
func NewEditor(command string, logger *slog.Logger) *Editor {
	command = strings.TrimSpace(command)
	if command == "" {
		command = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if command == "" {
		command = "vim"
	}
	return &Editor{
		command: command,
		logger:  logging.NewComponentLogger(logger, "review"),
	}
}

// Review writes tasks to a scratch file, blocks on the editor, and parses
// the edited content back. line positions the cursor for vi-family editors;
// 0 means no positioning. The scratch file is removed on every path once
// written.
func (e *Editor) Review(ctx context.Context, tasks []plan.Task, move bool, line int) ([]plan.Task, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("snapvault-review-%s.txt", uuid.NewString()))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create review file: %w", err)
	}
	defer os.Remove(path)

	if err := Render(f, tasks, move); err != nil {
		f.Close()
		return nil, fmt.Errorf("write review file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write review file: %w", err)
	}

	args := []string{path}
	if line > 0 && isViFamily(e.command) {
		args = append(args, fmt.Sprintf("+%d", line))
	}

	e.logger.Debug("opening review file",
		logging.String(logging.FieldPath, path),
		logging.String("editor", e.command),
		logging.Int("line", line))

	cmd := exec.CommandContext(ctx, e.command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %s: %w", e.command, err)
	}

	edited, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen review file: %w", err)
	}
	defer edited.Close()

	return Parse(edited, e.logger)
}

func isViFamily(command string) bool {
	return strings.Contains(filepath.Base(command), "vi")
}
