package executor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapvault/internal/plan"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunCopiesFiles(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "DCIM", "IMG_0001.CR2"), "raw bytes")

	tasks := []plan.Task{{Action: "y", Source: "DCIM/IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"}}

	executed, err := Run(context.Background(), tasks, src, dest, Options{}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if executed != 1 {
		t.Errorf("executed = %d", executed)
	}

	copied, err := os.ReadFile(filepath.Join(dest, "2023-05-01", "IMG_0001.CR2"))
	if err != nil {
		t.Fatalf("destination file missing: %v", err)
	}
	if string(copied) != "raw bytes" {
		t.Errorf("copied content = %q", copied)
	}
	if _, err := os.Stat(filepath.Join(src, "DCIM", "IMG_0001.CR2")); err != nil {
		t.Errorf("copy mode must keep the source: %v", err)
	}
}

func TestRunMoveRemovesSource(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "IMG_0001.CR2"), "raw")

	tasks := []plan.Task{{Action: "y", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"}}

	if _, err := Run(context.Background(), tasks, src, dest, Options{Move: true}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(src, "IMG_0001.CR2")); !os.IsNotExist(err) {
		t.Errorf("move mode must remove the source, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "2023-05-01", "IMG_0001.CR2")); err != nil {
		t.Errorf("destination file missing: %v", err)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "IMG_0001.CR2"), "raw")

	tasks := []plan.Task{{Action: "y", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"}}

	var out bytes.Buffer
	executed, err := Run(context.Background(), tasks, src, dest, Options{DryRun: true, Move: true, Out: &out}, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if executed != 1 {
		t.Errorf("executed = %d", executed)
	}
	if !strings.Contains(out.String(), "IMG_0001.CR2") {
		t.Errorf("dry run should print the task, got %q", out.String())
	}

	if _, err := os.Stat(filepath.Join(dest, "2023-05-01")); !os.IsNotExist(err) {
		t.Error("dry run must not create destination directories")
	}
	if _, err := os.Stat(filepath.Join(src, "IMG_0001.CR2")); err != nil {
		t.Errorf("dry run must not touch the source: %v", err)
	}
}

func TestRunMissingSourceStopsBatch(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(src, "IMG_0001.CR2"), "raw")

	tasks := []plan.Task{
		{Action: "y", Source: "IMG_0001.CR2", Dest: "2023-05-01/IMG_0001.CR2"},
		{Action: "y", Source: "IMG_0002.CR2", Dest: "2023-05-01/IMG_0002.CR2"},
	}

	executed, err := Run(context.Background(), tasks, src, dest, Options{}, nil)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if executed != 1 {
		t.Errorf("first task should have completed, executed = %d", executed)
	}
	if _, statErr := os.Stat(filepath.Join(dest, "2023-05-01", "IMG_0001.CR2")); statErr != nil {
		t.Errorf("completed task must stay executed: %v", statErr)
	}
}

func TestCopyFilePreservesModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "data")

	info, err := os.Stat(src)
	if err != nil {
		t.Fatalf("stat src: %v", err)
	}
	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}
	copied, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if !copied.ModTime().Equal(info.ModTime()) {
		t.Errorf("mod time not preserved: %v vs %v", copied.ModTime(), info.ModTime())
	}
}
