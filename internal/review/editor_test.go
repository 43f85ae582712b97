package review

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editors are not available on windows")
	}
	path := filepath.Join(t.TempDir(), "editor.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestEditorRoundTripWithoutEdits(t *testing.T) {
	editor := NewEditor(writeScript(t, "exit 0"), nil)

	tasks := sampleTasks()
	got, err := editor.Review(context.Background(), tasks, false, 0)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if len(got) != len(tasks) {
		t.Fatalf("got %d tasks, want %d", len(got), len(tasks))
	}
	for i := range tasks {
		if got[i] != tasks[i] {
			t.Errorf("task %d mismatch: %+v vs %+v", i, got[i], tasks[i])
		}
	}
}

func TestEditorSeesRenderedTasks(t *testing.T) {
	// The script rewrites every proceed action to cancel, like an operator
	// aborting the batch.
	editor := NewEditor(writeScript(t, `sed 's/^y /c /' "$1" > "$1.tmp" && mv "$1.tmp" "$1"`), nil)

	got, err := editor.Review(context.Background(), sampleTasks(), false, 0)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if final := Resolve(got, nil); len(final) != 0 {
		t.Fatalf("expected cancelled batch, got %v", final)
	}
}

func TestEditorFailureIsFatal(t *testing.T) {
	editor := NewEditor(writeScript(t, "exit 3"), nil)

	if _, err := editor.Review(context.Background(), sampleTasks(), false, 0); err == nil {
		t.Fatal("expected error for non-zero editor exit")
	}
}

func TestEditorCleansUpScratchFile(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "seen-path")
	editor := NewEditor(writeScript(t, `printf %s "$1" > `+capture), nil)

	if _, err := editor.Review(context.Background(), sampleTasks(), false, 0); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	seen, err := os.ReadFile(capture)
	if err != nil {
		t.Fatalf("editor script did not run: %v", err)
	}
	if _, err := os.Stat(string(seen)); !os.IsNotExist(err) {
		t.Errorf("scratch file %s should be removed after review", seen)
	}
}

func TestViFamilyDetection(t *testing.T) {
	for command, want := range map[string]bool{
		"vim":         true,
		"/usr/bin/vi": true,
		"nvim":        true,
		"nano":        false,
		"emacsclient": false,
		"/usr/bin/hx": false,
	} {
		if got := isViFamily(command); got != want {
			t.Errorf("isViFamily(%q) = %v, want %v", command, got, want)
		}
	}
}
