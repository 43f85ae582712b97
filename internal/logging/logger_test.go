package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		" ERROR ": slog.LevelError,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestConsoleHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	NewComponentLogger(logger, "catalog").Info("refresh complete", Int("entries", 3))

	line := buf.String()
	if !strings.Contains(line, "[catalog]") {
		t.Errorf("expected component prefix in %q", line)
	}
	if !strings.Contains(line, "refresh complete") {
		t.Errorf("expected message in %q", line)
	}
	if !strings.Contains(line, "entries=3") {
		t.Errorf("expected attribute in %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Warn("skipping", String("path", "My Photos/IMG 1.jpg"))

	if !strings.Contains(buf.String(), `path="My Photos/IMG 1.jpg"`) {
		t.Errorf("expected quoted value in %q", buf.String())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should never be enabled")
	}
}
