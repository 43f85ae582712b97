package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if len(cfg.Import.ExcludedExtensions) != 2 {
		t.Errorf("unexpected excluded extensions: %v", cfg.Import.ExcludedExtensions)
	}
	if cfg.CacheFilePath() == "" || filepath.Base(cfg.CacheFilePath()) != "cache.json" {
		t.Errorf("unexpected cache file path %q", cfg.CacheFilePath())
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
destination = "` + dir + `/archive"
cache_dir = "` + dir + `/cache"

[import]
excluded_extensions = ["XMP", ".Pto", ""]

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be found, got %s exists=%v", path, resolved, exists)
	}
	want := []string{".xmp", ".pto"}
	if len(cfg.Import.ExcludedExtensions) != len(want) {
		t.Fatalf("extensions = %v, want %v", cfg.Import.ExcludedExtensions, want)
	}
	for i, ext := range want {
		if cfg.Import.ExcludedExtensions[i] != ext {
			t.Errorf("extension[%d] = %q, want %q", i, cfg.Import.ExcludedExtensions[i], ext)
		}
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Journal.Path != filepath.Join(dir, "cache", "journal.db") {
		t.Errorf("journal path = %q", cfg.Journal.Path)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/pics")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "pics") {
		t.Errorf("ExpandPath = %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load of sample failed: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after write")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config invalid: %v", err)
	}
}
