package testsupport

import (
	"path/filepath"
	"testing"

	"snapvault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Destination = filepath.Join(base, "archive")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Journal.Path = filepath.Join(base, "cache", "journal.db")
	cfg.Import.Editor = "true"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithDestination overrides the archive destination on the test config.
func WithDestination(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.Destination = path
	}
}

// WithEditor overrides the review editor command on the test config.
func WithEditor(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Import.Editor = command
	}
}

// WithJournalDisabled turns off batch journaling on the test config.
func WithJournalDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = false
	}
}
