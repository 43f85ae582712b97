package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeImport()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Destination) == "" {
		c.Paths.Destination = defaultDestination
	}
	if c.Paths.Destination, err = ExpandPath(c.Paths.Destination); err != nil {
		return fmt.Errorf("paths.destination: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("paths.cache_dir: resolve user cache directory: %w", err)
		}
		c.Paths.CacheDir = filepath.Join(base, "snapvault")
	} else if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeImport() {
	exts := make([]string, 0, len(c.Import.ExcludedExtensions))
	for _, ext := range c.Import.ExcludedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Import.ExcludedExtensions = exts

	c.Import.Editor = strings.TrimSpace(c.Import.Editor)
	c.Import.FFprobeBinary = strings.TrimSpace(c.Import.FFprobeBinary)
	if c.Import.FFprobeBinary == "" {
		c.Import.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeJournal() error {
	var err error
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.CacheDir, "journal.db")
		return nil
	}
	if c.Journal.Path, err = ExpandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
