package config

import (
	"fmt"
	"strings"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the normalized configuration for values that would break a
// run later. It assumes normalize has already been applied.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.Destination) == "" {
		return fmt.Errorf("paths.destination must not be empty")
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return fmt.Errorf("paths.cache_dir must not be empty")
	}
	for _, ext := range c.Import.ExcludedExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("import.excluded_extensions: %q must start with a dot", ext)
		}
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
