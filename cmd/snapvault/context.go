package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"snapvault/internal/config"
	"snapvault/internal/logging"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// newLogger builds the run logger from the loaded config. --verbose lowers
// the level to debug regardless of the configured level.
func (c *commandContext) newLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		opts := logging.Options{}
		if cfg != nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			opts.Level = "debug"
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
