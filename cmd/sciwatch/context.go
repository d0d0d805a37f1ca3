package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"sciwatch/internal/catalog"
	"sciwatch/internal/config"
	"sciwatch/internal/engine"
	"sciwatch/internal/logging"
	"sciwatch/internal/match"
	"sciwatch/internal/services/llm"
	"sciwatch/internal/timeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, logErr := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stderr"},
		})
		if logErr != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger, nil
}

// openCatalog loads the curated and bulk catalogs per the configuration.
func (c *commandContext) openCatalog() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Catalog.BulkPath, logger)
}

// openTracker opens the timeline at the configured path.
func (c *commandContext) openTracker() (*timeline.Tracker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return timeline.Open(cfg.Paths.TimelinePath, logger)
}

// newEngine wires the full matching engine: selector, optional oracle
// escalation, and optional timeline recording.
func (c *commandContext) newEngine(store *catalog.Store, tracker *timeline.Tracker, escalate bool) (*engine.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{engine.WithParallelism(cfg.Matching.Parallelism)}
	if tracker != nil {
		opts = append(opts, engine.WithTracker(tracker))
	}
	if escalate && cfg.EscalationActive() {
		llmCfg := cfg.GetLLM()
		oracle := llm.NewClient(llm.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			Referer:        llmCfg.Referer,
			Title:          llmCfg.Title,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		})
		timeout := time.Duration(llmCfg.TimeoutSeconds) * time.Second
		opts = append(opts, engine.WithEscalator(match.NewEscalator(store, oracle, logger, timeout)))
	}

	return engine.New(match.NewSelector(store), logger, opts...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
