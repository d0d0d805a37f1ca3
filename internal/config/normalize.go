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
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizeAlerts(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	// File paths default into the data directory once it is resolved.
	if strings.TrimSpace(c.Paths.TimelinePath) == "" {
		c.Paths.TimelinePath = filepath.Join(c.Paths.DataDir, defaultTimelineFile)
	}
	if c.Paths.TimelinePath, err = expandPath(c.Paths.TimelinePath); err != nil {
		return fmt.Errorf("paths.timeline_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.SummaryDBPath) == "" {
		c.Paths.SummaryDBPath = filepath.Join(c.Paths.DataDir, defaultSummaryDBFile)
	}
	if c.Paths.SummaryDBPath, err = expandPath(c.Paths.SummaryDBPath); err != nil {
		return fmt.Errorf("paths.summary_db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() error {
	var err error
	if strings.TrimSpace(c.Catalog.BulkPath) == "" {
		c.Catalog.BulkPath = filepath.Join(c.Paths.DataDir, defaultBulkCatalogFile)
	}
	if c.Catalog.BulkPath, err = expandPath(c.Catalog.BulkPath); err != nil {
		return fmt.Errorf("catalog.bulk_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeAlerts() error {
	if strings.TrimSpace(c.Alerts.SubscriptionsPath) == "" {
		return nil
	}
	var err error
	if c.Alerts.SubscriptionsPath, err = expandPath(c.Alerts.SubscriptionsPath); err != nil {
		return fmt.Errorf("alerts.subscriptions_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
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
