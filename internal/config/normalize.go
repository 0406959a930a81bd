package config

import (
	"fmt"
	"os"
	"strings"

	"artalign/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAlign()
	c.normalizeLanguages()
	c.normalizeOutput()
	if err := c.normalizeStore(); err != nil {
		return err
	}
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAlign() {
	if c.Align.WindowSize == 0 {
		c.Align.WindowSize = defaultWindowSize
	}
	if c.Align.Workers < 0 {
		c.Align.Workers = 0
	}
}

func (c *Config) normalizeLanguages() {
	if short, err := language.Normalize(c.Languages.Source); err == nil {
		c.Languages.Source = short
	}
	if short, err := language.Normalize(c.Languages.Target); err == nil {
		c.Languages.Target = short
	}
}

func (c *Config) normalizeOutput() {
	c.Output.AlignmentsFile = strings.TrimSpace(c.Output.AlignmentsFile)
	if c.Output.AlignmentsFile == "" {
		c.Output.AlignmentsFile = defaultAlignmentsFile
	}
	c.Output.JSONLFile = strings.TrimSpace(c.Output.JSONLFile)
}

func (c *Config) normalizeStore() error {
	if value, ok := os.LookupEnv(envStorePath); ok && strings.TrimSpace(value) != "" {
		c.Store.Path = strings.TrimSpace(value)
		c.Store.Enabled = true
	}
	var err error
	if c.Store.Path, err = expandPath(strings.TrimSpace(c.Store.Path)); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMetrics() error {
	var err error
	if c.Metrics.Textfile, err = expandPath(strings.TrimSpace(c.Metrics.Textfile)); err != nil {
		return fmt.Errorf("metrics.textfile: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
