package config

import (
	"errors"
	"fmt"
	"strings"

	"artalign/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlign(); err != nil {
		return err
	}
	if err := c.validateClassify(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAlign() error {
	if err := ensurePositiveMap(map[string]int{
		"align.window_size": c.Align.WindowSize,
		"align.ngrams":      c.Align.NGrams,
	}); err != nil {
		return err
	}
	if c.Align.LengthRatioMin <= 0 || c.Align.LengthRatioMin > 1 {
		return errors.New("align.length_ratio_min must be in (0, 1]")
	}
	if c.Align.PlaceholderScore < 0 || c.Align.PlaceholderScore >= 1 {
		return errors.New("align.placeholder_score must be in [0, 1)")
	}
	return nil
}

func (c *Config) validateClassify() error {
	open := map[string]float64{
		"classify.parallel_bleu":  c.Classify.ParallelBLEU,
		"classify.composite_min":  c.Classify.CompositeMin,
		"classify.comparable_min": c.Classify.ComparableMin,
	}
	for key, value := range open {
		if value <= 0 || value >= 1 {
			return fmt.Errorf("%s must be between 0 and 1 (exclusive)", key)
		}
	}
	closed := map[string]float64{
		"classify.number_overlap_min": c.Classify.NumberOverlapMin,
		"classify.neutral_ratio":      c.Classify.NeutralRatio,
		"classify.length_weight":      c.Classify.LengthWeight,
		"classify.number_weight":      c.Classify.NumberWeight,
	}
	for key, value := range closed {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	if c.Classify.LengthWeight+c.Classify.NumberWeight == 0 {
		return errors.New("classify.length_weight and classify.number_weight cannot both be 0")
	}
	if c.Classify.SparseNumberLimit < 0 {
		return errors.New("classify.sparse_number_limit must be >= 0")
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if _, err := language.Normalize(c.Languages.Source); err != nil {
		return fmt.Errorf("languages.source: %w", err)
	}
	if _, err := language.Normalize(c.Languages.Target); err != nil {
		return fmt.Errorf("languages.target: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.ContainsAny(c.Output.AlignmentsFile, `/\`) {
		return errors.New("output.alignments_file must be a file name; use paths.output_dir for the directory")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Enabled && strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store.path must be set when store.enabled is true (or set ARTALIGN_DB)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
