package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"artalign/internal/config"
	"artalign/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx), newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration with the default thresholds",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				switch _, statErr := os.Stat(target); {
				case statErr == nil:
					return fmt.Errorf("%s exists; pass --overwrite to replace it", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("inspect %s: %w", target, statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			defaults := config.Default()
			printSettings(out, "Default alignment settings", &defaults)
			fmt.Fprintln(out, "Set [languages] source and target to match your corpora before aligning.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Where to write the configuration (default ~/.config/artalign/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func initTarget(raw string) (string, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", raw, err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and print the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			source := fmt.Sprintf("Config path: %s", path)
			if !exists {
				source += " (not found, defaults used)"
			}
			fmt.Fprintln(out, source)
			fmt.Fprintf(out, "Languages:   %s -> %s\n",
				language.DisplayName(cfg.Languages.Source), language.DisplayName(cfg.Languages.Target))
			fmt.Fprintf(out, "Alignments:  %s\n", cfg.AlignmentsPath())
			if !cfg.Output.MergeComparable {
				fmt.Fprintf(out, "Comparable:  %s\n", cfg.ComparablePath())
			}
			if cfg.Store.Enabled {
				fmt.Fprintf(out, "Run history: %s\n", cfg.Store.Path)
			}
			printSettings(out, "Effective alignment settings", cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

// printSettings renders the [align] and [classify] values of cfg.
func printSettings(w io.Writer, title string, cfg *config.Config) {
	fmt.Fprintln(w, renderTable(tableSpec{
		Title:   title,
		Headers: []string{"Section", "Key", "Value"},
		Rows:    settingsRows(cfg),
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight},
	}))
}

func settingsRows(cfg *config.Config) [][]string {
	a, c := cfg.Align, cfg.Classify
	workers := strconv.Itoa(a.Workers)
	if a.Workers == 0 {
		workers = fmt.Sprintf("auto (%d)", runtime.NumCPU())
	}
	return [][]string{
		{"align", "window_size", strconv.Itoa(a.WindowSize)},
		{"align", "workers", workers},
		{"align", "length_ratio_min", formatSetting(a.LengthRatioMin)},
		{"align", "placeholder_score", formatSetting(a.PlaceholderScore)},
		{"align", "ngrams", strconv.Itoa(a.NGrams)},
		{"classify", "parallel_bleu", formatSetting(c.ParallelBLEU)},
		{"classify", "number_overlap_min", formatSetting(c.NumberOverlapMin)},
		{"classify", "sparse_number_limit", strconv.Itoa(c.SparseNumberLimit)},
		{"classify", "neutral_ratio", formatSetting(c.NeutralRatio)},
		{"classify", "length_weight", formatSetting(c.LengthWeight)},
		{"classify", "number_weight", formatSetting(c.NumberWeight)},
		{"classify", "composite_min", formatSetting(c.CompositeMin)},
		{"classify", "comparable_min", formatSetting(c.ComparableMin)},
	}
}

func formatSetting(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
