package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"artalign/internal/config"
)

type alignFlags struct {
	outputDir  string
	alignments string
	comparable bool
	window     int
	workers    int
	jsonl      string
	noStore    bool
	jsonOutput bool
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var flags alignFlags

	cmd := &cobra.Command{
		Use:   "align SOURCE TARGET TRANSLATION",
		Short: "Align the articles of source and target books",
		Long: `Align reads three segmented corpora: the source language books, the
target language books, and the machine translation of the source into the
target language. Books are separated by .EOB lines and articles by .EOA lines;
the first line of every book is its file name.

Parallel links are appended to the alignments file and comparable links to
its _comparable sibling, unless --comparable merges them.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyAlignFlags(cmd, *base, flags)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			req := alignRequest{}
			for i, target := range []*string{&req.SourcePath, &req.TargetPath, &req.TranslationPath} {
				expanded, err := config.ExpandPath(args[i])
				if err != nil {
					return fmt.Errorf("resolve %q: %w", args[i], err)
				}
				*target = expanded
			}

			summary, err := runAlign(cmd.Context(), cfg, logger, req)
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				return writeJSON(cmd, summary)
			}
			printAlignSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for link group files (overrides paths.output_dir)")
	cmd.Flags().StringVar(&flags.alignments, "alignments-file", "", "Name of the alignments file (overrides output.alignments_file)")
	cmd.Flags().BoolVar(&flags.comparable, "comparable", false, "Write comparable links into the alignments file")
	cmd.Flags().IntVar(&flags.window, "window", 0, "Source articles per batch (overrides align.window_size)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Parallel batches or books (overrides align.workers)")
	cmd.Flags().StringVar(&flags.jsonl, "jsonl", "", "Also append alignments as JSON lines to this file")
	cmd.Flags().BoolVar(&flags.noStore, "no-store", false, "Do not record the run in the history database")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

// applyAlignFlags returns a copy of cfg with changed flags applied and
// validated.
func applyAlignFlags(cmd *cobra.Command, cfg config.Config, flags alignFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed
	if changed("output-dir") {
		dir, err := config.ExpandPath(flags.outputDir)
		if err != nil {
			return nil, fmt.Errorf("resolve output dir: %w", err)
		}
		cfg.Paths.OutputDir = dir
	}
	if changed("alignments-file") {
		cfg.Output.AlignmentsFile = strings.TrimSpace(flags.alignments)
	}
	if changed("comparable") {
		cfg.Output.MergeComparable = flags.comparable
	}
	if changed("window") {
		cfg.Align.WindowSize = flags.window
	}
	if changed("workers") {
		cfg.Align.Workers = flags.workers
	}
	if changed("jsonl") {
		path, err := config.ExpandPath(flags.jsonl)
		if err != nil {
			return nil, fmt.Errorf("resolve jsonl path: %w", err)
		}
		cfg.Output.JSONLFile = path
	}
	if flags.noStore {
		cfg.Store.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func printAlignSummary(cmd *cobra.Command, s *alignSummary) {
	out := cmd.OutOrStdout()
	color := shouldColorize(out)
	fmt.Fprintln(out, renderBookStats(s.Books, color))
	fmt.Fprintf(out, "Run:         %s\n", s.RunID)
	fmt.Fprintf(out, "Alignments:  %s\n", s.AlignmentsFile)
	if s.ComparableFile != s.AlignmentsFile {
		fmt.Fprintf(out, "Comparable:  %s\n", s.ComparableFile)
	}
	if s.JSONLFile != "" {
		fmt.Fprintf(out, "JSON lines:  %s\n", filepath.Clean(s.JSONLFile))
	}
	if s.MetricsFile != "" {
		fmt.Fprintf(out, "Metrics:     %s\n", s.MetricsFile)
	}
	if !s.Stored {
		fmt.Fprintln(out, colorize("Run history disabled; this run was not recorded", ansiYellow, color))
	}
}
