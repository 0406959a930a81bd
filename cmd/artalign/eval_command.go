package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"artalign/internal/config"
	"artalign/internal/linkgrp"
)

func newEvalCommand(ctx *commandContext) *cobra.Command {
	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Prepare manual evaluation of alignments",
	}
	evalCmd.AddCommand(newEvalSampleCommand(ctx))
	return evalCmd
}

func newEvalSampleCommand(ctx *commandContext) *cobra.Command {
	var samples int
	var seed uint64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "sample [DIR]",
		Short: "Sample links from every *alignments.xml into an evaluation sheet",
		Long: `Sample draws links at random from every file matching *alignments.xml in
DIR (default: the configured output directory) and writes a TSV sheet sorted
by year. Each row carries diff commands comparing the head and tail of both
articles, plus empty columns for the judgement. Files with fewer links than
requested are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 1 {
				return fmt.Errorf("--samples must be at least 1, got %d", samples)
			}
			var dir string
			if len(args) > 0 {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				dir = expanded
			} else {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				dir = cfg.Paths.OutputDir
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			rows, skipped, err := linkgrp.SampleDir(dir, samples, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
			if err != nil {
				return err
			}
			stderr := cmd.ErrOrStderr()
			for _, file := range skipped {
				fmt.Fprintf(stderr, "Sample size is larger than number of alignments. %s will be skipped\n", file)
			}
			if err := writeOutput(cmd, outputPath, func(w io.Writer) error {
				return linkgrp.WriteEvalTSV(w, rows)
			}); err != nil {
				return err
			}
			if outputPath != "" {
				fmt.Fprintf(stderr, "Evaluation sheet written: %s (%d rows)\n", outputPath, len(rows))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "n", 10, "Links to sample per file")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for reproducible samples")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}
