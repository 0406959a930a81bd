package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"artalign/internal/config"
	"artalign/internal/fileutil"
	"artalign/internal/linkgrp"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export alignment files to other formats",
	}
	exportCmd.AddCommand(newExportTSVCommand(ctx))
	return exportCmd
}

func newExportTSVCommand(ctx *commandContext) *cobra.Command {
	var transDir string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "tsv [ALIGNMENTS]",
		Short: "Write source, target and translation paths of every link as TSV",
		Long: `Export every link as "source<TAB>target<TAB>translation". The translation
path is <trans-dir>/<year>/<source file name>, where the year is the fourth
path component from the end of the source path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(transDir) == "" {
				return errors.New("--trans-dir is required")
			}
			input, err := inputOrDefault(ctx, args)
			if err != nil {
				return err
			}
			doc, err := linkgrp.Load(input)
			if err != nil {
				return err
			}
			rows, err := linkgrp.TranslationRows(doc.Links(), transDir)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, outputPath, func(w io.Writer) error {
				return linkgrp.WriteTranslationTSV(w, rows)
			}); err != nil {
				return err
			}
			if outputPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(rows), outputPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&transDir, "trans-dir", "t", "", "Directory holding the translated source files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// inputOrDefault returns the expanded first argument, or the configured
// alignments file.
func inputOrDefault(ctx *commandContext, args []string) (string, error) {
	if len(args) > 0 {
		return config.ExpandPath(args[0])
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.AlignmentsPath(), nil
}

// writeOutput renders to path atomically, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if strings.TrimSpace(path) == "" {
		return render(cmd.OutOrStdout())
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	var buf strings.Builder
	if err := render(&buf); err != nil {
		return err
	}
	return fileutil.WriteAtomic(expanded, []byte(buf.String()), os.FileMode(0o644))
}
