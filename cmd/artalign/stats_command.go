package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"artalign/internal/classify"
	"artalign/internal/config"
	"artalign/internal/linkgrp"
)

// linkStats summarizes the links of one link group.
type linkStats struct {
	File       string         `json:"file"`
	Book       string         `json:"book"`
	Lang       string         `json:"lang"`
	Links      int            `json:"links"`
	Parallel   int            `json:"parallel"`
	Comparable int            `json:"comparable"`
	Methods    map[string]int `json:"methods"`
	MeanScore  float64        `json:"mean_score"`
}

func summarizeLinks(file string, book linkgrp.Book) linkStats {
	s := linkStats{
		File:    file,
		Book:    book.Header.Title(),
		Lang:    book.Group.Lang,
		Links:   len(book.Group.Links),
		Methods: make(map[string]int),
	}
	var total float64
	for _, l := range book.Group.Links {
		switch classify.Label(l.Label) {
		case classify.LabelParallel:
			s.Parallel++
		case classify.LabelComparable:
			s.Comparable++
		}
		if l.Method != "" {
			s.Methods[l.Method]++
		}
		total += l.Score
	}
	if s.Links > 0 {
		s.MeanScore = total / float64(s.Links)
	}
	return s
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats [FILE...]",
		Short: "Summarize the links of alignment files",
		Long:  "Stats reads link group files (default: the configured alignments and comparable files) and reports per-book link counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				files = []string{cfg.AlignmentsPath()}
				if cfg.ComparablePath() != cfg.AlignmentsPath() {
					files = append(files, cfg.ComparablePath())
				}
			}

			var summaries []linkStats
			for _, file := range files {
				path, err := config.ExpandPath(file)
				if err != nil {
					return err
				}
				doc, err := linkgrp.Load(path)
				if err != nil {
					return err
				}
				for _, book := range doc.Books() {
					summaries = append(summaries, summarizeLinks(path, book))
				}
			}

			if jsonOutput {
				if summaries == nil {
					summaries = []linkStats{}
				}
				return writeJSON(cmd, summaries)
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No link groups found")
				return nil
			}
			fmt.Fprintln(out, renderLinkStats(summaries))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func renderLinkStats(summaries []linkStats) string {
	rows := make([][]string, 0, len(summaries))
	var links, parallel, comparable int
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Book,
			s.Lang,
			strconv.Itoa(s.Links),
			strconv.Itoa(s.Parallel),
			strconv.Itoa(s.Comparable),
			strconv.Itoa(s.Methods[string(classify.MethodBLEU)]),
			strconv.Itoa(s.Methods[string(classify.MethodNumberLength)]),
			strconv.Itoa(s.Methods[string(classify.MethodTFIDF)]),
			strconv.FormatFloat(s.MeanScore, 'f', 3, 64),
		})
		links += s.Links
		parallel += s.Parallel
		comparable += s.Comparable
	}
	return renderTable(tableSpec{
		Headers: []string{"Book", "Lang", "Links", "Parallel", "Comparable", "BLEU", "Numbers+length", "TF-IDF", "Mean BLEU"},
		Rows:    rows,
		Footer:  []string{"Total", "", strconv.Itoa(links), strconv.Itoa(parallel), strconv.Itoa(comparable)},
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	})
}
