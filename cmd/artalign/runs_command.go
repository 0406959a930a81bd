package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"artalign/internal/batch"
	"artalign/internal/stats"
	"artalign/internal/store"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the alignment run history",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if errors.Is(err, store.ErrDisabled) {
		return errors.New("run history is disabled; set [store] enabled = true in the configuration")
	}
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				runs, err := st.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []*store.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					rows = append(rows, []string{
						shortID(r.ID),
						r.StartedAt.Local().Format("2006-01-02 15:04:05"),
						string(r.Status),
						strconv.Itoa(r.Books),
						strconv.Itoa(r.Parallel),
						strconv.Itoa(r.Comparable),
						formatDuration(r.Duration()),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					Headers: []string{"ID", "Started", "Status", "Books", "Parallel", "Comparable", "Duration"},
					Rows:    rows,
					Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				}))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

type runDetails struct {
	Run        *store.Run                   `json:"run"`
	Books      []stats.Book                 `json:"books"`
	Alignments map[string][]batch.Alignment `json:"alignments,omitempty"`
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var withAlignments bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show one run with its per-book statistics",
		Long:  "Show accepts a full run id or any unambiguous prefix of one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				run, err := st.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				books, err := st.Books(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				details := runDetails{Run: run, Books: books}
				if withAlignments {
					details.Alignments = make(map[string][]batch.Alignment, len(books))
					for i, b := range books {
						alignments, err := st.Alignments(cmd.Context(), run.ID, i)
						if err != nil {
							return err
						}
						details.Alignments[b.Name] = alignments
					}
				}
				if jsonOutput {
					return writeJSON(cmd, details)
				}
				printRunDetails(cmd, details)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&withAlignments, "alignments", false, "Include every stored alignment")
	return cmd
}

func printRunDetails(cmd *cobra.Command, d runDetails) {
	out := cmd.OutOrStdout()
	color := shouldColorize(out)
	r := d.Run
	fmt.Fprintf(out, "Run:          %s\n", r.ID)
	fmt.Fprintf(out, "Status:       %s\n", r.Status)
	fmt.Fprintf(out, "Started:      %s\n", r.StartedAt.Local().Format(time.RFC3339))
	if !r.FinishedAt.IsZero() {
		fmt.Fprintf(out, "Duration:     %s\n", formatDuration(r.Duration()))
	}
	fmt.Fprintf(out, "Source:       %s\n", r.SourcePath)
	fmt.Fprintf(out, "Target:       %s\n", r.TargetPath)
	fmt.Fprintf(out, "Translation:  %s\n", r.TranslationPath)
	if r.SourceLang != "" || r.TargetLang != "" {
		fmt.Fprintf(out, "Languages:    %s -> %s\n", r.SourceLang, r.TargetLang)
	}
	if r.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:        %s\n", r.ErrorMessage)
	}
	if len(d.Books) > 0 {
		fmt.Fprintln(out, renderBookStats(d.Books, color))
	}
	for _, b := range d.Books {
		alignments, ok := d.Alignments[b.Name]
		if !ok {
			continue
		}
		rows := make([][]string, 0, len(alignments))
		for _, a := range alignments {
			rows = append(rows, []string{
				a.SourceID,
				a.TargetID,
				colorize(string(a.Label), labelColor(a.Label), color),
				string(a.Method),
				strconv.FormatFloat(a.Scores.BLEU, 'f', 3, 64),
			})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Title:   b.Name,
			Headers: []string{"Source", "Target", "Label", "Method", "BLEU"},
			Rows:    rows,
			Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		}))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
