package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"artalign/internal/classify"
	"artalign/internal/stats"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(value, color string, enabled bool) string {
	if !enabled || color == "" {
		return value
	}
	return color + value + ansiReset
}

func labelColor(label classify.Label) string {
	switch label {
	case classify.LabelParallel:
		return ansiGreen
	case classify.LabelComparable:
		return ansiYellow
	default:
		return ""
	}
}

// countPercent renders "12 (34%)".
func countPercent(count, pct int) string {
	return fmt.Sprintf("%d (%d%%)", count, pct)
}

// renderBookStats renders the statistics block of every book plus a total.
func renderBookStats(books []stats.Book, color bool) string {
	rows := make([][]string, 0, len(books))
	var total stats.Book
	for _, b := range books {
		rows = append(rows, bookStatsRow(b.Name, b, color))
		total.Add(b)
	}
	spec := tableSpec{
		Headers: []string{"Book", "Candidates", "Parallel", "Comparable", "Source", "Target", "Unaligned src", "Unaligned trg", "Duplicates"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	}
	if len(books) > 1 {
		spec.Footer = bookStatsRow("Total", total, false)
	}
	return renderTable(spec)
}

func bookStatsRow(name string, b stats.Book, color bool) []string {
	return []string{
		name,
		strconv.Itoa(b.Candidates),
		colorize(countPercent(b.Parallel, b.ParallelPercent()), labelColor(classify.LabelParallel), color),
		colorize(countPercent(b.Comparable, b.ComparablePercent()), labelColor(classify.LabelComparable), color),
		strconv.Itoa(b.SourceArticles),
		strconv.Itoa(b.TargetArticles),
		countPercent(b.UnalignedSource, b.UnalignedSourcePercent()),
		countPercent(b.UnalignedTarget, b.UnalignedTargetPercent()),
		strconv.Itoa(b.Dropped),
	}
}
