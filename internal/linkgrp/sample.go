package linkgrp

import (
	"cmp"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strconv"
)

// EvalPattern selects the files sampled by SampleDir. Comparable link files
// (name_comparable.xml) do not match.
const EvalPattern = "*alignments.xml"

// diffLines is how many lines of each file the generated diff commands show.
const diffLines = 30

// EvalColumns is the header of the evaluation sheet.
var EvalColumns = []string{
	"year", "index", "src", "trg", "method", "score",
	"script_head", "script_tail", "eval_head", "eval_tail", "comment",
}

var yearDir = regexp.MustCompile(`/(\d{4})/`)

// EvalRow is one sampled link prepared for manual judgement. The eval and
// comment columns are left for the annotator.
type EvalRow struct {
	File       string
	Year       string
	Index      int
	Source     string
	Target     string
	Method     string
	Score      float64
	ScriptHead string
	ScriptTail string
}

// SampleLinks draws n distinct links in file order. It reports false when
// the document holds fewer than n links.
func SampleLinks(links []Link, n int, rng *rand.Rand) ([]EvalRow, bool) {
	if n < 0 || n > len(links) {
		return nil, false
	}
	picked := rng.Perm(len(links))[:n]
	sort.Ints(picked)
	rows := make([]EvalRow, 0, n)
	for _, idx := range picked {
		rows = append(rows, evalRow(idx, links[idx]))
	}
	return rows, true
}

// SampleDir samples n links from every file matching EvalPattern in dir. Files
// with fewer than n links are returned in skipped. Rows are ordered by year;
// rows of the same year keep file then link order.
func SampleDir(dir string, n int, rng *rand.Rand) (rows []EvalRow, skipped []string, err error) {
	files, err := filepath.Glob(filepath.Join(dir, EvalPattern))
	if err != nil {
		return nil, nil, fmt.Errorf("list alignment files: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		doc, err := Load(file)
		if err != nil {
			return nil, nil, err
		}
		sampled, ok := SampleLinks(doc.Links(), n, rng)
		if !ok {
			skipped = append(skipped, file)
			continue
		}
		for i := range sampled {
			sampled[i].File = file
		}
		rows = append(rows, sampled...)
	}
	slices.SortStableFunc(rows, func(a, b EvalRow) int { return cmp.Compare(a.Year, b.Year) })
	return rows, skipped, nil
}

// WriteEvalTSV writes the evaluation sheet with its header.
func WriteEvalTSV(w io.Writer, rows []EvalRow) error {
	cw := newTSVWriter(w)
	if err := cw.Write(EvalColumns); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Year, strconv.Itoa(r.Index), r.Source, r.Target, r.Method,
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			r.ScriptHead, r.ScriptTail, "", "", "",
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func evalRow(index int, link Link) EvalRow {
	src, trg := link.Source(), link.Target()
	row := EvalRow{
		Index:      index,
		Source:     src,
		Target:     trg,
		Method:     link.Method,
		Score:      link.Score,
		ScriptHead: diffCommand("head", src, trg),
		ScriptTail: diffCommand("tail", src, trg),
	}
	if m := yearDir.FindStringSubmatch(src); m != nil {
		row.Year = m[1]
	}
	return row
}

func diffCommand(tool, src, trg string) string {
	return fmt.Sprintf("diff -W 200 -y <(%s -n %d %s) <(%s -n %d %s)", tool, diffLines, src, tool, diffLines, trg)
}
