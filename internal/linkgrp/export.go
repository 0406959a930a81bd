package linkgrp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrShortSourcePath is returned when a source path is too shallow to carry
// the year directory the translation layout is keyed on.
var ErrShortSourcePath = errors.New("source path has fewer than four components")

// TranslationRow pairs an aligned source/target with the translated source file.
type TranslationRow struct {
	Source      string
	Target      string
	Translation string
}

// TranslationRows maps every link to its translation under transDir. Source
// paths look like data/FedGazDe/1849/07/07/10055445.txt; the fourth component
// from the end is the year, so the translation is transDir/1849/10055445.txt.
// A source linked more than once keeps its first position and its last target.
func TranslationRows(links []Link, transDir string) ([]TranslationRow, error) {
	transDir = strings.TrimRight(transDir, "/")
	index := make(map[string]int, len(links))
	rows := make([]TranslationRow, 0, len(links))
	for _, link := range links {
		src, trg := link.Source(), link.Target()
		parts := strings.Split(src, "/")
		if len(parts) < 4 {
			return nil, fmt.Errorf("%w: %q", ErrShortSourcePath, src)
		}
		row := TranslationRow{
			Source:      src,
			Target:      trg,
			Translation: strings.Join([]string{transDir, parts[len(parts)-4], path.Base(src)}, "/"),
		}
		if i, ok := index[src]; ok {
			rows[i] = row
			continue
		}
		index[src] = len(rows)
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteTranslationTSV writes rows as tab-separated source, target and
// translation paths without a header.
func WriteTranslationTSV(w io.Writer, rows []TranslationRow) error {
	cw := newTSVWriter(w)
	for _, row := range rows {
		if err := cw.Write([]string{row.Source, row.Target, row.Translation}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newTSVWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}
