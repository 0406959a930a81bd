package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"artalign/internal/article"
	"artalign/internal/batch"
	"artalign/internal/bleu"
	"artalign/internal/classify"
	"artalign/internal/config"
	"artalign/internal/fileutil"
	"artalign/internal/language"
	"artalign/internal/linkgrp"
	"artalign/internal/logging"
	"artalign/internal/metrics"
	"artalign/internal/stats"
	"artalign/internal/store"
)

type alignRequest struct {
	SourcePath      string
	TargetPath      string
	TranslationPath string
}

type alignSummary struct {
	RunID          string       `json:"run_id"`
	Books          []stats.Book `json:"books"`
	Total          stats.Book   `json:"total"`
	AlignmentsFile string       `json:"alignments_file"`
	ComparableFile string       `json:"comparable_file"`
	JSONLFile      string       `json:"jsonl_file,omitempty"`
	MetricsFile    string       `json:"metrics_file,omitempty"`
	Stored         bool         `json:"stored"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
}

// jsonlRecord is one line of the JSON lines export.
type jsonlRecord struct {
	RunID      string `json:"run_id"`
	Book       string `json:"book"`
	TargetBook string `json:"target_book"`
	batch.Alignment
}

// runAlign executes one alignment run: read the three corpora, align every
// book, append link groups, then record history and metrics.
func runAlign(ctx context.Context, cfg *config.Config, logger *slog.Logger, req alignRequest) (summary *alignSummary, err error) {
	started := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "align"))

	jobs, err := loadJobs(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info("alignment run started",
		logging.Int("books", len(jobs)),
		logging.String("source", req.SourcePath),
		logging.String("target", req.TargetPath),
		logging.String("translation", req.TranslationPath),
	)

	var history *store.Store
	if cfg.Store.Enabled {
		history, err = store.Open(cfg)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		defer history.Close()
		if _, err := history.BeginRun(ctx, store.Run{
			ID:              runID,
			StartedAt:       started,
			SourcePath:      req.SourcePath,
			TargetPath:      req.TargetPath,
			TranslationPath: req.TranslationPath,
			SourceLang:      cfg.Languages.Source,
			TargetLang:      cfg.Languages.Target,
			WindowSize:      cfg.Align.WindowSize,
		}); err != nil {
			return nil, err
		}
		defer func() {
			status := store.StatusCompleted
			switch {
			case errors.Is(err, context.Canceled):
				status = store.StatusCancelled
			case err != nil:
				status = store.StatusFailed
			}
			if finishErr := history.FinishRun(context.WithoutCancel(ctx), runID, status, err); finishErr != nil {
				logging.WarnWithContext(log, "run history not finalized", "store_finish_failed",
					logging.Error(finishErr),
					logging.String(logging.FieldErrorHint, "inspect the database with `artalign runs show`"),
				)
			}
		}()
	}

	recorder := metrics.New()
	controller := batch.New(batch.Options{
		WindowSize: cfg.Align.WindowSize,
		Workers:    cfg.Align.Workers,
		Scorer: bleu.Options{
			NGrams:         cfg.Align.NGrams,
			LengthRatioMin: cfg.Align.LengthRatioMin,
			Placeholder:    cfg.Align.PlaceholderScore,
		},
		Policy:   cfg.ClassifyPolicy(),
		Logger:   logger,
		Observer: recorder,
	})
	results, err := controller.RunBooks(ctx, jobs)
	if err != nil {
		return nil, err
	}

	summary = &alignSummary{
		RunID:          runID,
		AlignmentsFile: cfg.AlignmentsPath(),
		ComparableFile: cfg.ComparablePath(),
		JSONLFile:      cfg.JSONLPath(),
		Stored:         history != nil,
	}
	if err := writeLinkGroups(ctx, cfg, results); err != nil {
		return nil, err
	}
	if summary.JSONLFile != "" {
		if err := appendJSONL(ctx, summary.JSONLFile, runID, results); err != nil {
			return nil, err
		}
	}

	for i, res := range results {
		book := stats.FromResult(res)
		summary.Books = append(summary.Books, book)
		summary.Total.Add(book)
		recorder.BookDone()
		if history != nil {
			if err := history.RecordBook(ctx, runID, i, book, res.Result.Alignments); err != nil {
				return nil, err
			}
		}
	}

	if path := cfg.Metrics.Textfile; path != "" {
		recorder.RunFinished(time.Now())
		if err := recorder.WriteTextfile(path); err != nil {
			logging.WarnWithContext(log, "metrics textfile not written", "metrics_write_failed",
				logging.Error(err),
				logging.String("path", path),
			)
		} else {
			summary.MetricsFile = path
		}
	}

	elapsed := time.Since(started)
	summary.ElapsedSeconds = elapsed.Seconds()
	log.Info("alignment run complete",
		logging.Int("books", len(results)),
		logging.Int("parallel", summary.Total.Parallel),
		logging.Int("comparable", summary.Total.Comparable),
		logging.Int("candidates", summary.Total.Candidates),
		logging.Duration("elapsed", elapsed),
	)
	return summary, nil
}

// loadJobs reads the three corpora concurrently and pairs their books.
func loadJobs(ctx context.Context, req alignRequest) ([]batch.Job, error) {
	paths := [3]string{req.SourcePath, req.TranslationPath, req.TargetPath}
	var books [3][]article.Book
	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			b, err := article.FileSource{Path: path}.Books()
			if err != nil {
				return err
			}
			books[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch.PairBooks(books[0], books[1], books[2])
}

// writeLinkGroups appends one link group per book. Comparable links share
// the alignments file when merge_comparable is set.
func writeLinkGroups(ctx context.Context, cfg *config.Config, results []batch.BookResult) error {
	lang := language.Pair(cfg.Languages.Source, cfg.Languages.Target)
	build := func(keep func(classify.Label) bool) []linkgrp.Book {
		books := make([]linkgrp.Book, 0, len(results))
		for _, res := range results {
			books = append(books, linkgrp.NewBook(res.Job.Name, res.Job.TargetName, lang, res.Result.Alignments, keep))
		}
		return books
	}

	if cfg.Output.MergeComparable {
		return linkgrp.AppendBooks(ctx, cfg.AlignmentsPath(), build(nil)...)
	}
	if err := linkgrp.AppendBooks(ctx, cfg.AlignmentsPath(), build(linkgrp.Only(classify.LabelParallel))...); err != nil {
		return err
	}
	return linkgrp.AppendBooks(ctx, cfg.ComparablePath(), build(linkgrp.Only(classify.LabelComparable))...)
}

func appendJSONL(ctx context.Context, path, runID string, results []batch.BookResult) error {
	return fileutil.WithLock(ctx, path, func() error {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open jsonl export: %w", err)
		}
		enc := json.NewEncoder(f)
		for _, res := range results {
			for _, a := range res.Result.Alignments {
				rec := jsonlRecord{RunID: runID, Book: res.Job.Name, TargetBook: res.Job.TargetName, Alignment: a}
				if err := enc.Encode(rec); err != nil {
					_ = f.Close()
					return fmt.Errorf("encode jsonl record: %w", err)
				}
			}
		}
		return f.Close()
	})
}
