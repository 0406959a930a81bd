package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"artalign/internal/batch"
	"artalign/internal/classify"
	"artalign/internal/stats"
)

// ErrAmbiguousRunID is returned when a run id prefix matches several runs.
var ErrAmbiguousRunID = errors.New("run id prefix is ambiguous")

// BeginRun records a new running run. ID and StartedAt are assigned when empty.
func (s *Store) BeginRun(ctx context.Context, run Run) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = StatusRunning
	_, err := s.exec(ctx,
		`INSERT INTO runs (
            id, status, started_at, source_path, target_path, translation_path,
            source_lang, target_lang, window_size
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Status,
		formatTime(run.StartedAt),
		run.SourcePath,
		run.TargetPath,
		run.TranslationPath,
		nullableString(run.SourceLang),
		nullableString(run.TargetLang),
		run.WindowSize,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &run, nil
}

// RecordBook stores the statistics and alignments of one book and updates
// the run totals. position orders books within the run.
func (s *Store) RecordBook(ctx context.Context, runID string, position int, book stats.Book, alignments []batch.Alignment) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_books (
                run_id, position, name, target_name, candidates, parallel, comparable,
                source_articles, target_articles, unaligned_source, unaligned_target, dropped
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, position, book.Name, nullableString(book.TargetName),
			book.Candidates, book.Parallel, book.Comparable,
			book.SourceArticles, book.TargetArticles,
			book.UnalignedSource, book.UnalignedTarget, book.Dropped,
		)
		if err != nil {
			return fmt.Errorf("insert book %q: %w", book.Name, err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO alignments (
                run_id, book_position, batch, source_index, target_index, source_id, target_id,
                label, method, bleu, numbers, length, weighted, tfidf
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare alignment insert: %w", err)
		}
		defer stmt.Close()
		for _, a := range alignments {
			if _, err := stmt.ExecContext(ctx,
				runID, position, a.Batch, a.SourceIndex, a.TargetIndex, a.SourceID, a.TargetID,
				a.Label, a.Method, a.Scores.BLEU, a.Scores.Numbers, a.Scores.Length,
				a.Scores.Weighted, a.Scores.TFIDF,
			); err != nil {
				return fmt.Errorf("insert alignment %s;%s: %w", a.SourceID, a.TargetID, err)
			}
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE runs SET books = books + 1, parallel = parallel + ?, comparable = comparable + ?
             WHERE id = ?`,
			book.Parallel, book.Comparable, runID,
		)
		if err != nil {
			return fmt.Errorf("update run totals: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("run %s not found", runID)
		}
		return nil
	})
}

// FinishRun marks a run terminal. runErr, when non-nil, is stored as the
// failure message.
func (s *Store) FinishRun(ctx context.Context, runID string, status Status, runErr error) error {
	var message string
	if runErr != nil {
		message = runErr.Error()
	}
	_, err := s.exec(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, error_message = ? WHERE id = ?`,
		status, formatTime(time.Now()), nullableString(message), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// GetRun returns the run whose id equals or starts with idOrPrefix. It
// returns nil when nothing matches.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, errors.New("run id is empty")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC, started_at DESC, rowid DESC LIMIT 2`,
		idOrPrefix, stripLikeWildcards(idOrPrefix)+"%", idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	switch {
	case len(runs) == 0:
		return nil, nil
	case runs[0].ID == idOrPrefix, len(runs) == 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousRunID, idOrPrefix)
	}
}

// ListRuns returns the most recent runs first. limit <= 0 lists all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Books returns the statistics block of every book of a run in order.
func (s *Store) Books(ctx context.Context, runID string) ([]stats.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, target_name, candidates, parallel, comparable, source_articles,
                target_articles, unaligned_source, unaligned_target, dropped
         FROM run_books WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run books: %w", err)
	}
	defer rows.Close()

	var books []stats.Book
	for rows.Next() {
		var (
			b          stats.Book
			targetName sql.NullString
		)
		if err := rows.Scan(&b.Name, &targetName, &b.Candidates, &b.Parallel, &b.Comparable,
			&b.SourceArticles, &b.TargetArticles, &b.UnalignedSource, &b.UnalignedTarget, &b.Dropped); err != nil {
			return nil, fmt.Errorf("scan run book: %w", err)
		}
		b.TargetName = targetName.String
		books = append(books, b)
	}
	return books, rows.Err()
}

// Alignments returns the stored alignments of one book of a run, ordered by
// source then target index.
func (s *Store) Alignments(ctx context.Context, runID string, position int) ([]batch.Alignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT batch, source_index, target_index, source_id, target_id, label, method,
                bleu, numbers, length, weighted, tfidf
         FROM alignments WHERE run_id = ? AND book_position = ?
         ORDER BY source_index, target_index`,
		runID, position,
	)
	if err != nil {
		return nil, fmt.Errorf("list alignments: %w", err)
	}
	defer rows.Close()

	var out []batch.Alignment
	for rows.Next() {
		var (
			a      batch.Alignment
			label  string
			method string
		)
		if err := rows.Scan(&a.Batch, &a.SourceIndex, &a.TargetIndex, &a.SourceID, &a.TargetID,
			&label, &method, &a.Scores.BLEU, &a.Scores.Numbers, &a.Scores.Length,
			&a.Scores.Weighted, &a.Scores.TFIDF); err != nil {
			return nil, fmt.Errorf("scan alignment: %w", err)
		}
		a.Label = classify.Label(label)
		a.Method = classify.Method(method)
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteRun removes a run with its books and alignments.
func (s *Store) DeleteRun(ctx context.Context, runID string) (bool, error) {
	res, err := s.exec(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		status     string
		startedAt  sql.NullString
		finishedAt sql.NullString
		sourceLang sql.NullString
		targetLang sql.NullString
		errMessage sql.NullString
	)
	if err := row.Scan(
		&run.ID, &status, &startedAt, &finishedAt,
		&run.SourcePath, &run.TargetPath, &run.TranslationPath,
		&sourceLang, &targetLang, &run.WindowSize,
		&run.Books, &run.Parallel, &run.Comparable, &errMessage,
	); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	run.SourceLang = sourceLang.String
	run.TargetLang = targetLang.String
	run.ErrorMessage = errMessage.String
	return &run, nil
}

func stripLikeWildcards(value string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(value)
}
