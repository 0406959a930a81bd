package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for alignment run identifiers.
	FieldRunID = "run_id"
	// FieldBook is the standardized structured logging key for the book being aligned.
	FieldBook = "book"
	// FieldBatch is the standardized structured logging key for the 1-based batch number.
	FieldBatch = "batch"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint is the next step suggested to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	runIDKey contextKey = iota
	bookKey
	batchKey
)

// WithRunID stores the run identifier in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// WithBook stores the book name in ctx.
func WithBook(ctx context.Context, book string) context.Context {
	return context.WithValue(ctx, bookKey, book)
}

// WithBatch stores the 1-based batch number in ctx.
func WithBatch(ctx context.Context, batch int) context.Context {
	return context.WithValue(ctx, batchKey, batch)
}

// RunIDFromContext returns the run identifier stored in ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if book, ok := ctx.Value(bookKey).(string); ok && book != "" {
		fields = append(fields, slog.String(FieldBook, book))
	}
	if batch, ok := ctx.Value(batchKey).(int); ok && batch > 0 {
		fields = append(fields, slog.Int(FieldBatch, batch))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
