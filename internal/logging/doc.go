// Package logging assembles structured slog loggers and formatting helpers used
// across artalign.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch code can tag log lines
// with the run identifier, the book being aligned and the batch window. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
