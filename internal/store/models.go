package store

import "time"

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Run is one recorded `align` invocation.
type Run struct {
	ID              string    `json:"id"`
	Status          Status    `json:"status"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	SourcePath      string    `json:"source_path"`
	TargetPath      string    `json:"target_path"`
	TranslationPath string    `json:"translation_path"`
	SourceLang      string    `json:"source_lang,omitempty"`
	TargetLang      string    `json:"target_lang,omitempty"`
	WindowSize      int       `json:"window_size"`
	Books           int       `json:"books"`
	Parallel        int       `json:"parallel"`
	Comparable      int       `json:"comparable"`
	ErrorMessage    string    `json:"error,omitempty"`
}

// Duration returns the wall time of a finished run, or zero while running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

const runColumns = `id, status, started_at, finished_at, source_path, target_path,
    translation_path, source_lang, target_lang, window_size, books, parallel,
    comparable, error_message`

type rowScanner interface {
	Scan(dest ...any) error
}
