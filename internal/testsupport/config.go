package testsupport

import (
	"path/filepath"
	"testing"

	"artalign/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The run history store is enabled and lives under the same directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.OutputDir = filepath.Join(base, "out")
	cfgVal.Store.Enabled = true
	cfgVal.Store.Path = filepath.Join(base, "runs.db")
	cfgVal.Align.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithWindowSize overrides the batch window size.
func WithWindowSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Align.WindowSize = size
	}
}

// WithMergeComparable writes comparable links into the main alignments file.
func WithMergeComparable() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.MergeComparable = true
	}
}

// WithoutStore disables run history.
func WithoutStore() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Enabled = false
	}
}

// WithMetricsTextfile enables the metrics export under the base directory.
func WithMetricsTextfile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metrics.Textfile = filepath.Join(b.baseDir, "metrics", "artalign.prom")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
