package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"artalign/internal/classify"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	OutputDir string `toml:"output_dir"`
}

// Align contains the scorer and batching knobs.
type Align struct {
	WindowSize       int     `toml:"window_size"`
	Workers          int     `toml:"workers"`
	LengthRatioMin   float64 `toml:"length_ratio_min"`
	PlaceholderScore float64 `toml:"placeholder_score"`
	NGrams           int     `toml:"ngrams"`
}

// Classify contains the cascade thresholds.
type Classify struct {
	ParallelBLEU      float64 `toml:"parallel_bleu"`
	NumberOverlapMin  float64 `toml:"number_overlap_min"`
	SparseNumberLimit int     `toml:"sparse_number_limit"`
	NeutralRatio      float64 `toml:"neutral_ratio"`
	LengthWeight      float64 `toml:"length_weight"`
	NumberWeight      float64 `toml:"number_weight"`
	CompositeMin      float64 `toml:"composite_min"`
	ComparableMin     float64 `toml:"comparable_min"`
}

// Languages names the source and target languages written to link groups.
type Languages struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// Output controls where alignment results are written.
type Output struct {
	AlignmentsFile  string `toml:"alignments_file"`
	MergeComparable bool   `toml:"merge_comparable"`
	JSONLFile       string `toml:"jsonl_file"`
}

// Store contains configuration for the run history database.
type Store struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Metrics contains configuration for the Prometheus textfile export.
type Metrics struct {
	Textfile string `toml:"textfile"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for artalign.
//
// Configuration sections by subsystem:
//   - Paths: log and output directories
//   - Align: window size, parallelism and BLEU scorer settings
//   - Classify: thresholds of the classification cascade
//   - Languages: language codes recorded in link groups
//   - Output: alignment file naming
//   - Store: SQLite run history
//   - Metrics: Prometheus textfile export
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Align     Align     `toml:"align"`
	Classify  Classify  `toml:"classify"`
	Languages Languages `toml:"languages"`
	Output    Output    `toml:"output"`
	Store     Store     `toml:"store"`
	Metrics   Metrics   `toml:"metrics"`
	Logging   Logging   `toml:"logging"`
}

const (
	defaultConfigPath = "~/.config/artalign/config.toml"
	projectConfigName = "artalign.toml"
	envLogLevel       = "ARTALIGN_LOG_LEVEL"
	envStorePath      = "ARTALIGN_DB"
	comparableSuffix  = "_comparable"
	dirPerms          = 0o755
)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and output directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.OutputDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ClassifyPolicy converts the [classify] section into a cascade policy.
func (c *Config) ClassifyPolicy() classify.Policy {
	return classify.Policy{
		ParallelBLEU:      c.Classify.ParallelBLEU,
		NumberOverlapMin:  c.Classify.NumberOverlapMin,
		SparseNumberLimit: c.Classify.SparseNumberLimit,
		NeutralRatio:      c.Classify.NeutralRatio,
		LengthWeight:      c.Classify.LengthWeight,
		NumberWeight:      c.Classify.NumberWeight,
		CompositeMin:      c.Classify.CompositeMin,
		ComparableMin:     c.Classify.ComparableMin,
	}
}

// AlignmentsPath returns the file parallel links are appended to.
func (c *Config) AlignmentsPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Output.AlignmentsFile)
}

// ComparablePath returns the file comparable links are appended to. It is the
// alignments file itself when merge_comparable is set.
func (c *Config) ComparablePath() string {
	if c.Output.MergeComparable {
		return c.AlignmentsPath()
	}
	name := c.Output.AlignmentsFile
	ext := filepath.Ext(name)
	return filepath.Join(c.Paths.OutputDir, strings.TrimSuffix(name, ext)+comparableSuffix+ext)
}

// JSONLPath returns the JSON lines export path, or "" when disabled.
func (c *Config) JSONLPath() string {
	name := strings.TrimSpace(c.Output.JSONLFile)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.OutputDir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "artalign")
	}
	return "~/.local/share/artalign"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
