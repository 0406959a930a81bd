package config

import (
	"path/filepath"

	"artalign/internal/bleu"
	"artalign/internal/classify"
)

const (
	defaultOutputDir      = "."
	defaultWindowSize     = 500
	defaultAlignmentsFile = "alignments.xml"
	defaultSourceLanguage = "de"
	defaultTargetLanguage = "fr"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	policy := classify.DefaultPolicy()
	dataDir := defaultDataDir()
	return Config{
		Paths: Paths{
			LogDir:    filepath.Join(dataDir, "logs"),
			OutputDir: defaultOutputDir,
		},
		Align: Align{
			WindowSize:       defaultWindowSize,
			LengthRatioMin:   bleu.DefaultLengthRatioMin,
			PlaceholderScore: bleu.DefaultPlaceholder,
			NGrams:           bleu.DefaultNGrams,
		},
		Classify: Classify{
			ParallelBLEU:      policy.ParallelBLEU,
			NumberOverlapMin:  policy.NumberOverlapMin,
			SparseNumberLimit: policy.SparseNumberLimit,
			NeutralRatio:      policy.NeutralRatio,
			LengthWeight:      policy.LengthWeight,
			NumberWeight:      policy.NumberWeight,
			CompositeMin:      policy.CompositeMin,
			ComparableMin:     policy.ComparableMin,
		},
		Languages: Languages{
			Source: defaultSourceLanguage,
			Target: defaultTargetLanguage,
		},
		Output: Output{
			AlignmentsFile: defaultAlignmentsFile,
		},
		Store: Store{
			Path: filepath.Join(dataDir, "runs.db"),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
