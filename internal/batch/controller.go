package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"artalign/internal/align"
	"artalign/internal/bleu"
	"artalign/internal/classify"
	"artalign/internal/logging"
)

// DefaultWindowSize is the number of source articles aligned per batch.
const DefaultWindowSize = 500

// Observer receives per-batch outcomes. Implementations must be safe for
// concurrent use because batches run in parallel.
type Observer interface {
	BatchDone(window Window, candidates int, elapsed time.Duration)
	Classified(decision classify.Decision)
	Deduplicated(dropped int)
}

type nopObserver struct{}

func (nopObserver) BatchDone(Window, int, time.Duration) {}
func (nopObserver) Classified(classify.Decision)         {}
func (nopObserver) Deduplicated(int)                     {}

// Options configures a Controller.
type Options struct {
	WindowSize int
	// Workers bounds the number of batches aligned at once; 0 means one per CPU.
	Workers  int
	Scorer   bleu.Options
	Policy   classify.Policy
	Logger   *slog.Logger
	Observer Observer
}

// Result is the outcome of one Run.
type Result struct {
	Alignments []Alignment
	// Candidates counts the pairs proposed by the aligner across all batches.
	Candidates int
	// Dropped counts alignments removed by deduplication.
	Dropped int
	Batches int
}

// Controller windows the source collection and aligns each window against
// the full target collection.
type Controller struct {
	opts     Options
	logger   *slog.Logger
	observer Observer
}

// New constructs a Controller, filling unset options with defaults.
func New(opts Options) *Controller {
	if opts.WindowSize <= 0 {
		opts.WindowSize = DefaultWindowSize
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	return &Controller{
		opts:     opts,
		logger:   logging.NewComponentLogger(opts.Logger, "batch"),
		observer: observer,
	}
}

// Run aligns in and returns the deduplicated labeled alignments. The context
// is checked before each batch starts; a batch in progress runs to completion.
func (c *Controller) Run(ctx context.Context, in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %d source, %d translation", err, len(in.Source), len(in.Translation))
	}
	windows := Windows(len(in.Translation), c.opts.WindowSize)
	if len(windows) == 0 || len(in.Target) == 0 {
		logging.WithContext(ctx, c.logger).Debug("nothing to align",
			logging.Int("source_articles", len(in.Source)),
			logging.Int("target_articles", len(in.Target)),
		)
		return Result{Batches: len(windows)}, nil
	}

	outputs := make([]batchOutput, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, w := range windows {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = c.runBatch(logging.WithBatch(gctx, w.Index), w, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("align batches: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("align batches: %w", err)
	}

	res := Result{Batches: len(windows)}
	var all []Alignment
	for _, out := range outputs {
		res.Candidates += out.candidates
		all = append(all, out.alignments...)
	}
	res.Alignments, res.Dropped = Deduplicate(all)
	c.observer.Deduplicated(res.Dropped)

	logging.WithContext(ctx, c.logger).Info("alignment finished",
		logging.Int("batches", res.Batches),
		logging.Int("candidates", res.Candidates),
		logging.Int("kept", len(res.Alignments)),
		logging.Int("duplicates_dropped", res.Dropped),
	)
	return res, nil
}

type batchOutput struct {
	candidates int
	alignments []Alignment
}

func (c *Controller) runBatch(ctx context.Context, w Window, in Input) batchOutput {
	started := time.Now()
	logger := logging.WithContext(ctx, c.logger)

	translations := in.Translation.Slice(w.Lo, w.Hi)
	sources := in.Source.Slice(w.Lo, w.Hi)
	scorer := bleu.NewPairScorer(translations, in.Target, c.opts.Scorer)

	rows, cols := scorer.Rows(), scorer.Cols()
	logger.Debug("scoring grid prepared",
		logging.Int("translations", rows),
		logging.Int("targets", cols),
	)

	sampler := logging.NewProgressSampler(logging.DefaultProgressInterval)
	result := align.Align(rows, cols, scorer, align.Options{
		Progress: func(done, total int) {
			if sampler.ShouldLog(done, total) {
				logger.Debug("computing alignment scores",
					logging.Int("row", done),
					logging.Int("rows", total),
					logging.Bool("swapped", rows > cols),
				)
			}
		},
	})

	classifier := classify.New(c.opts.Policy, translations, in.Target, logger)
	out := batchOutput{candidates: len(result.Pairs)}
	for _, pair := range result.Pairs {
		if !sources.Valid(pair.Source) || !in.Target.Valid(pair.Target) {
			logger.Debug("skipping candidate with out-of-range index",
				logging.Int("source_index", pair.Source),
				logging.Int("target_index", pair.Target),
			)
			continue
		}
		src, trg := sources[pair.Source], in.Target[pair.Target]
		decision := classifier.Classify(classify.Candidate{
			BLEU:             pair.Score,
			Source:           src,
			Target:           trg,
			TranslationIndex: pair.Source,
			TargetIndex:      pair.Target,
		})
		c.observer.Classified(decision)
		if !decision.Accepted {
			continue
		}
		out.alignments = append(out.alignments, Alignment{
			Batch:       w.Index,
			SourceIndex: w.Lo + pair.Source,
			TargetIndex: pair.Target,
			SourceID:    src.ID,
			TargetID:    trg.ID,
			Label:       decision.Label,
			Method:      decision.Method,
			Scores:      decision.Scores,
		})
	}

	elapsed := time.Since(started)
	c.observer.BatchDone(w, out.candidates, elapsed)
	logger.Debug("batch aligned",
		logging.Int("window_start", w.Lo),
		logging.Int("window_end", w.Hi),
		logging.Int("candidates", out.candidates),
		logging.Int("accepted", len(out.alignments)),
		logging.Duration("elapsed", elapsed),
	)
	return out
}
