package bleu

import (
	"strings"

	"artalign/internal/article"
)

const (
	// DefaultLengthRatioMin is the token-count ratio at or below which two
	// articles are not scored.
	DefaultLengthRatioMin = 0.6
	// DefaultPlaceholder is returned instead of a real score for pairs whose
	// lengths differ too much.
	DefaultPlaceholder = 0.001
)

// Options tunes the pair scorer.
type Options struct {
	NGrams         int
	LengthRatioMin float64
	Placeholder    float64
}

func (o Options) normalized() Options {
	if o.NGrams <= 0 {
		o.NGrams = DefaultNGrams
	}
	if o.LengthRatioMin <= 0 || o.LengthRatioMin >= 1 {
		o.LengthRatioMin = DefaultLengthRatioMin
	}
	if o.Placeholder <= 0 {
		o.Placeholder = DefaultPlaceholder
	}
	return o
}

type preparedText struct {
	tokens    []string
	wordCount int
}

// PairScorer scores translated-source articles against target articles.
// Both sides are tokenized once; Score is safe for concurrent use.
type PairScorer struct {
	opts   Options
	tests  []preparedText
	refs   []Reference
	counts []int
}

// NewPairScorer prepares translations (hypotheses) and targets (references).
func NewPairScorer(translations, targets article.Collection, opts Options) *PairScorer {
	opts = opts.normalized()
	s := &PairScorer{
		opts:   opts,
		tests:  make([]preparedText, len(translations)),
		refs:   make([]Reference, len(targets)),
		counts: make([]int, len(targets)),
	}
	for i, a := range translations {
		s.tests[i] = prepare(a)
	}
	for j, a := range targets {
		p := prepare(a)
		s.refs[j] = CookReference(p.tokens, opts.NGrams)
		s.counts[j] = p.wordCount
	}
	return s
}

func prepare(a article.Article) preparedText {
	body := a.Body()
	return preparedText{
		tokens:    Normalize(strings.Join(body, " ")),
		wordCount: a.TokenCount(),
	}
}

// Rows returns the number of translated-source articles.
func (s *PairScorer) Rows() int { return len(s.tests) }

// Cols returns the number of target articles.
func (s *PairScorer) Cols() int { return len(s.refs) }

// Score rates translation i against target j. Pairs whose token counts are
// too dissimilar get the placeholder score without running BLEU.
func (s *PairScorer) Score(i, j int) float64 {
	if !LengthsComparable(s.tests[i].wordCount, s.counts[j], s.opts.LengthRatioMin) {
		return s.opts.Placeholder
	}
	return Cook(s.tests[i].tokens, s.refs[j]).Score()
}

// LengthsComparable reports whether min/max of the two token counts lies in
// (ratioMin, 1]. Two empty articles are not comparable.
func LengthsComparable(a, b int, ratioMin float64) bool {
	longer := max(a, b)
	if longer == 0 {
		return false
	}
	ratio := float64(min(a, b)) / float64(longer)
	return ratio > ratioMin && ratio <= 1
}
