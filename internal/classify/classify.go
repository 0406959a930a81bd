package classify

import (
	"log/slog"

	"artalign/internal/article"
	"artalign/internal/logging"
	"artalign/internal/textutil"
)

// Label is the outcome of a successful classification.
type Label string

const (
	LabelParallel   Label = "parallel"
	LabelComparable Label = "comparable"
)

// Method names the cascade stage that accepted a pair.
type Method string

const (
	MethodBLEU         Method = "BLEU"
	MethodNumberLength Method = "number_length_matching"
	MethodTFIDF        Method = "tfidf"
)

// Stage counts how far down the cascade a candidate travelled.
type Stage int

const (
	StageBLEU Stage = iota + 1
	StageNumberLength
	StageTFIDF
)

// Scores holds every criterion computed for a candidate. Fields belonging to
// stages that were not reached stay zero.
type Scores struct {
	BLEU     float64 `json:"bleu"`
	Numbers  float64 `json:"numbers"`
	Length   float64 `json:"length,omitempty"`
	Weighted float64 `json:"weighted,omitempty"`
	TFIDF    float64 `json:"tfidf,omitempty"`
}

// Decision is the classification of one candidate.
type Decision struct {
	Accepted bool
	Label    Label
	Method   Method
	Reached  Stage
	Scores   Scores
}

// Candidate bundles what the cascade needs for one aligned pair.
// TranslationIndex and TargetIndex address the collections the classifier
// was built with.
type Candidate struct {
	BLEU             float64
	Source           article.Article
	Target           article.Article
	TranslationIndex int
	TargetIndex      int
}

// Classifier runs the cascade for one batch.
type Classifier struct {
	policy       Policy
	logger       *slog.Logger
	translations []*textutil.Fingerprint
	targets      []*textutil.Fingerprint
}

// New fits the batch TF-IDF model over translations followed by targets.
func New(policy Policy, translations, targets article.Collection, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	texts := make([]string, 0, len(translations)+len(targets))
	for _, a := range translations {
		texts = append(texts, a.Text())
	}
	for _, a := range targets {
		texts = append(texts, a.Text())
	}
	vectors := textutil.Vectorize(texts)
	return &Classifier{
		policy:       policy.normalized(),
		logger:       logger,
		translations: vectors[:len(translations)],
		targets:      vectors[len(translations):],
	}
}

// Classify runs the cascade and reports whether the pair is kept.
func (c *Classifier) Classify(cand Candidate) Decision {
	p := c.policy
	d := Decision{Reached: StageBLEU}
	d.Scores.BLEU = cand.BLEU
	d.Scores.Numbers = NumberOverlap(cand.Source, cand.Target, p)

	if cand.BLEU > p.ParallelBLEU && d.Scores.Numbers >= p.NumberOverlapMin {
		return accept(d, LabelParallel, MethodBLEU)
	}

	d.Reached = StageNumberLength
	d.Scores.Length = LengthSimilarity(cand.Source, cand.Target, p)
	d.Scores.Weighted = p.LengthWeight*d.Scores.Length + p.NumberWeight*d.Scores.Numbers
	if d.Scores.Weighted > p.CompositeMin {
		return accept(d, LabelParallel, MethodNumberLength)
	}

	d.Reached = StageTFIDF
	sim, ok := c.similarity(cand.TranslationIndex, cand.TargetIndex)
	if !ok {
		c.logger.Debug("tfidf vector unavailable; comparable check skipped",
			logging.String("source", cand.Source.ID),
			logging.String("target", cand.Target.ID),
			logging.Int("translation_index", cand.TranslationIndex),
			logging.Int("target_index", cand.TargetIndex),
		)
		return d
	}
	d.Scores.TFIDF = sim
	if sim > p.ComparableMin {
		return accept(d, LabelComparable, MethodTFIDF)
	}
	return d
}

func accept(d Decision, label Label, method Method) Decision {
	d.Accepted = true
	d.Label = label
	d.Method = method
	return d
}

func (c *Classifier) similarity(ti, gi int) (float64, bool) {
	if ti < 0 || ti >= len(c.translations) || gi < 0 || gi >= len(c.targets) {
		return 0, false
	}
	a, b := c.translations[ti], c.targets[gi]
	if a == nil || b == nil {
		return 0, false
	}
	return textutil.CosineSimilarity(a, b), true
}

// NumberOverlap is the share of distinct numbers found in both articles,
// relative to the side with more distinct numbers. Articles with too few
// numbers for the ratio to mean anything get the neutral constant.
func NumberOverlap(source, target article.Article, p Policy) float64 {
	a := textutil.NumberSet(source.Body())
	b := textutil.NumberSet(target.Body())
	if len(a) <= p.SparseNumberLimit || len(b) <= p.SparseNumberLimit {
		return p.NeutralRatio
	}
	shared := 0
	for n := range a {
		if _, ok := b[n]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(a), len(b)))
}

// LengthSimilarity is min/max of the two character lengths, or the neutral
// constant when both articles are empty.
func LengthSimilarity(source, target article.Article, p Policy) float64 {
	a, b := source.CharCount(), target.CharCount()
	longer := max(a, b)
	if longer == 0 {
		return p.NeutralRatio
	}
	return float64(min(a, b)) / float64(longer)
}
