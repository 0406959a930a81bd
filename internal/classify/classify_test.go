package classify

import (
	"math"
	"testing"

	"artalign/internal/article"
)

func art(id string, body ...string) article.Article {
	return article.New(append([]string{id}, body...))
}

func newTestClassifier(translations, targets article.Collection) *Classifier {
	return New(DefaultPolicy(), translations, targets, nil)
}

func TestClassifyExactMatchIsParallelBLEU(t *testing.T) {
	src := art("src.txt", "Der Bundesrat beschliesst.")
	trans := art("src.txt", "The Federal Council decides.")
	trg := art("trg.txt", "The Federal Council decides.")
	c := newTestClassifier(article.Collection{trans}, article.Collection{trg})

	d := c.Classify(Candidate{BLEU: 1, Source: src, Target: trg})
	if !d.Accepted || d.Label != LabelParallel || d.Method != MethodBLEU {
		t.Fatalf("decision = %+v, want parallel/BLEU", d)
	}
	if d.Reached != StageBLEU || d.Scores.Numbers != 0.4 {
		t.Fatalf("unexpected stage/scores: %+v", d)
	}
}

func TestClassifyBLEUThresholdIsStrict(t *testing.T) {
	src := art("s", "Ein kurzer Text ohne Zahlen.")
	trg := art("t", "Un texte court sans chiffres, mais différent.")
	c := newTestClassifier(article.Collection{art("s", "zzz")}, article.Collection{art("t", "yyy")})

	at := c.Classify(Candidate{BLEU: 0.1, Source: src, Target: trg})
	if at.Method == MethodBLEU {
		t.Fatalf("BLEU exactly at threshold must not pass stage one: %+v", at)
	}
	above := c.Classify(Candidate{BLEU: 0.1 + 1e-9, Source: src, Target: trg})
	if !above.Accepted || above.Method != MethodBLEU {
		t.Fatalf("BLEU just above threshold should be parallel/BLEU: %+v", above)
	}
}

func TestClassifySparseNumbersUseNeutralRatio(t *testing.T) {
	src := art("s", "Im Jahr 1848 kostete es 12 Franken.")
	trg := art("t", "En 1850 cela coûtait 30 francs.")
	c := newTestClassifier(article.Collection{art("s", "aaa bbb")}, article.Collection{art("t", "ccc ddd")})

	d := c.Classify(Candidate{BLEU: 0, Source: src, Target: trg})
	if d.Scores.Numbers != 0.4 {
		t.Fatalf("numbers = %v, want neutral 0.4", d.Scores.Numbers)
	}
	wantLength := LengthSimilarity(src, trg, DefaultPolicy())
	wantWeighted := 0.2*wantLength + 0.8*0.4
	if math.Abs(d.Scores.Weighted-wantWeighted) > 1e-12 {
		t.Fatalf("weighted = %v, want %v", d.Scores.Weighted, wantWeighted)
	}
	if d.Accepted {
		t.Fatalf("unexpected acceptance: %+v", d)
	}
}

func TestClassifyNumberLengthMatching(t *testing.T) {
	src := art("s", "Posten 1200 3400 5600 und 7800 wurden bewilligt.")
	trg := art("t", "Les postes 1200 3400 5600 et 7800 furent approuvés.")
	c := newTestClassifier(article.Collection{art("s", "x1 x2")}, article.Collection{art("t", "y1 y2")})

	d := c.Classify(Candidate{BLEU: 0.05, Source: src, Target: trg})
	if !d.Accepted || d.Method != MethodNumberLength || d.Label != LabelParallel {
		t.Fatalf("decision = %+v, want parallel/number_length_matching", d)
	}
	if d.Scores.Numbers != 1 {
		t.Fatalf("numbers = %v, want 1", d.Scores.Numbers)
	}
}

func TestClassifyConflictingNumbersBlockBLEU(t *testing.T) {
	src := art("s", "Zahlen 11 22 33 44 55 stehen hier.")
	trg := art("t", "Nombres 66 77 88 99 10 ici.")
	c := newTestClassifier(article.Collection{art("s", "alpha")}, article.Collection{art("t", "omega")})

	d := c.Classify(Candidate{BLEU: 0.9, Source: src, Target: trg})
	if d.Accepted {
		t.Fatalf("pair with disjoint numbers accepted: %+v", d)
	}
	if d.Reached != StageTFIDF || d.Scores.Numbers != 0 {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestClassifyComparableByTFIDF(t *testing.T) {
	translations := article.Collection{
		art("s1", "railway construction between zurich and basel approved by parliament"),
		art("s2", "report on the harvest and the weather in the alps"),
	}
	targets := article.Collection{
		art("t1", "parliament approved railway construction from basel to zurich"),
		art("t2", "military budget for the coming year"),
	}
	c := newTestClassifier(translations, targets)

	src := art("s1", "Der Bau der Eisenbahn wurde genehmigt, ein sehr langer Satz über vieles.")
	d := c.Classify(Candidate{BLEU: 0, Source: src, Target: targets[0], TranslationIndex: 0, TargetIndex: 0})
	if !d.Accepted || d.Label != LabelComparable || d.Method != MethodTFIDF {
		t.Fatalf("decision = %+v, want comparable/tfidf", d)
	}
	if d.Scores.TFIDF <= 0.5 {
		t.Fatalf("tfidf = %v, want > 0.5", d.Scores.TFIDF)
	}

	far := c.Classify(Candidate{BLEU: 0, Source: src, Target: targets[1], TranslationIndex: 1, TargetIndex: 1})
	if far.Accepted {
		t.Fatalf("unrelated pair accepted: %+v", far)
	}
}

func TestClassifyMissingVectorSkipsComparable(t *testing.T) {
	translations := article.Collection{art("s1")}
	targets := article.Collection{art("t1", "some words here")}
	c := newTestClassifier(translations, targets)

	d := c.Classify(Candidate{Source: art("s1"), Target: targets[0], TranslationIndex: 0, TargetIndex: 0})
	if d.Accepted || d.Reached != StageTFIDF || d.Scores.TFIDF != 0 {
		t.Fatalf("decision = %+v, want rejected without tfidf", d)
	}
	out := c.Classify(Candidate{Source: art("s1"), Target: targets[0], TranslationIndex: 5, TargetIndex: 0})
	if out.Accepted {
		t.Fatalf("out-of-range index accepted: %+v", out)
	}
}

func TestLengthSimilarityDegenerate(t *testing.T) {
	p := DefaultPolicy()
	if got := LengthSimilarity(art("a"), art("b"), p); got != p.NeutralRatio {
		t.Fatalf("empty articles length similarity = %v, want %v", got, p.NeutralRatio)
	}
	if got := LengthSimilarity(art("a", "abcd"), art("b", "ab"), p); got != 0.5 {
		t.Fatalf("length similarity = %v, want 0.5", got)
	}
}

func TestPolicyNormalized(t *testing.T) {
	p := Policy{ParallelBLEU: 2, CompositeMin: -1, LengthWeight: -1}.Normalized()
	d := DefaultPolicy()
	if p.ParallelBLEU != d.ParallelBLEU || p.CompositeMin != d.CompositeMin || p.LengthWeight != d.LengthWeight {
		t.Fatalf("normalized policy = %+v", p)
	}
}
