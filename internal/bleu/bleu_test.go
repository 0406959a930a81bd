package bleu

import (
	"math"
	"strings"
	"testing"

	"artalign/internal/article"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation split", "The Federal Council decides.", "the federal council decides ."},
		{"numbers keep separators", "It costs 1,000.50 francs, not 2.", "it costs 1,000.50 francs , not 2 ."},
		{"hyphenation joined", "Bundes-\nrat", "bundesrat"},
		{"entities", "A &amp; B", "a & b"},
		{"digit dash", "1848-1849", "1848 - 1849"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(Normalize(tt.in), " ")
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSentenceIdentical(t *testing.T) {
	got := Sentence("The Federal Council decides.", "The Federal Council decides.")
	if math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical BLEU = %v, want 1", got)
	}
}

func TestSentenceNoFourGramMatch(t *testing.T) {
	got := Sentence("council federal the decides", "the federal council decides")
	if got != 0 {
		t.Fatalf("BLEU without 4-gram overlap = %v, want 0", got)
	}
}

func TestSentenceEmptyHypothesis(t *testing.T) {
	if got := Sentence("", "some reference text here"); got != 0 {
		t.Fatalf("empty hypothesis BLEU = %v, want 0", got)
	}
}

func TestCookClipsCounts(t *testing.T) {
	ref := CookReference([]string{"the", "cat"}, 2)
	stats := Cook([]string{"the", "the", "the"}, ref)
	if stats.Correct[0] != 1 {
		t.Fatalf("unigram matches = %d, want clipped 1", stats.Correct[0])
	}
	if stats.Guess[0] != 3 || stats.Guess[1] != 2 {
		t.Fatalf("guess = %v, want [3 2]", stats.Guess)
	}
}

func TestBrevityPenalty(t *testing.T) {
	ref := CookReference(strings.Fields("a b c d e f g h"), 2)
	full := Cook(strings.Fields("a b c d e f g h"), ref).Score()
	short := Cook(strings.Fields("a b c d"), ref).Score()
	if math.Abs(full-1) > 1e-9 {
		t.Fatalf("full BLEU = %v", full)
	}
	// precisions are 1, penalty exp(1 - 8/4) = exp(-1)
	if math.Abs(short-math.Exp(-1)) > 1e-9 {
		t.Fatalf("short BLEU = %v, want %v", short, math.Exp(-1))
	}
}

func TestLengthsComparable(t *testing.T) {
	tests := []struct {
		a, b int
		want bool
	}{
		{10, 10, true},
		{6, 10, false},
		{7, 10, true},
		{0, 0, false},
		{0, 5, false},
		{10, 7, true},
	}
	for _, tt := range tests {
		if got := LengthsComparable(tt.a, tt.b, DefaultLengthRatioMin); got != tt.want {
			t.Errorf("LengthsComparable(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPairScorer(t *testing.T) {
	translations := article.FromSentences([][]string{
		{"src1.txt", "The Federal Council decides on the new customs tariff."},
		{"src2.txt", "Short."},
	})
	targets := article.FromSentences([][]string{
		{"trg1.txt", "The Federal Council decides on the new customs tariff."},
		{"trg2.txt", "A much longer article about something else entirely which goes on and on."},
	})
	s := NewPairScorer(translations, targets, Options{})
	if s.Rows() != 2 || s.Cols() != 2 {
		t.Fatalf("dims = %dx%d", s.Rows(), s.Cols())
	}
	if got := s.Score(0, 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("Score(0,0) = %v, want 1", got)
	}
	if got := s.Score(1, 1); got != DefaultPlaceholder {
		t.Errorf("Score(1,1) = %v, want placeholder", got)
	}
	if got := s.Score(0, 1); got != 0 && got != DefaultPlaceholder {
		t.Errorf("Score(0,1) = %v, want 0 or placeholder", got)
	}
}

func TestPairScorerIgnoresIdentifierLine(t *testing.T) {
	translations := article.FromSentences([][]string{{"a-very-long-identifier-that-differs.txt", "Same text here."}})
	targets := article.FromSentences([][]string{{"x.txt", "Same text here."}})
	s := NewPairScorer(translations, targets, Options{})
	if got := s.Score(0, 0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("Score = %v, want 1", got)
	}
}
