package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("hello world"), 0},
		{"b nil", NewFingerprint("hello world"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	text := "Der Bundesrat hat in seiner heutigen Sitzung beschlossen"
	got := CosineSimilarity(NewFingerprint(text), NewFingerprint(text))
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityCompletelyDifferent(t *testing.T) {
	got := CosineSimilarity(NewFingerprint("apple banana cherry"), NewFingerprint("dog elephant frog"))
	if got != 0 {
		t.Errorf("CosineSimilarity(different) = %v, want 0", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("hello world program world")
	b := NewFingerprint("world program test")
	ab := CosineSimilarity(a, b)
	ba := CosineSimilarity(b, a)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
	if ab <= 0 || ab >= 1 {
		t.Errorf("partial overlap = %v, want between 0 and 1", ab)
	}
}

func TestCosineSimilarityZeroNorm(t *testing.T) {
	a := &Fingerprint{tokens: map[string]float64{}, norm: 0}
	if got := CosineSimilarity(a, NewFingerprint("hello world test")); got != 0 {
		t.Errorf("CosineSimilarity(zero norm) = %v, want 0", got)
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// "hello hello world" -> hello:2, world:1, norm = sqrt(5)
	fp := NewFingerprint("hello hello world")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}
	if math.Abs(fp.norm-math.Sqrt(5)) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, math.Sqrt(5))
	}
	if fp.TokenCount() != 2 {
		t.Errorf("TokenCount() = %d, want 2", fp.TokenCount())
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty text")
	}
	if fp := NewFingerprint("a b c ."); fp != nil {
		t.Error("expected nil for single-rune tokens only")
	}
	var nilFP *Fingerprint
	if nilFP.TokenCount() != 0 {
		t.Error("nil fingerprint should report zero tokens")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple words", "Hello World", []string{"hello", "world"}},
		{"filters single runes", "a to the quick fox", []string{"to", "the", "quick", "fox"}},
		{"punctuation", "Hello, World! How are you?", []string{"hello", "world", "how", "are", "you"}},
		{"accented letters", "Über die Sécurité", []string{"über", "die", "sécurité"}},
		{"numbers", "Art. 12 vom 1.5.1849", []string{"art", "12", "vom", "1849"}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize() = %v (len %d), want %v (len %d)", got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCorpusIDFSmoothing(t *testing.T) {
	c := NewCorpus()
	c.Add(NewFingerprint("alpha beta"))
	c.Add(NewFingerprint("alpha gamma"))
	c.Add(nil)
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	idf := c.IDF()
	// alpha: df=2 -> ln(4/3)+1, beta: df=1 -> ln(2)+1
	if math.Abs(idf["alpha"]-(math.Log(4.0/3.0)+1)) > 1e-9 {
		t.Errorf("idf[alpha] = %v", idf["alpha"])
	}
	if math.Abs(idf["beta"]-(math.Log(2)+1)) > 1e-9 {
		t.Errorf("idf[beta] = %v", idf["beta"])
	}
	if idf["alpha"] >= idf["beta"] {
		t.Error("common term should weigh less than rare term")
	}
}

func TestVectorizeKeepsOrderAndNils(t *testing.T) {
	vecs := Vectorize([]string{
		"federal council decides on the tariff",
		"",
		"the federal council decides on the new tariff",
		"weather report for the alps",
	})
	if len(vecs) != 4 {
		t.Fatalf("got %d vectors", len(vecs))
	}
	if vecs[1] != nil {
		t.Fatal("expected nil vector for empty text")
	}
	related := CosineSimilarity(vecs[0], vecs[2])
	unrelated := CosineSimilarity(vecs[0], vecs[3])
	if related <= 0.5 {
		t.Errorf("related similarity = %v, want > 0.5", related)
	}
	if unrelated >= related {
		t.Errorf("unrelated similarity %v should be below related %v", unrelated, related)
	}
}

func TestNumericTokens(t *testing.T) {
	sentences := []string{
		"Im Jahr 1849 wurden 1,000 Franken und 3.5% bewilligt.",
		"Art. 12 bleibt; 12 Stimmen dagegen, 1.5.1849 und abc123.",
	}
	got := NumericTokens(sentences)
	want := []string{"1849", "1000", "35%", "12", "12", "151849"}
	if len(got) != len(want) {
		t.Fatalf("NumericTokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if set := NumberSet(sentences); len(set) != 5 {
		t.Errorf("NumberSet size = %d, want 5", len(set))
	}
}
