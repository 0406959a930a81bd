package bleu

import (
	"html"
	"math"
	"regexp"
	"strings"

	"artalign/internal/textutil"
)

// DefaultNGrams is the highest n-gram order used by Score.
const DefaultNGrams = 4

type rule struct {
	pattern *regexp.Regexp
	replace string
}

var languageIndependent = []rule{
	{regexp.MustCompile(`<skipped>`), ""},
	{regexp.MustCompile(`-\n`), ""},
	{regexp.MustCompile(`\n`), " "},
}

var westernTokenization = []rule{
	// split off punctuation; apostrophe is deliberately absent
	{regexp.MustCompile("([\\{-\\~\\[-\\` -\\&\\(-\\+\\:-\\@\\/])"), " $1 "},
	// period and comma unless preceded by a digit
	{regexp.MustCompile(`([^0-9])([\.,])`), "$1 $2 "},
	// period and comma unless followed by a digit
	{regexp.MustCompile(`([\.,])([^0-9])`), " $1 $2"},
	// dash preceded by a digit
	{regexp.MustCompile(`([0-9])(-)`), "$1 $2 "},
}

// Normalize tokenizes text the way mteval-v11a prepares hypotheses and
// references.
func Normalize(text string) []string {
	for _, r := range languageIndependent {
		text = r.pattern.ReplaceAllString(text, r.replace)
	}
	text = html.UnescapeString(text)
	text = " " + textutil.Lower(text) + " "
	for _, r := range westernTokenization {
		text = r.pattern.ReplaceAllString(text, r.replace)
	}
	return strings.Fields(text)
}

type ngram string

func countNGrams(words []string, n int) map[ngram]int {
	counts := make(map[ngram]int)
	for k := 1; k <= n; k++ {
		for i := 0; i+k <= len(words); i++ {
			counts[ngram(strings.Join(words[i:i+k], "\x00"))]++
		}
	}
	return counts
}

// Reference is a tokenized reference with its n-gram counts.
type Reference struct {
	length int
	counts map[ngram]int
	n      int
}

// CookReference prepares a reference for repeated scoring.
func CookReference(tokens []string, n int) Reference {
	if n <= 0 {
		n = DefaultNGrams
	}
	return Reference{length: len(tokens), counts: countNGrams(tokens, n), n: n}
}

// Stats holds the sufficient statistics of one test/reference comparison.
type Stats struct {
	TestLen int
	RefLen  int
	Guess   []int
	Correct []int
}

// Cook compares a tokenized hypothesis against a cooked reference.
func Cook(test []string, ref Reference) Stats {
	n := ref.n
	s := Stats{
		TestLen: len(test),
		RefLen:  ref.length,
		Guess:   make([]int, n),
		Correct: make([]int, n),
	}
	for k := 1; k <= n; k++ {
		s.Guess[k-1] = max(len(test)-k+1, 0)
	}
	for gram, count := range countNGrams(test, n) {
		order := strings.Count(string(gram), "\x00")
		s.Correct[order] += min(ref.counts[gram], count)
	}
	return s
}

// Score turns cooked statistics into the BLEU value.
func (s Stats) Score() float64 {
	var logBLEU float64
	for k := range s.Correct {
		if s.Correct[k] == 0 {
			return 0
		}
		logBLEU += math.Log(float64(s.Correct[k])) - math.Log(float64(s.Guess[k]))
	}
	logBLEU /= float64(len(s.Correct))
	logBLEU += math.Min(0, 1-float64(s.RefLen)/float64(s.TestLen))
	return math.Exp(logBLEU)
}

// Sentence scores a hypothesis string against a single reference string.
func Sentence(hypothesis, reference string) float64 {
	ref := CookReference(Normalize(reference), DefaultNGrams)
	return Cook(Normalize(hypothesis), ref).Score()
}
