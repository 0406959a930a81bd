package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// separatedNumberPattern matches tokens that start with digits joined by a
// thousands or decimal separator, e.g. "1,000" or "3.5%".
var separatedNumberPattern = regexp.MustCompile(`^\d+[,.]\d+`)

var separatorReplacer = strings.NewReplacer(",", "", ".", "")

// NumericTokens extracts numbers from sentences in order of appearance.
// Separators are stripped so "1,000" and "1000" compare equal.
func NumericTokens(sentences []string) []string {
	var out []string
	for _, sentence := range sentences {
		for _, word := range strings.Fields(sentence) {
			if isNumeric(word) || separatedNumberPattern.MatchString(word) {
				out = append(out, separatorReplacer.Replace(word))
			}
		}
	}
	return out
}

// NumberSet returns the distinct numeric tokens of sentences.
func NumberSet(sentences []string) map[string]struct{} {
	tokens := NumericTokens(sentences)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func isNumeric(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
