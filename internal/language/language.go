package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Separator joins source and target codes in a link-group lang attribute.
const Separator = ";"

// Word forms and bibliographic codes that BCP 47 parsing does not understand.
var byWord = map[string]string{
	"english":   "en",
	"french":    "fr",
	"german":    "de",
	"italian":   "it",
	"romansh":   "rm",
	"rumantsch": "rm",
	"spanish":   "es",
	"dutch":     "nl",
	"ger":       "de",
	"fre":       "fr",
	"dut":       "nl",
	"roh":       "rm",
}

// Normalize converts a language code or English name to its base code
// (ISO 639-1 when one exists). Unknown input is an error.
func Normalize(code string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return "", fmt.Errorf("language: empty code")
	}
	if short, ok := byWord[trimmed]; ok {
		return short, nil
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("language: parse %q: %w", code, err)
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "", fmt.Errorf("language: unknown code %q", code)
	}
	return base.String(), nil
}

// DisplayName returns the English name of a code, or the upper-cased input
// when it cannot be parsed.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	short, err := Normalize(trimmed)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	name := display.English.Languages().Name(language.Make(short))
	if name == "" {
		return strings.ToUpper(short)
	}
	return name
}

// Pair renders the lang attribute for a source/target pair, e.g. "de;fr".
// Codes that fail to normalize are written as given.
func Pair(source, target string) string {
	return normalizedOrRaw(source) + Separator + normalizedOrRaw(target)
}

func normalizedOrRaw(code string) string {
	if short, err := Normalize(code); err == nil {
		return short
	}
	return strings.TrimSpace(code)
}
