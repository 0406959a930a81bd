package article

import "strings"

// Article is one segmented unit of text. Sentences[0] is the identifier line.
type Article struct {
	ID        string
	Sentences []string
}

// New builds an article from its raw sentence list. The first sentence
// becomes the identifier; it stays in Sentences so the input is kept intact.
func New(sentences []string) Article {
	a := Article{Sentences: sentences}
	if len(sentences) > 0 {
		a.ID = strings.TrimSpace(sentences[0])
	}
	return a
}

// Body returns the sentences after the identifier line.
func (a Article) Body() []string {
	if len(a.Sentences) <= 1 {
		return nil
	}
	return a.Sentences[1:]
}

// Text joins the body sentences with single spaces.
func (a Article) Text() string {
	return strings.Join(a.Body(), " ")
}

// TokenCount counts whitespace-separated tokens in the body.
func (a Article) TokenCount() int {
	total := 0
	for _, sentence := range a.Body() {
		total += len(strings.Fields(sentence))
	}
	return total
}

// CharCount counts characters (runes) in the body sentences.
func (a Article) CharCount() int {
	total := 0
	for _, sentence := range a.Body() {
		total += len([]rune(sentence))
	}
	return total
}

// Collection is an ordered sequence of articles for one language role.
type Collection []Article

// FromSentences converts raw sentence lists into a collection.
func FromSentences(raw [][]string) Collection {
	out := make(Collection, 0, len(raw))
	for _, sentences := range raw {
		out = append(out, New(sentences))
	}
	return out
}

// Valid reports whether idx addresses an article of the collection.
func (c Collection) Valid(idx int) bool {
	return idx >= 0 && idx < len(c)
}

// Slice returns the articles in [lo, hi), clamped to the collection bounds.
func (c Collection) Slice(lo, hi int) Collection {
	if lo < 0 {
		lo = 0
	}
	if hi > len(c) {
		hi = len(c)
	}
	if lo >= hi {
		return nil
	}
	return c[lo:hi]
}

// IDs lists article identifiers in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, a := range c {
		ids[i] = a.ID
	}
	return ids
}

// Book is one periodical issue: a named collection of articles.
type Book struct {
	Name     string
	Articles Collection
}
