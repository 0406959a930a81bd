package article

import (
	"errors"
	"strings"
	"testing"
)

func TestNewKeepsIdentifierOutOfBody(t *testing.T) {
	a := New([]string{"src.txt", "Der Bundesrat beschliesst.", "Zweiter Satz hier."})
	if a.ID != "src.txt" {
		t.Fatalf("ID = %q, want src.txt", a.ID)
	}
	if got := a.Text(); got != "Der Bundesrat beschliesst. Zweiter Satz hier." {
		t.Fatalf("Text() = %q", got)
	}
	if got := a.TokenCount(); got != 6 {
		t.Fatalf("TokenCount() = %d, want 6", got)
	}
	if got := a.CharCount(); got != len("Der Bundesrat beschliesst.")+len("Zweiter Satz hier.") {
		t.Fatalf("CharCount() = %d", got)
	}
}

func TestEmptyArticle(t *testing.T) {
	a := New(nil)
	if a.ID != "" || a.Body() != nil || a.TokenCount() != 0 {
		t.Fatalf("unexpected empty article: %#v", a)
	}
}

func TestCollectionSliceClamps(t *testing.T) {
	c := FromSentences([][]string{{"a"}, {"b"}, {"c"}})
	tests := []struct {
		name   string
		lo, hi int
		want   []string
	}{
		{"inner", 1, 2, []string{"b"}},
		{"clamped high", 1, 10, []string{"b", "c"}},
		{"clamped low", -3, 1, []string{"a"}},
		{"empty", 2, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Slice(tt.lo, tt.hi).IDs()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("Slice(%d,%d) = %v, want %v", tt.lo, tt.hi, got, tt.want)
			}
		})
	}
	if c.Valid(3) || c.Valid(-1) || !c.Valid(0) {
		t.Fatal("Valid bounds wrong")
	}
}

func TestParseBooks(t *testing.T) {
	input := strings.Join([]string{
		"1849_de.txt",
		"data/1849/01/a1.txt",
		"Erster Artikel.",
		".EOA",
		"data/1849/01/a2.txt",
		"Zweiter Artikel.",
		"Mit zwei Sätzen.",
		".EOA",
		"",
		".EOB",
		"1850_de.txt",
		"data/1850/01/b1.txt",
		"Anderes Buch.",
		".EOA",
		".EOB",
		"",
	}, "\n")

	books, err := ParseBooks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBooks: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	first := books[0]
	if first.Name != "1849_de.txt" {
		t.Fatalf("book name = %q", first.Name)
	}
	if ids := first.Articles.IDs(); strings.Join(ids, ",") != "data/1849/01/a1.txt,data/1849/01/a2.txt" {
		t.Fatalf("article ids = %v", ids)
	}
	if got := first.Articles[1].Body(); len(got) != 2 || got[1] != "Mit zwei Sätzen." {
		t.Fatalf("second article body = %v", got)
	}
	if books[1].Name != "1850_de.txt" || len(books[1].Articles) != 1 {
		t.Fatalf("unexpected second book: %#v", books[1])
	}
}

func TestParseBookWithoutArticles(t *testing.T) {
	_, err := ParseBook("only-a-name.txt\n")
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles, got %v", err)
	}
	_, err = ParseBook("   \n")
	if !errors.Is(err, ErrNoArticles) {
		t.Fatalf("expected ErrNoArticles for blank text, got %v", err)
	}
}
