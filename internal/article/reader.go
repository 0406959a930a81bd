package article

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// ArticleMarker terminates an article in the segmented text format.
	ArticleMarker = ".EOA"
	// BookMarker terminates a book in the segmented text format.
	BookMarker = ".EOB"
)

// ErrNoArticles indicates a book contained no article text at all.
var ErrNoArticles = errors.New("book contains no articles")

// Source yields the books of one language role. The plain-text reader is the
// default implementation; other extraction pipelines can satisfy it directly.
type Source interface {
	Books() ([]Book, error)
}

// FileSource reads books from a segmented text file.
type FileSource struct {
	Path string
}

// Books implements Source.
func (s FileSource) Books() ([]Book, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	books, err := ParseBooks(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return books, nil
}

// ParseBooks reads every book from r.
func ParseBooks(r io.Reader) ([]Book, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read segmented text: %w", err)
	}
	var books []Book
	for idx, chunk := range splitNonBlank(string(data), BookMarker) {
		book, err := ParseBook(chunk)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", idx, err)
		}
		books = append(books, book)
	}
	return books, nil
}

// ParseBook splits one book into articles. The first line of the first
// article is the book name and is removed from that article.
func ParseBook(text string) (Book, error) {
	chunks := splitNonBlank(text, ArticleMarker)
	if len(chunks) == 0 {
		return Book{}, ErrNoArticles
	}
	raw := make([][]string, 0, len(chunks))
	for _, chunk := range chunks {
		raw = append(raw, strings.Split(strings.TrimSpace(chunk), "\n"))
	}
	name := strings.TrimSpace(raw[0][0])
	raw[0] = raw[0][1:]
	if len(raw[0]) == 0 {
		raw = raw[1:]
	}
	if len(raw) == 0 {
		return Book{Name: name}, ErrNoArticles
	}
	return Book{Name: name, Articles: FromSentences(raw)}, nil
}

func splitNonBlank(text, marker string) []string {
	parts := strings.Split(text, marker)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
