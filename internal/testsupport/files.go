package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artalign/internal/article"
)

// Book describes one book of a segmented corpus file. Each article is a list
// of lines; the first line is the article identifier.
type Book struct {
	Name     string
	Articles [][]string
}

// WriteCorpus writes books in the segmented text format read by
// article.FileSource and returns the path.
func WriteCorpus(t testing.TB, path string, books ...Book) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	var b strings.Builder
	for _, book := range books {
		b.WriteString(book.Name)
		b.WriteByte('\n')
		for _, lines := range book.Articles {
			for _, line := range lines {
				b.WriteString(line)
				b.WriteByte('\n')
			}
			b.WriteString(article.ArticleMarker)
			b.WriteByte('\n')
		}
		b.WriteString(article.BookMarker)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
