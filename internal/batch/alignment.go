package batch

import (
	"errors"

	"artalign/internal/article"
	"artalign/internal/classify"
)

// ErrCollectionMismatch is returned when the translation does not cover the
// source collection article for article.
var ErrCollectionMismatch = errors.New("source and translation collections differ in length")

// Alignment is a labeled source/target pair. Indices address the full
// collections, not the batch window.
type Alignment struct {
	Batch       int             `json:"batch"`
	SourceIndex int             `json:"source_index"`
	TargetIndex int             `json:"target_index"`
	SourceID    string          `json:"source_id"`
	TargetID    string          `json:"target_id"`
	Label       classify.Label  `json:"label"`
	Method      classify.Method `json:"method"`
	Scores      classify.Scores `json:"scores"`
}

// BLEU returns the pair's translation score.
func (a Alignment) BLEU() float64 { return a.Scores.BLEU }

// Input bundles the three collections of one alignment job. Translation[i]
// is the translation of Source[i] into the target language.
type Input struct {
	Source      article.Collection
	Translation article.Collection
	Target      article.Collection
}

// Validate checks that the source and its translation line up.
func (in Input) Validate() error {
	if len(in.Source) != len(in.Translation) {
		return ErrCollectionMismatch
	}
	return nil
}

// Window is a contiguous slice [Lo, Hi) of the source collection.
type Window struct {
	Index int
	Lo    int
	Hi    int
}

// Len returns the number of source articles in the window.
func (w Window) Len() int { return w.Hi - w.Lo }

// Windows partitions n source articles into windows of at most size.
func Windows(n, size int) []Window {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		size = n
	}
	out := make([]Window, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		out = append(out, Window{Index: len(out) + 1, Lo: lo, Hi: min(lo+size, n)})
	}
	return out
}
