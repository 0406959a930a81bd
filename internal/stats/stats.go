// Package stats derives the per-book statistics block from an alignment set.
package stats

import (
	"artalign/internal/batch"
	"artalign/internal/classify"
)

// Book summarizes the alignment of one book.
type Book struct {
	Name            string `json:"name"`
	TargetName      string `json:"target_name"`
	Candidates      int    `json:"candidates"`
	Parallel        int    `json:"parallel"`
	Comparable      int    `json:"comparable"`
	SourceArticles  int    `json:"source_articles"`
	TargetArticles  int    `json:"target_articles"`
	UnalignedSource int    `json:"unaligned_source"`
	UnalignedTarget int    `json:"unaligned_target"`
	Dropped         int    `json:"duplicates_dropped"`
}

// Compute counts labels and unaligned articles. It is a pure function of the
// alignments and the collection sizes.
func Compute(alignments []batch.Alignment, candidates, sourceArticles, targetArticles int) Book {
	b := Book{
		Candidates:     candidates,
		SourceArticles: sourceArticles,
		TargetArticles: targetArticles,
	}
	sources := make(map[int]struct{}, len(alignments))
	targets := make(map[int]struct{}, len(alignments))
	for _, a := range alignments {
		switch a.Label {
		case classify.LabelParallel:
			b.Parallel++
		case classify.LabelComparable:
			b.Comparable++
		default:
			continue
		}
		sources[a.SourceIndex] = struct{}{}
		targets[a.TargetIndex] = struct{}{}
	}
	b.UnalignedSource = max(0, sourceArticles-len(sources))
	b.UnalignedTarget = max(0, targetArticles-len(targets))
	return b
}

// FromResult computes the statistics of one aligned book.
func FromResult(r batch.BookResult) Book {
	in := r.Job.Input
	b := Compute(r.Result.Alignments, r.Result.Candidates, len(in.Source), len(in.Target))
	b.Name = r.Job.Name
	b.TargetName = r.Job.TargetName
	b.Dropped = r.Result.Dropped
	return b
}

// ParallelPercent is the share of candidates labeled parallel.
func (b Book) ParallelPercent() int { return percent(b.Parallel, b.Candidates) }

// ComparablePercent is the share of candidates labeled comparable.
func (b Book) ComparablePercent() int { return percent(b.Comparable, b.Candidates) }

// UnalignedSourcePercent is the share of source articles without a counterpart.
func (b Book) UnalignedSourcePercent() int { return percent(b.UnalignedSource, b.SourceArticles) }

// UnalignedTargetPercent is the share of target articles without a counterpart.
func (b Book) UnalignedTargetPercent() int { return percent(b.UnalignedTarget, b.TargetArticles) }

// Add accumulates other into b; names are left untouched.
func (b *Book) Add(other Book) {
	b.Candidates += other.Candidates
	b.Parallel += other.Parallel
	b.Comparable += other.Comparable
	b.SourceArticles += other.SourceArticles
	b.TargetArticles += other.TargetArticles
	b.UnalignedSource += other.UnalignedSource
	b.UnalignedTarget += other.UnalignedTarget
	b.Dropped += other.Dropped
}

// percent truncates toward zero; an empty denominator yields 0.
func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}
