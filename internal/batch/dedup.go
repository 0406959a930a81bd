package batch

import "sort"

// Deduplicate keeps, for every target article, only the alignment with the
// highest BLEU score. On equal scores the lower source index wins. The result
// is ordered by source index; running it on its own output changes nothing.
// The second return value counts the dropped alignments.
func Deduplicate(in []Alignment) ([]Alignment, int) {
	if len(in) == 0 {
		return nil, 0
	}
	best := make(map[int]int, len(in))
	for i, a := range in {
		cur, ok := best[a.TargetIndex]
		if !ok || better(a, in[cur]) {
			best[a.TargetIndex] = i
		}
	}
	out := make([]Alignment, 0, len(best))
	for _, idx := range best {
		out = append(out, in[idx])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceIndex != out[j].SourceIndex {
			return out[i].SourceIndex < out[j].SourceIndex
		}
		return out[i].TargetIndex < out[j].TargetIndex
	})
	return out, len(in) - len(out)
}

func better(a, b Alignment) bool {
	if a.BLEU() != b.BLEU() {
		return a.BLEU() > b.BLEU()
	}
	if a.SourceIndex != b.SourceIndex {
		return a.SourceIndex < b.SourceIndex
	}
	return a.Batch < b.Batch
}
