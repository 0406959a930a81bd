package align

import (
	"math"
	"sort"
)

// Scorer rates how well source article i translates to target article j.
// Scores are expected to be non-negative; negative values count as zero.
type Scorer interface {
	Score(i, j int) float64
}

// ScoreFunc adapts a plain function to Scorer.
type ScoreFunc func(i, j int) float64

// Score implements Scorer.
func (f ScoreFunc) Score(i, j int) float64 { return f(i, j) }

// Step describes the decision taken at grid cell (Row+1, Col+1).
// Row and Col index the row and column collections of the grid, which are
// swapped relative to the caller's source/target when Result.Swapped is set.
type Step struct {
	Row, Col int
	Raw      float64
	Move     Move
	// Reverted is set when a merge produced a lower score than the better
	// neighbour and that neighbour was inherited instead. This keeps every
	// cell at least as high as its above, left and diagonal neighbours.
	Reverted bool
	Above    *Cell
	Left     *Cell
	Diag     *Cell
	Cell     *Cell
}

// Options configures optional hooks of an alignment run.
type Options struct {
	// Trace, when set, receives every cell decision in row-major order.
	Trace func(Step)
	// Progress, when set, is called after each completed grid row.
	Progress func(done, total int)
}

// Pair is one proposed source/target correspondence.
type Pair struct {
	Source int
	Target int
	Score  float64
}

// Result is the assignment extracted from the final grid cell.
type Result struct {
	Pairs   []Pair
	Swapped bool
	Total   float64
}

// Align computes the best assignment between sources source articles and
// targets target articles. The smaller side becomes the grid's row dimension;
// pairs are always reported as (source, target), sorted by source index.
func Align(sources, targets int, scorer Scorer, opts Options) Result {
	if sources <= 0 || targets <= 0 || scorer == nil {
		return Result{}
	}

	swapped := sources > targets
	rows, cols := sources, targets
	score := scorer.Score
	if swapped {
		rows, cols = targets, sources
		score = func(r, c int) float64 { return scorer.Score(c, r) }
	}

	final := solve(rows, cols, score, opts)

	res := Result{Swapped: swapped, Total: final.score}
	res.Pairs = make([]Pair, 0, final.Len())
	for _, row := range final.Rows() {
		a := final.forward[row]
		p := Pair{Source: row, Target: a.Col, Score: a.Score}
		if swapped {
			p.Source, p.Target = a.Col, row
		}
		res.Pairs = append(res.Pairs, p)
	}
	sort.Slice(res.Pairs, func(i, j int) bool { return res.Pairs[i].Source < res.Pairs[j].Source })
	return res
}

// solve runs the DP keeping only the previous and current grid rows.
func solve(rows, cols int, score func(r, c int) float64, opts Options) *Cell {
	prev := make([]*Cell, cols+1)
	cur := make([]*Cell, cols+1)
	for j := range prev {
		prev[j] = emptyCell
	}

	for i := 0; i < rows; i++ {
		cur[0] = emptyCell
		for j := 0; j < cols; j++ {
			above, left, diag := prev[j+1], cur[j], prev[j]
			raw := math.Max(0, score(i, j))
			take := diag.score + raw

			mv := DecideMove(above.score, left.score, diag.score, take)
			reverted := false
			var next *Cell
			switch mv {
			case MoveMerge:
				next, reverted = mergeOrInherit(above, left)
			case MoveAbove:
				next = above
			case MoveLeft:
				next = left
			default:
				next = diag.extend(i, j, raw)
			}
			cur[j+1] = next

			if opts.Trace != nil {
				opts.Trace(Step{
					Row: i, Col: j, Raw: raw, Move: mv, Reverted: reverted,
					Above: above, Left: left, Diag: diag, Cell: next,
				})
			}
		}
		prev, cur = cur, prev
		if opts.Progress != nil {
			opts.Progress(i+1, rows)
		}
	}
	return prev[cols]
}

// mergeOrInherit merges left into above unless the greedy fold scores below
// the better neighbour, in which case that neighbour is returned and reverted
// is true. Cell scores therefore never decrease along a forward path.
func mergeOrInherit(above, left *Cell) (merged *Cell, reverted bool) {
	merged = Merge(above, left)
	if best := pickBetter(above, left); merged.score < best.score {
		return best, true
	}
	return merged, false
}

func pickBetter(above, left *Cell) *Cell {
	if above.score >= left.score {
		return above
	}
	return left
}
