package align

import "sort"

// Merge seeds a new cell with above's assignments and folds in left's.
//
// Left's rows are visited in descending order. For each row the left
// assignment replaces the current one only when the row is unassigned or the
// left score is strictly higher. If the left column is already held by another
// row, the left assignment wins when its score is not lower than the holder's;
// otherwise the current cell is left untouched for that row. The resulting
// score is the sum of the surviving assignment scores.
func Merge(above, left *Cell) *Cell {
	current := above.clone()

	rows := make([]int, 0, len(left.forward))
	for row := range left.forward {
		rows = append(rows, row)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))

	for _, row := range rows {
		candidate := left.forward[row]
		if candidate.Col < 0 {
			continue
		}
		existing, has := current.forward[row]
		if has && existing == candidate {
			continue
		}
		if has && candidate.Score <= existing.Score {
			continue
		}
		if keep, claimed := current.Owner(candidate.Col); claimed && keep != row {
			if candidate.Score < current.forward[keep].Score {
				continue
			}
		}
		current.install(row, candidate)
	}

	current.recomputeScore()
	return current
}
