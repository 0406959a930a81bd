package align

import "sort"

// Assignment links a row to a column with the pairwise score that justified it.
type Assignment struct {
	Col   int
	Score float64
}

// Cell is the DP state at one grid position. Its maps are never mutated after
// the cell is returned by a constructor, so cells may share them.
type Cell struct {
	score   float64
	forward map[int]Assignment
	reverse map[int]int
}

var emptyCell = &Cell{}

// Score returns the cumulative objective value of the cell.
func (c *Cell) Score() float64 { return c.score }

// Len returns the number of assignments held by the cell.
func (c *Cell) Len() int { return len(c.forward) }

// Lookup returns the assignment of row, if any.
func (c *Cell) Lookup(row int) (Assignment, bool) {
	a, ok := c.forward[row]
	return a, ok
}

// Owner returns the row currently holding col, if any.
func (c *Cell) Owner(col int) (int, bool) {
	row, ok := c.reverse[col]
	return row, ok
}

// Rows returns the assigned rows in ascending order.
func (c *Cell) Rows() []int {
	rows := make([]int, 0, len(c.forward))
	for row := range c.forward {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Consistent reports whether the reverse map is the exact inverse of the
// forward map.
func (c *Cell) Consistent() bool {
	if len(c.forward) != len(c.reverse) {
		return false
	}
	for row, a := range c.forward {
		if owner, ok := c.reverse[a.Col]; !ok || owner != row {
			return false
		}
	}
	return true
}

// clone returns a mutable deep copy used as the seed of a new cell.
func (c *Cell) clone() *Cell {
	out := &Cell{
		score:   c.score,
		forward: make(map[int]Assignment, len(c.forward)+1),
		reverse: make(map[int]int, len(c.reverse)+1),
	}
	for row, a := range c.forward {
		out.forward[row] = a
	}
	for col, row := range c.reverse {
		out.reverse[col] = row
	}
	return out
}

// extend returns a copy of c with row assigned to col.
func (c *Cell) extend(row, col int, score float64) *Cell {
	out := c.clone()
	out.forward[row] = Assignment{Col: col, Score: score}
	out.reverse[col] = row
	out.score = c.score + score
	return out
}

// install assigns row to a in place, releasing row's previous column and
// evicting whichever other row held a.Col.
func (c *Cell) install(row int, a Assignment) {
	if prev, ok := c.forward[row]; ok {
		delete(c.reverse, prev.Col)
	}
	if keep, ok := c.reverse[a.Col]; ok && keep != row {
		delete(c.forward, keep)
	}
	c.forward[row] = a
	c.reverse[a.Col] = row
}

func (c *Cell) recomputeScore() {
	var total float64
	for _, a := range c.forward {
		total += a.Score
	}
	c.score = total
}
