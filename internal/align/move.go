package align

import "fmt"

// Move is the transition chosen for one DP cell.
type Move uint8

const (
	// MoveMerge reconciles the assignments of the upper and left neighbours.
	MoveMerge Move = iota + 1
	// MoveAbove inherits the upper neighbour unchanged.
	MoveAbove
	// MoveLeft inherits the left neighbour unchanged.
	MoveLeft
	// MoveDiagonal extends the diagonal neighbour with the current pair.
	MoveDiagonal
)

func (m Move) String() string {
	switch m {
	case MoveMerge:
		return "merge"
	case MoveAbove:
		return "above"
	case MoveLeft:
		return "left"
	case MoveDiagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}

// DecideMove picks the transition for a cell from its neighbour scores and the
// score of extending the diagonal (diag + raw). Ties resolve in the order
// merge, above, left, diagonal.
func DecideMove(above, left, diag, take float64) Move {
	switch {
	case above >= take && left >= take && above != diag && left != diag:
		return MoveMerge
	case above >= take && above >= left:
		return MoveAbove
	case left >= take:
		return MoveLeft
	default:
		return MoveDiagonal
	}
}
