// Package align finds an order-preserving but crossing-tolerant one-to-one
// mapping between two article collections.
//
// The aligner is a weighted LCS-style dynamic program over an (n+1)x(m+1)
// grid. Each cell holds the best cumulative score reachable at that point
// together with the partial assignment (row -> column) that produced it.
// Cells are immutable once built: taking a neighbour shares its maps, and only
// extending the diagonal or merging two neighbours allocates new ones.
//
// Per cell one Move is decided, in strict priority order merge, above, left,
// diagonal. The merge move folds the left neighbour's assignments into a copy
// of the upper neighbour with a greedy, descending-row conflict pass. That
// pass is a local approximation; it is not proven order independent when
// three or more claims overlap.
//
// Only two grid rows are kept in memory at a time. Callers that need to
// inspect every cell can register a Trace hook.
package align
