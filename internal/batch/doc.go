// Package batch runs the aligner and classifier over large collections.
//
// The source side is cut into fixed-size windows; every window is aligned
// against the whole target collection. Windows run in parallel on an errgroup
// and their labeled alignments are merged and deduplicated so each target
// article is claimed at most once. Books of a multi-book input are processed
// independently through the same machinery.
package batch
