// Package article models the segmented input of the aligner: articles made of
// sentences, ordered collections of articles, and books that group one
// collection per periodical issue.
//
// Articles are addressed purely by their position inside a Collection. The
// first sentence of every article carries its identifier (the origin file
// name) and is excluded from any text comparison; Body returns the remainder.
//
// The plain-text reader understands the segmentation format produced by the
// upstream extraction step: books separated by ".EOB" markers, articles by
// ".EOA" markers, one sentence per line, and the book file name on the first
// line of each book.
package article
