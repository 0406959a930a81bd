// Package bleu computes the BLEU-like translation quality score used as the
// weight of every aligner cell.
//
// Text is normalized the way NIST mteval-v11a does (hyphenation joins,
// punctuation split off, periods and commas kept inside numbers, lower
// casing). A reference is "cooked" once into clipped n-gram counts so the
// pair scorer can compare one translated article against many targets
// without re-tokenizing them.
//
// Score returns the geometric mean of the 1..N-gram precisions times a
// brevity penalty against the shortest reference; it is 0 whenever some
// n-gram order has no match at all.
package bleu
