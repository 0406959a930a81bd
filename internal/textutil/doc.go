// Package textutil provides the text primitives shared by the scorers:
// tokenization, numeric-token extraction, term-frequency fingerprints with
// corpus IDF weighting, and cosine similarity.
//
// The primary use cases are:
//   - Building TF-IDF fingerprints for a batch of articles to detect
//     comparable (same topic) pairs
//   - Extracting the set of numbers mentioned in an article
//
// Tokenization applies NFC normalization and Unicode lower-casing, splits on
// anything that is not a letter, digit or underscore, and drops single-rune
// tokens. IDF uses the smoothed form ln((N+1)/(df+1)) + 1 so terms present in
// every document still carry weight.
package textutil
