// Package classify labels aligner candidates as parallel or comparable.
//
// A candidate passes through a cascade and stops at the first stage that
// accepts it:
//  1. BLEU above Policy.ParallelBLEU with enough shared numbers -> parallel
//  2. weighted length/number similarity above Policy.CompositeMin -> parallel
//  3. TF-IDF cosine above Policy.ComparableMin -> comparable
//
// Candidates rejected by all three stages are dropped. Every score computed on
// the way is kept on the Decision so results can be audited later.
//
// The TF-IDF model is fitted per batch on the batch's translated-source and
// target articles; a Classifier must not be shared between batches.
package classify
