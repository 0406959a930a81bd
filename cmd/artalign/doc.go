// Package main hosts the artalign CLI entrypoint and command graph.
//
// The Cobra command tree reads segmented corpora, runs the article aligner,
// appends TEI link groups, and offers follow-up tooling over the produced
// files: link statistics, translation TSV export, evaluation sampling, run
// history, and configuration scaffolding.
//
// Keep this package lean: alignment, persistence and file formats live in
// internal packages; commands only resolve configuration, wire those pieces
// together and render results.
package main
