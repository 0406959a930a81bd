// Package config loads, normalizes, and validates artalign configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ARTALIGN_LOG_LEVEL and ARTALIGN_DB. The Config type centralizes every knob
// the aligner and CLI need: batch window, scorer settings, classification
// thresholds, output naming and the optional run history database.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
