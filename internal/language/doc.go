// Package language normalizes the language codes recorded in link groups.
//
// Configuration accepts ISO 639-1, ISO 639-2 (including bibliographic
// variants such as "ger") and English language names; everything is reduced
// to the short base code the link-group lang attribute expects.
package language
