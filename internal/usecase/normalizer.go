package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// Keeps lowercase letters, digits, whitespace, and the symbols needed by
	// downstream numeric comparison: decimal points, hyphens, percent signs
	disallowedCharsRegex = regexp.MustCompile(`[^a-z0-9\s.\-%]`)

	// Multiple whitespace cleanup
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw text for comparison. OCR output is noisy
// (random casing, stray punctuation, inconsistent spacing), so both sides of
// every comparison are converged onto the same alphabet: lowercase, only
// [a-z0-9 .-%] retained, whitespace runs collapsed to a single space,
// leading/trailing whitespace trimmed.
//
// Normalize always succeeds and is idempotent; empty input yields "".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ToLower(raw)
	text = disallowedCharsRegex.ReplaceAllString(text, "")
	text = whitespaceRunRegex.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
