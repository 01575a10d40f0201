package usecase

import (
	"log"
	"strings"

	"github.com/labellens/backend/internal/domain"
)

// MatcherConfig holds configuration for the similarity matcher
type MatcherConfig struct {
	EnableFuzzyMatching bool
	EnableDebugLogging  bool
}

// Matcher performs tolerant comparison of normalized strings: an
// edit-distance similarity ratio plus a substring/containment check that
// handles label text surrounded by unrelated OCR noise.
type Matcher struct {
	enableFuzzyMatching bool
	enableDebugLogging  bool
}

// NewMatcher creates a new similarity matcher with the given configuration
func NewMatcher(config MatcherConfig) *Matcher {
	return &Matcher{
		enableFuzzyMatching: config.EnableFuzzyMatching,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// Similarity computes a normalized edit-distance ratio in [0,1].
// Identical strings score 1.0, completely disjoint strings score near 0.
// The ratio is symmetric: Similarity(a, b) == Similarity(b, a).
func (m *Matcher) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}

	dist := levenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// Classify maps a similarity score to a verdict status. The threshold is an
// inclusive lower bound: a score exactly at the threshold is a match.
func (m *Matcher) Classify(score, threshold float64) domain.Status {
	if score >= threshold {
		return domain.StatusMatch
	}
	return domain.StatusMismatch
}

// Score computes how strongly needle is evidenced inside haystack, both
// already normalized.
//
// Exact containment (either direction, for short OCR text) scores 1.0
// regardless of the edit-distance ratio. Otherwise the needle is compared
// against every window of consecutive haystack words of the same word count,
// and against the whole haystack, returning the best ratio. The windowing
// keeps unrelated OCR noise around the target phrase from depressing the
// score.
func (m *Matcher) Score(haystack, needle string) float64 {
	score, _ := m.BestWindow(haystack, needle)
	return score
}

// BestWindow is Score plus the haystack phrase that produced the best ratio,
// for use as verdict evidence
func (m *Matcher) BestWindow(haystack, needle string) (float64, string) {
	if haystack == "" || needle == "" {
		return 0.0, ""
	}

	if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
		if m.enableDebugLogging {
			log.Printf("[MATCH] exact containment for %q", needle)
		}
		return 1.0, needle
	}

	best := m.Similarity(haystack, needle)
	bestPhrase := haystack

	if m.enableFuzzyMatching {
		words := strings.Fields(haystack)
		needleWords := strings.Fields(needle)
		windowLen := len(needleWords)

		for i := 0; i+windowLen <= len(words); i++ {
			phrase := strings.Join(words[i:i+windowLen], " ")
			if ratio := m.Similarity(phrase, needle); ratio > best {
				best = ratio
				bestPhrase = phrase
				if m.enableDebugLogging {
					log.Printf("[MATCH] window %q vs %q ratio %.2f", phrase, needle, ratio)
				}
			}
		}
	}

	return best, bestPhrase
}

// Contains reports whether needle is evidenced in haystack at or above the
// given threshold
func (m *Matcher) Contains(haystack, needle string, threshold float64) bool {
	return m.Classify(m.Score(haystack, needle), threshold) == domain.StatusMatch
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
