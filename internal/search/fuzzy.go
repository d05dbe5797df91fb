package search

import (
	"strings"
	"unicode/utf8"
)

// minFuzzyFilterLen is the shortest filter eligible for the fuzzy fallback.
// Shorter filters match almost anything within the distance bound.
const minFuzzyFilterLen = 4

// Levenshtein returns the classic edit distance between a and b, where
// substitution, insertion and deletion each cost 1. Operates on runes.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	// Two-row DP.
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(br)]
}

// FuzzyMatch reports whether text matches filter approximately. Literal
// containment always matches. Otherwise filters shorter than four runes
// never match, and longer ones match when the whole-string edit distance
// stays within floor(len(filter)/5)+1. Both inputs are expected to be
// lowercased already.
//
// Because the distance is computed over the entire text, fuzzy matching is
// only effective for near-length strings such as name typos; it is a weak
// tool for long message bodies.
func FuzzyMatch(text, filter string) bool {
	if strings.Contains(text, filter) {
		return true
	}
	n := utf8.RuneCountInString(filter)
	if n < minFuzzyFilterLen {
		return false
	}
	return Levenshtein(text, filter) <= n/5+1
}
