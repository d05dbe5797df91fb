package textutil

import "strings"

// NormalizeSpaces strips zero-width characters, collapses whitespace runs
// to single spaces, and trims. Chat exports pad message text with BOMs and
// zero-width joiners that would otherwise defeat exact matching.
func NormalizeSpaces(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\uFEFF', '\u200B', '\u200C':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
