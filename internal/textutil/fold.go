// Package textutil normalizes identifiers and free text before comparison.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spaces      = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// NormalizeKey canonicalizes a role or case id: trimmed and uppercased.
func NormalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StripAccents decomposes s (NFKD) and drops every non-ASCII rune left over.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases, strips accents and collapses whitespace.
func Fold(s string) string {
	s = StripAccents(strings.ToLower(s))
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// FoldText is Fold plus punctuation removal; punctuation becomes a word break.
func FoldText(s string) string {
	s = punctuation.ReplaceAllString(Fold(s), " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
