package library

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a tag or filename fragment for comparison by:
// - Converting to lowercase
// - Folding diacritics to base letters
// - Separating bracketed qualifiers like "(Remastered 2011)" from the rest
// - Dropping remaining punctuation
// - Normalizing whitespace
//
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = foldDiacritics(s)

	var b strings.Builder
	b.Grow(len(s))
	lastWasSpace := true // true trims leading separators

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r) || isSeparator(r):
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
			// Other punctuation is dropped without leaving a space,
			// so "don't" and "dont" compare equal.
		}
	}

	return strings.TrimSpace(b.String())
}

// isSeparator reports whether the rune splits words rather than
// decorating one. Brackets separate qualifiers such as "(remaster)"
// instead of gluing them to the adjacent word.
func isSeparator(r rune) bool {
	switch r {
	case '-', '_', '(', ')', '[', ']', '{', '}', '/', '&', '+':
		return true
	}
	return false
}

// foldDiacritics strips combining marks so accented letters compare
// equal to their base form. Text that cannot be transformed is kept
// as-is, lowercased only.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
