package library

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"Abbey Road", "abbey road"},
		{"THRILLER", "thriller"},

		// Diacritics fold to base letters
		{"Beyoncé", "beyonce"},
		{"Björk", "bjork"},
		{"Sigur Rós", "sigur ros"},
		{"Café Tacvba", "cafe tacvba"},

		// Bracketed qualifiers are separated, not glued or dropped
		{"Bohemian Rhapsody (Remastered 2011)", "bohemian rhapsody remastered 2011"},
		{"Song Title [Live]", "song title live"},

		// Word-separating punctuation becomes a space
		{"AC/DC", "ac dc"},
		{"Under_Score", "under score"},
		{"Hyphen-Ated", "hyphen ated"},
		{"Simon & Garfunkel", "simon garfunkel"},

		// Decorating punctuation is dropped without a space
		{"What's Going On", "whats going on"},
		{"P!nk", "pnk"},
		{"Guns N' Roses", "guns n roses"},

		// Whitespace normalization
		{"  Multiple   Spaces  ", "multiple spaces"},

		// Text with nothing to fold passes through lowercased
		{"日本語", "日本語"},

		// Edge cases
		{"", ""},
		{"   ", ""},
		{"...", ""},
		{"(!!!)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"...",
		"Beyoncé",
		"Bohemian Rhapsody (Remastered 2011)",
		"AC/DC",
		"What's Going On",
		"  Multiple   Spaces  ",
		"日本語",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
