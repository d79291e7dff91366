// Package match scores wanted-track descriptors against library
// inventory descriptors and resolves each wanted entry to at most one
// library file.
package match

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Scoring weights. Title drives identification, so it dominates the
// combined score when both fields are available.
const (
	titleWeight  = 0.8
	artistWeight = 0.2
)

// TokenSetRatio compares two normalized strings by their word sets,
// independent of word order. The shared tokens are compared against
// each side's full token string, so "the artist" matches "artist the"
// exactly, and a title that merely carries an extra qualifier
// ("... remastered 2011") still scores 1 against the bare title.
func TokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared = append(shared, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	fullA := joinTokens(base, onlyA)
	fullB := joinTokens(base, onlyB)

	best := EditRatio(fullA, fullB)
	if base != "" {
		best = max(best, EditRatio(base, fullA), EditRatio(base, fullB))
	}
	return best
}

// EditRatio is the normalized Levenshtein similarity between two
// strings, in [0,1]. It catches small typos and transliteration
// differences that token overlap misses.
func EditRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	return strutil.Similarity(a, b, levenshtein())
}

func levenshtein() *metrics.Levenshtein {
	m := metrics.NewLevenshtein()
	m.CaseSensitive = false
	m.InsertCost = 1
	m.DeleteCost = 1
	m.ReplaceCost = 1
	return m
}

// fieldScore scores one field pair as the better of the two ratios:
// token overlap catches reordering and qualifiers, edit distance
// catches typos.
func fieldScore(a, b string) float64 {
	return max(TokenSetRatio(a, b), EditRatio(a, b))
}

// tokenSet splits a normalized string into its set of words.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func joinTokens(base string, rest []string) string {
	if len(rest) == 0 {
		return base
	}
	return strings.TrimSpace(base + " " + strings.Join(rest, " "))
}
