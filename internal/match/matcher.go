package match

import (
	"strings"

	"github.com/llehouerou/wantlist/internal/library"
	"github.com/llehouerou/wantlist/internal/wantlist"
)

// Status is the resolution state of one wanted entry.
type Status int

const (
	Unmatched Status = iota
	Matched
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unmatched"
	}
}

// Record is the resolution of one wanted entry against the inventory.
// Ambiguous records still carry the tie-break winner as Library; the
// flag only signals that a runner-up scored within epsilon.
type Record struct {
	Wanted  wantlist.Entry
	Library *library.Track
	Score   float64
	Status  Status

	// Nearest holds the best candidate below threshold for unmatched
	// entries, for the near-miss report.
	Nearest      *library.Track
	NearestScore float64
}

// Matcher resolves wanted entries against an inventory snapshot.
type Matcher struct {
	// Threshold is the minimum combined score for a match; a pair
	// scoring exactly at the threshold is accepted.
	Threshold float64
	// Epsilon is the score delta below which two distinct candidates
	// at or above threshold are too close to call confidently.
	Epsilon float64
}

// Score combines per-field similarities for a wanted/library pair.
// With both artist fields present, title and artist are scored
// independently and combined by weight; otherwise the descriptors are
// compared as single joined strings, which keeps tagless files
// matchable at lower confidence.
func (m *Matcher) Score(w wantlist.Entry, t *library.Track) float64 {
	if w.NormArtist != "" && t.NormArtist != "" {
		return titleWeight*fieldScore(w.NormTitle, t.NormTitle) +
			artistWeight*fieldScore(w.NormArtist, t.NormArtist)
	}
	return fieldScore(joined(w.NormArtist, w.NormTitle), joined(t.NormArtist, t.NormTitle))
}

// Match resolves every wanted entry, in list order, to at most one
// library file. A library file is claimed by at most one entry; ties
// go to the higher score, then to the earlier scan order, so the
// outcome is deterministic for unchanged input.
func (m *Matcher) Match(entries []wantlist.Entry, inv *library.Inventory) []Record {
	claimed := make(map[int]bool, len(entries))
	records := make([]Record, 0, len(entries))

	for _, w := range entries {
		rec := Record{Wanted: w, Status: Unmatched}

		best, runnerUp := -1, -1
		var bestScore, runnerUpScore float64
		for i := range inv.Tracks {
			if claimed[i] {
				continue
			}
			score := m.Score(w, &inv.Tracks[i])
			switch {
			case score > bestScore || best < 0:
				// Strict > keeps the earliest candidate on exact ties.
				runnerUp, runnerUpScore = best, bestScore
				best, bestScore = i, score
			case runnerUp < 0 || score > runnerUpScore:
				runnerUp, runnerUpScore = i, score
			}
		}

		switch {
		case best >= 0 && bestScore >= m.Threshold:
			rec.Library = &inv.Tracks[best]
			rec.Score = bestScore
			rec.Status = Matched
			if runnerUp >= 0 && runnerUpScore >= m.Threshold && bestScore-runnerUpScore <= m.Epsilon {
				rec.Status = Ambiguous
			}
			claimed[best] = true
		case best >= 0:
			rec.Nearest = &inv.Tracks[best]
			rec.NearestScore = bestScore
		}

		records = append(records, rec)
	}
	return records
}

func joined(artist, title string) string {
	return strings.TrimSpace(artist + " " + title)
}
