package state

import (
	"github.com/llehouerou/wantlist/internal/match"
)

// Diff is the structural comparison between two successive states,
// keyed by wanted-entry identity (line number plus raw text, so an
// edited line counts as a new entry rather than a transition).
type Diff struct {
	// Matched holds entries that newly resolved to a library file.
	Matched []match.Record
	// Unmatched holds entries that were matched before and are not
	// anymore (file deleted, retagged below threshold, or entry
	// rewritten).
	Unmatched []match.Record
	// Moved holds entries still matched but to a different file.
	Moved []match.Record
	// Ambiguous holds entries newly flagged as too close to call.
	Ambiguous []match.Record
}

// Empty reports whether the match set is unchanged; playlists are
// only rewritten when it is not.
func (d Diff) Empty() bool {
	return len(d.Matched) == 0 && len(d.Unmatched) == 0 &&
		len(d.Moved) == 0 && len(d.Ambiguous) == 0
}

type recordKey struct {
	line int
	raw  string
}

func computeDiff(old, cur []match.Record) Diff {
	prev := make(map[recordKey]match.Record, len(old))
	for _, r := range old {
		prev[recordKey{r.Wanted.Line, r.Wanted.Raw}] = r
	}

	var d Diff
	for _, r := range cur {
		key := recordKey{r.Wanted.Line, r.Wanted.Raw}
		before, existed := prev[key]

		nowMatched := r.Status != match.Unmatched
		wasMatched := existed && before.Status != match.Unmatched

		switch {
		case nowMatched && !wasMatched:
			d.Matched = append(d.Matched, r)
		case nowMatched && wasMatched && r.Library.Path != before.Library.Path:
			d.Moved = append(d.Moved, r)
		case !nowMatched && wasMatched:
			d.Unmatched = append(d.Unmatched, r)
		}

		if r.Status == match.Ambiguous && (!existed || before.Status != match.Ambiguous) {
			d.Ambiguous = append(d.Ambiguous, r)
		}
	}

	// Entries removed from the wanted list drop silently; the operator
	// deleted them, there is nothing newly missing to report.
	return d
}
