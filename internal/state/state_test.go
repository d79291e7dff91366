package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wantlist/internal/library"
	"github.com/llehouerou/wantlist/internal/match"
	"github.com/llehouerou/wantlist/internal/wantlist"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func record(line int, artist, title, path string, status match.Status, score float64) match.Record {
	r := match.Record{
		Wanted: wantlist.Entry{
			Line:       line,
			Raw:        artist + " - " + title,
			Artist:     artist,
			Title:      title,
			NormArtist: library.Normalize(artist),
			NormTitle:  library.Normalize(title),
		},
		Score:  score,
		Status: status,
	}
	if path != "" {
		r.Library = &library.Track{Path: path}
	}
	return r
}

func TestReplaceInitialPass(t *testing.T) {
	s, _ := openStore(t)

	diff, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
		record(2, "Beyonce", "Halo", "/music/b.flac", match.Matched, 1),
		record(3, "Nobody", "Nothing", "", match.Unmatched, 0),
	})
	require.NoError(t, err)

	assert.Len(t, diff.Matched, 2)
	// An entry that was never matched is not "newly unmatched".
	assert.Empty(t, diff.Unmatched)
	assert.Empty(t, diff.Moved)
	assert.Empty(t, diff.Ambiguous)

	assert.Len(t, s.Current().Records, 3)
}

func TestReplaceUnchangedIsEmpty(t *testing.T) {
	s, _ := openStore(t)

	records := []match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
		record(2, "Nobody", "Nothing", "", match.Unmatched, 0),
	}

	_, err := s.Replace(records)
	require.NoError(t, err)

	diff, err := s.Replace(records)
	require.NoError(t, err)
	assert.True(t, diff.Empty())
}

func TestReplaceNewlyUnmatched(t *testing.T) {
	s, _ := openStore(t)

	_, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
	})
	require.NoError(t, err)

	// The file disappeared from the library between passes.
	diff, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "", match.Unmatched, 0),
	})
	require.NoError(t, err)

	require.Len(t, diff.Unmatched, 1)
	assert.Equal(t, 1, diff.Unmatched[0].Wanted.Line)
	assert.Empty(t, diff.Matched)
}

func TestReplaceMoved(t *testing.T) {
	s, _ := openStore(t)

	_, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
	})
	require.NoError(t, err)

	diff, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/relocated/a.mp3", match.Matched, 0.97),
	})
	require.NoError(t, err)

	require.Len(t, diff.Moved, 1)
	assert.Equal(t, "/music/relocated/a.mp3", diff.Moved[0].Library.Path)
	assert.Empty(t, diff.Matched)
	assert.Empty(t, diff.Unmatched)
}

func TestReplaceEditedLineIsNewEntry(t *testing.T) {
	s, _ := openStore(t)

	_, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
	})
	require.NoError(t, err)

	// Same line number, different raw text: the old entry drops
	// silently, the new one counts as fresh.
	diff, err := s.Replace([]match.Record{
		record(1, "Queen", "Somebody to Love", "/music/c.mp3", match.Matched, 0.95),
	})
	require.NoError(t, err)

	assert.Len(t, diff.Matched, 1)
	assert.Empty(t, diff.Unmatched)
	assert.Empty(t, diff.Moved)
}

func TestReplaceAmbiguousTransition(t *testing.T) {
	s, _ := openStore(t)

	_, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
	})
	require.NoError(t, err)

	diff, err := s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Ambiguous, 0.97),
	})
	require.NoError(t, err)

	require.Len(t, diff.Ambiguous, 1)
	// Still resolved to the same file, so nothing matched or moved.
	assert.Empty(t, diff.Matched)
	assert.Empty(t, diff.Moved)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
		record(2, "Nobody", "Nothing", "", match.Unmatched, 0),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records := reopened.Current().Records
	require.Len(t, records, 2)
	assert.Equal(t, "Queen", records[0].Wanted.Artist)
	assert.Equal(t, match.Matched, records[0].Status)
	require.NotNil(t, records[0].Library)
	assert.Equal(t, "/music/a.mp3", records[0].Library.Path)
	assert.Equal(t, "queen", records[0].Wanted.NormArtist)
	assert.Nil(t, records[1].Library)

	// Replaying the same match set after a restart must not look like
	// a change.
	diff, err := reopened.Replace([]match.Record{
		record(1, "Queen", "Bohemian Rhapsody", "/music/a.mp3", match.Matched, 0.97),
		record(2, "Nobody", "Nothing", "", match.Unmatched, 0),
	})
	require.NoError(t, err)
	assert.True(t, diff.Empty())
}
