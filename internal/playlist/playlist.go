// Package playlist writes the playlist artifacts derived from the
// match state: an M3U of every wanted track currently present in the
// library, and a near-miss report for the rest.
package playlist

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/wantlist/internal/match"
	"github.com/llehouerou/wantlist/internal/state"
)

const (
	playlistName = "wanted.m3u"
	reportName   = "unmatched.txt"
)

// Writer emits playlist artifacts into a directory.
type Writer struct {
	Dir string
	Log *slog.Logger
}

// NewWriter returns a writer that emits into dir.
func NewWriter(dir string, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{Dir: dir, Log: log}
}

// Emit rewrites the playlist and the unmatched report from the full
// state of a completed pass. The engine only calls it when the diff is
// non-empty, so unchanged match sets never touch the files.
func (w *Writer) Emit(st state.State, diff state.Diff) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	if err := w.writePlaylist(st.Records); err != nil {
		return err
	}
	if err := w.writeReport(st.Records); err != nil {
		return err
	}

	for _, rec := range diff.Ambiguous {
		w.Log.Warn("ambiguous match, picked earliest scan order",
			"wanted", rec.Wanted.Raw,
			"picked", rec.Library.Path,
			"score", rec.Score,
		)
	}
	return nil
}

// writePlaylist writes the M3U of all currently matched tracks.
func (w *Writer) writePlaylist(records []match.Record) error {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, rec := range records {
		if rec.Status == match.Unmatched {
			continue
		}
		fmt.Fprintf(&b, "#EXTINF:-1,%s - %s\n", rec.Wanted.Artist, rec.Wanted.Title)
		b.WriteString(rec.Library.Path)
		b.WriteByte('\n')
	}
	return writeAtomic(filepath.Join(w.Dir, playlistName), b.String())
}

// writeReport writes the near-miss report for unmatched entries.
func (w *Writer) writeReport(records []match.Record) error {
	var b strings.Builder
	b.WriteString("WANTED TRACKS NOT FOUND\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for _, rec := range records {
		if rec.Status != match.Unmatched {
			continue
		}
		fmt.Fprintf(&b, "%s\n", rec.Wanted.Raw)
		if rec.Nearest != nil {
			fmt.Fprintf(&b, "  closest: %s\n", rec.Nearest.Path)
			fmt.Fprintf(&b, "  tagged:  %s - %s\n", rec.Nearest.Artist, rec.Nearest.Title)
			fmt.Fprintf(&b, "  score:   %.2f\n", rec.NearestScore)
		} else {
			b.WriteString("  no candidate found\n")
		}
		b.WriteByte('\n')
	}
	return writeAtomic(filepath.Join(w.Dir, reportName), b.String())
}

// writeAtomic writes via a temp file and rename so readers never see
// a partially written playlist.
func writeAtomic(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
