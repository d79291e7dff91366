package library

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Separator patterns recognized in "Artist - Title" style filenames,
// tried in order.
var filenameSeparators = []string{" - ", " – ", " — ", "_-_"}

var trackNumberPrefixRe = regexp.MustCompile(`^\d{1,3}[ .\-_]+`)

// ParseFilename derives an (artist, title) pair from a file name when
// tags are missing or unreadable. A leading track number is dropped.
// When no recognized separator is present, artist is empty and the
// whole base name is returned as title so the file stays matchable.
func ParseFilename(path string) (artist, title string) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = trackNumberPrefixRe.ReplaceAllString(base, "")
	base = strings.TrimSpace(base)

	for _, sep := range filenameSeparators {
		if idx := strings.Index(base, sep); idx > 0 {
			return strings.TrimSpace(base[:idx]), strings.TrimSpace(base[idx+len(sep):])
		}
	}
	return "", base
}
