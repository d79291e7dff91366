// Package tags provides tag reading for music files.
// It consolidates metadata extraction for the container formats the
// scanner recognizes, with format-specific fallbacks for files that
// the generic reader cannot parse.
package tags

import (
	"path/filepath"
	"strings"
)

// File extensions recognized as audio containers.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Tag contains the tag metadata relevant to track matching.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string
}

// Empty reports whether the tag carries no usable text.
func (t *Tag) Empty() bool {
	return t.Title == "" && t.Artist == ""
}

// IsMusicFile reports whether the path has a recognized audio extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}
