// Package library builds a normalized inventory of a music volume.
// The scanner walks the volume, extracts (artist, title, album)
// descriptors from file tags with filename fallbacks, and normalizes
// them into the comparison form the matcher works on.
package library

// Track is a normalized descriptor of one library file.
type Track struct {
	Path   string
	Artist string
	Title  string
	Album  string

	// Order is the position in scan order. Walk order is lexical per
	// directory, so it is stable across runs with unchanged input and
	// serves as the deterministic tie-break during matching.
	Order int

	// Normalized comparison keys, computed once at scan time.
	NormArtist string
	NormTitle  string
}

// NewTrack builds a Track with its normalized keys populated.
func NewTrack(path, artist, title, album string, order int) Track {
	return Track{
		Path:       path,
		Artist:     artist,
		Title:      title,
		Album:      album,
		Order:      order,
		NormArtist: Normalize(artist),
		NormTitle:  Normalize(title),
	}
}

// Inventory is a snapshot of the library volume at scan time.
// It is either complete or discarded; the engine never diffs against
// a partially built inventory.
type Inventory struct {
	Tracks []Track

	// Errors holds per-file scan failures. They are reported as a
	// batch summary and never abort the scan.
	Errors []error
}
