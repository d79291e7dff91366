package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads ID3v2 tags directly when dhowden/tag fails.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	return &Tag{
		Path:   path,
		Title:  id3tag.Title(),
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
	}, nil
}
