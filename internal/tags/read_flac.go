package tags

import (
	"errors"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

var errNoVorbisComment = errors.New("no vorbis comment block")

// readFLACVorbisComments reads Vorbis comments directly when dhowden/tag fails.
func readFLACVorbisComments(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, err
		}
		return &Tag{
			Path:   path,
			Title:  firstComment(cmts, flacvorbis.FIELD_TITLE),
			Artist: firstComment(cmts, flacvorbis.FIELD_ARTIST),
			Album:  firstComment(cmts, flacvorbis.FIELD_ALBUM),
		}, nil
	}

	return nil, errNoVorbisComment
}

func firstComment(cmts *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmts.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}
