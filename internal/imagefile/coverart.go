package imagefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ErrNoPicture is returned for audio files without embedded cover art.
var ErrNoPicture = errors.New("no embedded picture")

// Audio file extensions whose tags may carry a cover picture.
const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extM4A  = ".m4a"
	extMP4  = ".mp4"
	extOGG  = ".ogg"
	extOPUS = ".opus"
)

// IsAudioFile reports whether path names an audio file by extension.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extM4A, extMP4, extOGG, extOPUS:
		return true
	}
	return false
}

// ExtractCoverArt reads the embedded cover picture of an audio file.
func ExtractCoverArt(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, ErrNoPicture
	}
	return pic.Data, nil
}
