package audio

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
)

// ErrNoLyricFrame is returned when an audio file carries no lyric frame.
var ErrNoLyricFrame = errors.New("no lyric frame in tag")

// Frame IDs holding lyrics.
const (
	FrameUnsyncedLyrics = "USLT"
	FrameSyncedLyrics   = "SYLT"
	FrameUserText       = "TXXX"
)

// userTextLyricDescriptions are TXXX descriptions some taggers use for lyrics.
var userTextLyricDescriptions = []string{"LYRICS", "UNSYNCEDLYRICS"}

// TagEditAction defines how to handle the lyrics frame when saving.
type TagEditAction int

const (
	// TagEmpty removes existing lyrics frames.
	TagEmpty TagEditAction = iota

	// TagModify replaces existing lyrics frames with the new lyrics.
	TagModify

	// TagDoNotModify leaves the existing lyrics frames unchanged.
	TagDoNotModify
)

// TagConfig holds the lyrics tagging configuration.
//
// Example:
//
//	cfg := &TagConfig{
//	    Lyrics:   TagModify, // Replace USLT frames
//	    Language: "eng",     // ISO-639-2 language code
//	}
type TagConfig struct {
	// Lyrics controls the USLT (Unsynchronised lyrics) frame.
	Lyrics TagEditAction

	// Language is the 3-letter language code written into the frame.
	Language string

	// Description is the content descriptor written into the frame.
	Description string
}

// DefaultTagConfig returns the default tag configuration: lyrics are
// replaced and written as English with an empty descriptor.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Lyrics:   TagModify,
		Language: "eng",
	}
}

// LyricFrame is one lyric candidate found in an ID3v2 tag.
//
// USLT and SYLT frames are returned as raw frame bodies in Body, to be
// decoded with DecodeFrameText. TXXX frames are already decoded by the tag
// reader and are returned as Lines instead.
type LyricFrame struct {
	ID    string
	Body  []byte
	Lines []string
}

// Tagger reads and writes lyric frames of MP3 files.
//
// Tagger uses the id3v2 library to access:
//   - USLT (unsynchronised lyrics) frames
//   - SYLT (synchronised lyrics) frames
//   - TXXX frames described as LYRICS or UNSYNCEDLYRICS
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	frames, err := tagger.LyricFrames("/music/song.mp3")
//	if err != nil {
//	    log.Printf("no embedded lyrics: %v", err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// LyricFrames returns every lyric candidate in the file's ID3v2 tag, in order
// of preference: USLT, SYLT, then TXXX.
//
// Returns ErrNoLyricFrame if the file has no such frame, or the error from
// opening the file.
func (t *Tagger) LyricFrames(path string) ([]LyricFrame, error) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{FrameUnsyncedLyrics, FrameSyncedLyrics, FrameUserText},
	})
	if err != nil {
		return nil, fmt.Errorf("open tag of %s: %w", path, err)
	}
	defer tag.Close()

	var frames []LyricFrame

	for _, id := range []string{FrameUnsyncedLyrics, FrameSyncedLyrics} {
		for _, framer := range tag.GetFrames(id) {
			var buf bytes.Buffer
			if _, err := framer.WriteTo(&buf); err != nil {
				continue
			}
			frames = append(frames, LyricFrame{ID: id, Body: buf.Bytes()})
		}
	}

	for _, framer := range tag.GetFrames(FrameUserText) {
		udtf, ok := framer.(id3v2.UserDefinedTextFrame)
		if !ok || !isLyricDescription(udtf.Description) {
			continue
		}
		frames = append(frames, LyricFrame{
			ID:    FrameUserText,
			Lines: strings.Split(strings.TrimRight(udtf.Value, "\x00"), "\x00"),
		})
	}

	if len(frames) == 0 {
		return nil, ErrNoLyricFrame
	}
	return frames, nil
}

// SaveLyrics writes lyrics into the MP3 file's USLT frame.
//
// This method:
//  1. Opens the existing MP3 file (files without a tag get a new one)
//  2. Removes or replaces the USLT frames based on TagConfig.Lyrics
//  3. Saves the modified tag to the file
//
// Returns an error if the file cannot be opened or saved.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveLyrics("/music/song.mp3", "[00:01.00]hello")
func (t *Tagger) SaveLyrics(path, lyrics string) error {
	if t.config.Lyrics == TagDoNotModify {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag of %s: %w", path, err)
	}
	defer tag.Close()

	t.updateLyrics(tag, lyrics)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tag of %s: %w", path, err)
	}
	return nil
}

// updateLyrics updates the USLT frames based on configuration.
func (t *Tagger) updateLyrics(tag *id3v2.Tag, lyrics string) {
	switch t.config.Lyrics {
	case TagEmpty:
		tag.DeleteFrames(FrameUnsyncedLyrics)
	case TagModify:
		tag.DeleteFrames(FrameUnsyncedLyrics)
		if lyrics != "" {
			tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
				Encoding:          id3v2.EncodingUTF8,
				Language:          t.language(),
				ContentDescriptor: t.config.Description,
				Lyrics:            lyrics,
			})
		}
	}
}

// language returns a valid 3-letter language code.
func (t *Tagger) language() string {
	if len(t.config.Language) != 3 {
		return "eng"
	}
	return t.config.Language
}

func isLyricDescription(desc string) bool {
	for _, d := range userTextLyricDescriptions {
		if strings.EqualFold(desc, d) {
			return true
		}
	}
	return false
}
