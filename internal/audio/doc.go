// Package audio provides access to lyrics embedded in audio files.
//
// # Frame Decoding
//
// ID3v2 lyric frames store their text behind a small binary header. Use
// DecodeFrameText to get the text out of a raw frame body:
//
//	text, ok := audio.DecodeFrameText(body)
//	if !ok {
//	    // malformed frame, try the next one
//	}
//
// Latin-1, UTF-16 (with byte order mark), UTF-16BE and UTF-8 bodies are
// supported.
//
// # ID3 Tagging
//
// Use the Tagger to read lyric candidates from MP3 files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	frames, err := tagger.LyricFrames("song.mp3")
//
// and to write lyrics back:
//
//	err := tagger.SaveLyrics("song.mp3", lrcText)
//
// The tagger supports:
//   - USLT frames (read and write)
//   - SYLT frames (read)
//   - TXXX frames described as LYRICS or UNSYNCEDLYRICS (read)
package audio
