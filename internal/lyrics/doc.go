// Package lyrics resolves lyric lines from every supported source and
// renders them in export formats.
//
// # Sources
//
// The Service parses LRC text coming from:
//   - strings and string slices (FromText, FromTextLines)
//   - raw ID3v2 frame bodies (FromFrame)
//   - sidecar files next to an audio file (FromSidecar)
//   - tags embedded in MP3 files (FromEmbedded)
//   - remote documents (FromURL)
//
// Load picks the right source for a path or URL:
//
//	svc := lyrics.NewService(opts, audio.NewTagger(nil), http.NewClient(0), log)
//	lines, source := svc.Load(ctx, "/music/Artist/01 Song.mp3")
//	if lines == nil {
//	    // nothing found, the cause was logged
//	}
//
// # Export
//
// The Writer renders lines as LRC, SRT, TTML, JSON or plain text:
//
//	content, err := lyrics.NewWriter(lyrics.FormatSRT).Render(lines)
package lyrics
