// Package model defines the core data structures used throughout
// the accord lyrics toolkit.
//
// # LyricLine
//
// LyricLine is one parsed line of lyrics with optional timing:
//
//	line := model.LyricLine{Timestamp: 12500, Synced: true, Content: "hello"}
//	fmt.Println(line.Label)    // "none"
//	fmt.Println(line.Position) // display slot
//
// Lines are produced by the lrc package and are plain values: they are
// created fresh for every parse and carry no identity.
//
// # SpeakerLabel
//
// SpeakerLabel is a closed set of speaker tags. LabelMale, LabelFemale and
// LabelDuet form the walaoke scheme (IsWalaoke reports true), LabelVoice1 and
// LabelVoice2 the two-voice scheme, and LabelBackground marks background vocals.
//
// # Track
//
// Track represents an audio file in a music library together with the
// sidecar lyric files that may belong to it:
//
//	track := model.NewTrack("/music/song.mp3", &model.TrackConfig{
//	    LyricExtensions: []string{".lrc"},
//	})
//	fmt.Println(track.LyricPaths) // [/music/song.lrc]
//
// Available export placeholders: {dir}, {name}, {ext}
package model
