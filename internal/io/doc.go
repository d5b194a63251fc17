// Package ioutils provides file system utilities.
//
// # Reading Text
//
// Lyric files come in many encodings. ReadText honours a UTF-8 or UTF-16
// byte order mark and falls back to UTF-8:
//
//	text, err := ioutils.ReadText(ctx, "/music/song.lrc")
//
// # Writing Files
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "/exports/song.srt", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
package ioutils
