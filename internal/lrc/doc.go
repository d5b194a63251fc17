// Package lrc parses LRC lyric text into ordered, timed lyric lines.
//
// # Grammar
//
// Every physical line may carry any number of primary time tags followed by
// the lyric text:
//
//	[00:12.50]first line
//	[00:15.00][01:15.00]repeated chorus
//	[00:18.20]v1: <00:18.20>word <00:18.70>timed<00:19.10>
//	[bg: <00:18.40>background<00:19.00>]
//
// Fractions may be introduced by '.' or ':' and hold any number of digits.
// Lines with several tags are expanded into one line per tag. Inline <..>
// tags become per-word timing, [bg: ...] spans become background lines and
// two lines sharing a timestamp are merged into a line plus its translation.
//
// # Speaker labels
//
// A line starting with "v1: ", "v2: ", "F: ", "M: " or "D: " is labeled with
// the matching model.SpeakerLabel. Voice and background prefixes are removed
// from the content; walaoke prefixes are kept.
//
// # Degenerate input
//
// Text without time tags, or whose tags are all zero, comes back as a single
// unsynced line:
//
//	lines := lrc.Parse("just plain lyrics", true)
//	// lines[0].Synced == false
//
// Nothing in this package returns an error. Malformed tags are either ignored
// or read as zero.
package lrc
