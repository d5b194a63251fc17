package lyrics

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// Format represents supported lyric export formats.
//
// Each format targets a different consumer:
//   - LRC: enhanced LRC, readable by this package and most players
//   - SRT: SubRip subtitles, one cue per line
//   - TTML: XML timed text as used by streaming services
//   - JSON: the parsed lines as is
//   - TXT: plain text without timing
type Format int

const (
	// FormatLRC writes normalized enhanced LRC with word timing.
	FormatLRC Format = iota

	// FormatSRT writes SubRip cues.
	// A cue ends where the next distinct timestamp starts.
	FormatSRT

	// FormatTTML writes a TTML document with agents and background spans.
	FormatTTML

	// FormatJSON writes the lines as a JSON array.
	FormatJSON

	// FormatTXT writes plain text, translations indented below their line.
	FormatTXT
)

// lastCueDuration is how long the final SRT/TTML cue stays on screen.
const lastCueDuration = 4000

var formatNames = map[Format]string{
	FormatLRC:  "lrc",
	FormatSRT:  "srt",
	FormatTTML: "ttml",
	FormatJSON: "json",
	FormatTXT:  "txt",
}

// ParseFormat returns the format for a name such as "lrc" or "srt".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatLRC, fmt.Errorf("unknown export format %q", name)
}

// String returns the lowercase format name.
func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// Writer renders parsed lyric lines in one export format.
//
// Example:
//
//	writer := NewWriter(FormatSRT)
//	content, err := writer.Render(lines)
//	os.WriteFile(track.ExportPath+FormatSRT.Extension(), []byte(content), 0644)
type Writer struct {
	format Format
}

// NewWriter creates a new Writer for the given format.
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// Format returns the writer's export format.
func (w *Writer) Format() Format {
	return w.format
}

// Render generates the export content for lines.
//
// A single unsynced line is written as its bare content in every text
// format. An empty input renders as an empty document.
func (w *Writer) Render(lines []model.LyricLine) (string, error) {
	if w.format == FormatJSON {
		return renderJSON(lines)
	}

	if len(lines) == 1 && !lines[0].Synced {
		return lines[0].Content + "\n", nil
	}

	switch w.format {
	case FormatSRT:
		return renderSRT(lines), nil
	case FormatTTML:
		return renderTTML(lines), nil
	case FormatTXT:
		return renderTXT(lines), nil
	default:
		return renderLRC(lines), nil
	}
}

// renderLRC generates enhanced LRC.
//
//	[00:01.000]v1: first <00:01.500>word
//	[00:01.000]translation
//	[bg: echo]
func renderLRC(lines []model.LyricLine) string {
	var sb strings.Builder

	for _, line := range lines {
		if line.Label == model.LabelBackground {
			sb.WriteString("[bg: " + withWordTags(line) + "]\n")
			continue
		}

		tag := "[" + formatClock(line.Timestamp) + "]"
		sb.WriteString(tag)
		switch line.Label {
		case model.LabelVoice1:
			sb.WriteString("v1: ")
		case model.LabelVoice2:
			sb.WriteString("v2: ")
		}
		sb.WriteString(withWordTags(line) + "\n")

		if line.Translation != "" {
			sb.WriteString(tag + line.Translation + "\n")
		}
	}

	return sb.String()
}

// withWordTags re-inserts <MM:SS.fff> tags at the word offsets of line.
func withWordTags(line model.LyricLine) string {
	if !line.HasWords() {
		return line.Content
	}

	var sb strings.Builder
	next := 0
	offset := 0
	for i, r := range line.Content {
		for next < len(line.Words) && line.Words[next].Offset <= offset {
			sb.WriteString("<" + formatClock(line.Words[next].End) + ">")
			next++
		}
		sb.WriteString(line.Content[i : i+utf8.RuneLen(r)])
		offset++
	}
	for ; next < len(line.Words); next++ {
		sb.WriteString("<" + formatClock(line.Words[next].End) + ">")
	}

	return sb.String()
}

// renderSRT generates SubRip cues.
//
//	1
//	00:00:01,000 --> 00:00:03,500
//	Line content
//	Translation
func renderSRT(lines []model.LyricLine) string {
	var sb strings.Builder

	cue := 0
	for i, line := range lines {
		if line.Content == "" {
			continue
		}
		cue++

		text := line.Content
		if line.Label == model.LabelBackground {
			text = "(" + text + ")"
		}

		sb.WriteString(fmt.Sprintf("%d\n", cue))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(line.Timestamp), formatSRTTime(cueEnd(lines, i))))
		sb.WriteString(text + "\n")
		if line.Translation != "" {
			sb.WriteString(line.Translation + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderTTML generates a TTML document.
//
// Voice and gender labels become ttm:agent attributes, background lines are
// wrapped in an x-bg span and translations in an x-translation span.
func renderTTML(lines []model.LyricLine) string {
	var sb strings.Builder

	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	sb.WriteString("<tt xmlns=\"http://www.w3.org/ns/ttml\" xmlns:ttm=\"http://www.w3.org/ns/ttml#metadata\">\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <div>\n")

	for i, line := range lines {
		if line.Content == "" {
			continue
		}

		attrs := fmt.Sprintf("begin=\"%s\" end=\"%s\"",
			formatTTMLTime(line.Timestamp), formatTTMLTime(cueEnd(lines, i)))
		if line.Label != model.LabelNone && line.Label != model.LabelBackground {
			attrs += fmt.Sprintf(" ttm:agent=\"%s\"", line.Label)
		}

		text := escapeXML(line.Content)
		if line.Label == model.LabelBackground {
			text = "<span ttm:role=\"x-bg\">" + text + "</span>"
		}
		if line.Translation != "" {
			text += "<span ttm:role=\"x-translation\">" + escapeXML(line.Translation) + "</span>"
		}

		sb.WriteString(fmt.Sprintf("      <p %s>%s</p>\n", attrs, text))
	}

	sb.WriteString("    </div>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</tt>\n")

	return sb.String()
}

// renderTXT generates plain text, one line per lyric line.
func renderTXT(lines []model.LyricLine) string {
	var sb strings.Builder

	for _, line := range lines {
		sb.WriteString(line.Content + "\n")
		if line.Translation != "" {
			sb.WriteString("  " + line.Translation + "\n")
		}
	}

	return sb.String()
}

func renderJSON(lines []model.LyricLine) (string, error) {
	if lines == nil {
		lines = []model.LyricLine{}
	}
	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode lyrics: %w", err)
	}
	return string(data) + "\n", nil
}

// cueEnd returns the first timestamp after lines[i] that differs from it,
// or lastCueDuration past it when there is none.
func cueEnd(lines []model.LyricLine, i int) int64 {
	ts := lines[i].Timestamp
	for _, next := range lines[i+1:] {
		if next.Timestamp > ts {
			return next.Timestamp
		}
	}
	return ts + lastCueDuration
}

// formatClock formats milliseconds as MM:SS.fff.
func formatClock(ms int64) string {
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}

// formatSRTTime formats milliseconds as HH:MM:SS,fff.
func formatSRTTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// formatTTMLTime formats milliseconds as HH:MM:SS.fff.
func formatTTMLTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
