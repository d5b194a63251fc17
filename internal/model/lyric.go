package model

import "fmt"

// SpeakerLabel identifies who sings a lyric line.
//
// Two labeling conventions exist side by side:
//   - Walaoke: LabelMale, LabelFemale, LabelDuet
//   - Voices:  LabelVoice1, LabelVoice2
//
// LabelBackground marks background vocals attached to the preceding line.
// The zero value is LabelNone.
type SpeakerLabel int

const (
	// LabelNone means no speaker information is available.
	LabelNone SpeakerLabel = iota

	// LabelMale is a walaoke "M: " line.
	LabelMale

	// LabelFemale is a walaoke "F: " line.
	LabelFemale

	// LabelDuet is a walaoke "D: " line.
	LabelDuet

	// LabelBackground is a background vocal taken from a [bg: ...] span.
	LabelBackground

	// LabelVoice1 is a "v1: " line.
	LabelVoice1

	// LabelVoice2 is a "v2: " line.
	LabelVoice2
)

var labelNames = map[SpeakerLabel]string{
	LabelNone:       "none",
	LabelMale:       "male",
	LabelFemale:     "female",
	LabelDuet:       "duet",
	LabelBackground: "background",
	LabelVoice1:     "voice1",
	LabelVoice2:     "voice2",
}

// IsWalaoke reports whether the label belongs to the male/female/duet scheme.
func (l SpeakerLabel) IsWalaoke() bool {
	return l == LabelMale || l == LabelFemale || l == LabelDuet
}

// String returns the lowercase label name, e.g. "voice1".
func (l SpeakerLabel) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("SpeakerLabel(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l SpeakerLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *SpeakerLabel) UnmarshalText(text []byte) error {
	for label, name := range labelNames {
		if name == string(text) {
			*l = label
			return nil
		}
	}
	return fmt.Errorf("unknown speaker label %q", text)
}

// WordTimestamp is the timing of one word segment inside LyricLine.Content.
//
// Offset is the character (rune) offset in Content right after the segment,
// so the segment covers the runes between the previous Offset and this one.
type WordTimestamp struct {
	Offset int   `json:"offset"`
	Start  int64 `json:"start"`
	End    int64 `json:"end"`
}

// LyricLine is one parsed line of lyrics.
//
// Timestamp is in milliseconds and only meaningful when Synced is true.
// An unsynced line carries the whole lyric text in Content.
//
// Position groups a primary line with the background lines attached to it:
// all lines sharing a Position are displayed in the same slot.
type LyricLine struct {
	Timestamp   int64           `json:"timestamp"`
	Synced      bool            `json:"synced"`
	Content     string          `json:"content"`
	Translation string          `json:"translation,omitempty"`
	Label       SpeakerLabel    `json:"label"`
	Words       []WordTimestamp `json:"words,omitempty"`
	Position    int             `json:"position"`
}

// HasWords reports whether the line carries per-word timing.
func (l LyricLine) HasWords() bool {
	return len(l.Words) > 0
}
