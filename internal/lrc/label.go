package lrc

import (
	"strings"

	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// labelPrefixes maps the exact, case-sensitive line prefixes to their labels.
var labelPrefixes = []struct {
	prefix string
	label  model.SpeakerLabel
}{
	{"v1: ", model.LabelVoice1},
	{"v2: ", model.LabelVoice2},
	{"F: ", model.LabelFemale},
	{"M: ", model.LabelMale},
	{"D: ", model.LabelDuet},
}

// ClassifyLabel returns the speaker label announced at the start of text.
//
// text must already have its timestamp tags removed. Only the first four
// characters are inspected and the prefix is left in place; callers strip it
// themselves if needed. Unknown prefixes yield model.LabelNone.
func ClassifyLabel(text string) model.SpeakerLabel {
	head := text
	if len(head) > 4 {
		head = head[:4]
	}

	for _, p := range labelPrefixes {
		if strings.HasPrefix(head, p.prefix) {
			return p.label
		}
	}
	return model.LabelNone
}
