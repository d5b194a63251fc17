package lrc

import (
	"testing"

	"github.com/reindex-ot/AccordLegacy/internal/model"
)

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		text string
		want model.SpeakerLabel
	}{
		{"v1: hello", model.LabelVoice1},
		{"v2: hello", model.LabelVoice2},
		{"F: hello", model.LabelFemale},
		{"M: hello", model.LabelMale},
		{"D: hello", model.LabelDuet},
		{"v1:hello", model.LabelNone},
		{"f: hello", model.LabelNone},
		{"V1: hello", model.LabelNone},
		{" v1: hello", model.LabelNone},
		{"v3: hello", model.LabelNone},
		{"bg: hello", model.LabelNone},
		{"F: ", model.LabelFemale},
		{"F:", model.LabelNone},
		{"", model.LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ClassifyLabel(tt.text); got != tt.want {
				t.Errorf("ClassifyLabel(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
