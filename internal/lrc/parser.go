package lrc

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// Parser turns LRC text into ordered lyric lines.
//
// Parser is tolerant: malformed tags, unknown headers and untimed text never
// cause an error. Documents without usable timing collapse into a single
// unsynced line instead.
//
// A Parser holds no state between calls and is safe for concurrent use.
//
// Example:
//
//	p := NewParser(true)
//	lines := p.Parse("[00:01.00][00:02.00]hello")
//	// lines[0].Timestamp = 1000, lines[1].Timestamp = 2000
type Parser struct {
	trim bool
}

// NewParser creates a new Parser.
//
// When trim is true, surrounding whitespace is removed from every extracted
// line before label prefixes are stripped.
func NewParser(trim bool) *Parser {
	return &Parser{trim: trim}
}

// Parse is shorthand for NewParser(trim).Parse(text).
func Parse(text string, trim bool) []model.LyricLine {
	return NewParser(trim).Parse(text)
}

// accumulator carries the state threaded through the physical lines of one
// document.
type accumulator struct {
	lines []model.LyricLine

	// label is the speaker label of the most recent line with text.
	label model.SpeakerLabel

	// lastTimestamp is the last primary timestamp seen in the document.
	lastTimestamp int64

	// synced is set once a timestamp greater than zero has been seen.
	// From then on untimed is no longer extended.
	synced  bool
	untimed []string
}

// Parse parses a whole LRC document.
//
// The result is sorted by timestamp, translations sharing a timestamp with
// the previous line are merged into it, leading blank lines are dropped and
// display positions are assigned. Blank input yields nil.
func (p *Parser) Parse(text string) []model.LyricLine {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	acc := &accumulator{}
	for _, line := range splitLines(text) {
		p.consume(acc, line)
	}

	lines := acc.lines
	slices.SortStableFunc(lines, func(a, b model.LyricLine) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	lines = mergeTranslations(lines)
	lines = trimLeadingBlank(lines)
	assignPositions(lines)

	if len(lines) == 0 {
		return []model.LyricLine{{Content: text}}
	}
	if !acc.synced {
		return []model.LyricLine{{Content: strings.Join(acc.untimed, "\n")}}
	}
	return lines
}

// consume processes one physical line.
func (p *Parser) consume(acc *accumulator, raw string) {
	stripped := timeTagRegex.ReplaceAllString(raw, "")
	if stripped != "" {
		acc.label = ClassifyLabel(stripped)
	}

	if tags := timeTagRegex.FindAllStringSubmatchIndex(raw, -1); len(tags) > 0 {
		content := raw[tags[len(tags)-1][1]:]
		content = bgSpanRegex.ReplaceAllString(content, "")
		if p.trim {
			content = strings.TrimSpace(content)
		}
		content = labelPrefixRegex.ReplaceAllString(content, "")

		for _, tag := range tags {
			ts := ParseTimeCode(tagToken(raw, tag))
			acc.observe(ts)

			text, words := splitWords(content, ts)
			acc.lines = append(acc.lines, model.LyricLine{
				Timestamp: ts,
				Synced:    true,
				Content:   text,
				Label:     acc.label,
				Words:     words,
			})
		}
	}

	for _, span := range bgSpanRegex.FindAllStringSubmatch(raw, -1) {
		inner := span[1]
		if p.trim {
			inner = strings.TrimSpace(inner)
		}

		ts := acc.lastTimestamp
		text, words := splitWords(inner, ts)
		if len(words) > 0 {
			ts++
		}

		acc.lines = append(acc.lines, model.LyricLine{
			Timestamp: ts,
			Synced:    true,
			Content:   text,
			Label:     model.LabelBackground,
			Words:     words,
		})
	}

	if !acc.synced {
		if p.trim {
			stripped = strings.TrimSpace(stripped)
		}
		acc.untimed = append(acc.untimed, stripped)
	}
}

// observe records a primary timestamp.
func (acc *accumulator) observe(ts int64) {
	acc.lastTimestamp = ts
	if ts > 0 && !acc.synced {
		acc.synced = true
		acc.untimed = nil
	}
}

// splitWords removes inline <MM:SS.fff> tags from content and returns the
// per-word timing they describe. The first segment starts at lineTs; every
// segment ends at the tag that follows it.
func splitWords(content string, lineTs int64) (string, []model.WordTimestamp) {
	tags := wordTagRegex.FindAllStringSubmatchIndex(content, -1)
	if len(tags) == 0 {
		return content, nil
	}

	var b strings.Builder
	words := make([]model.WordTimestamp, 0, len(tags))

	start := lineTs
	offset := 0
	prev := 0
	for _, tag := range tags {
		segment := content[prev:tag[0]]
		b.WriteString(segment)
		offset += utf8.RuneCountInString(segment)

		end := ParseTimeCode(tagToken(content, tag))
		words = append(words, model.WordTimestamp{Offset: offset, Start: start, End: end})

		start = end
		prev = tag[1]
	}
	b.WriteString(content[prev:])

	return b.String(), words
}

// mergeTranslations folds a line into the previous one when both share a
// timestamp and the line is not a background vocal. The previous line is
// always the previous entry of the sorted input, even when that entry was
// itself merged away, so only pairs merge reliably.
func mergeTranslations(lines []model.LyricLine) []model.LyricLine {
	out := make([]model.LyricLine, 0, len(lines))

	var prev *model.LyricLine
	for _, line := range lines {
		if prev != nil && line.Timestamp == prev.Timestamp && line.Label != model.LabelBackground {
			prev.Translation = line.Content
			merged := line
			prev = &merged
			continue
		}

		out = append(out, line)
		prev = &out[len(out)-1]
	}

	return out
}

// trimLeadingBlank drops lines from the front while their content is empty.
func trimLeadingBlank(lines []model.LyricLine) []model.LyricLine {
	for len(lines) > 0 && lines[0].Content == "" {
		lines = lines[1:]
	}
	return lines
}

// assignPositions numbers display slots. Background and empty lines join the
// slot of the line before them; a leading one gets slot 0.
func assignPositions(lines []model.LyricLine) {
	next := 0
	for i := range lines {
		if lines[i].Content != "" && lines[i].Label != model.LabelBackground {
			lines[i].Position = next
			next++
			continue
		}
		if i > 0 {
			lines[i].Position = lines[i-1].Position
		}
	}
}

// splitLines splits text on any newline convention. A single trailing line
// break does not produce an extra empty line.
func splitLines(text string) []string {
	text = newlineReplacer.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// tagToken rebuilds the "MM:SS[.fff]" token from a time tag match.
func tagToken(s string, match []int) string {
	token := s[match[2]:match[3]]
	if match[4] >= 0 {
		token += s[match[4]:match[5]]
	}
	return token
}
