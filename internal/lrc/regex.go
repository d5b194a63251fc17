package lrc

import (
	"regexp"
	"strings"
)

var (
	// timeTagRegex matches [MM:SS], [MM:SS.fff] and [MM:SS:fff].
	timeTagRegex = regexp.MustCompile(`\[(\d{2}:\d{2})([.:]\d+)?\]`)

	// wordTagRegex matches inline <MM:SS.fff> word tags.
	wordTagRegex = regexp.MustCompile(`<(\d{2}:\d{2})([.:]\d+)?>`)

	// bgSpanRegex matches [bg: ...] background vocal spans.
	bgSpanRegex = regexp.MustCompile(`\[bg:\s*([^\]]*)\]`)

	// labelPrefixRegex matches a leading voice or background prefix.
	labelPrefixRegex = regexp.MustCompile(`^(?:v\d+|bg):\s*`)

	newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)
