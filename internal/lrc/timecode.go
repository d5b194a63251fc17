package lrc

import (
	"strconv"
	"strings"
)

// ParseTimeCode converts an "MM:SS" token, optionally followed by a
// fraction introduced by '.' or ':', into milliseconds.
//
// The fraction is normalized using at most its first three digits:
// one digit means tenths, two digits hundredths, three digits milliseconds.
// Any component that is not a number counts as 0, so a malformed token
// yields 0 instead of an error.
//
// Example:
//
//	ParseTimeCode("01:02.5")   // 62500
//	ParseTimeCode("00:00:222") // 222
//	ParseTimeCode("00:00.22")  // 220
func ParseTimeCode(token string) int64 {
	minutesPart, rest, _ := strings.Cut(token, ":")

	secondsPart := rest
	fractionPart := ""
	if i := strings.IndexAny(rest, ".:"); i >= 0 {
		secondsPart = rest[:i]
		fractionPart = rest[i+1:]
	}

	minutes := atoiOrZero(minutesPart)
	seconds := atoiOrZero(secondsPart)

	return minutes*60000 + seconds*1000 + parseFraction(fractionPart)
}

// parseFraction normalizes fractional-second digits to milliseconds.
func parseFraction(digits string) int64 {
	if len(digits) > 3 {
		digits = digits[:3]
	}

	value := atoiOrZero(digits)
	switch len(digits) {
	case 1:
		return value * 100
	case 2:
		return value * 10
	default:
		return value
	}
}

func atoiOrZero(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
