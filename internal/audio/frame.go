package audio

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encodings used by ID3v2 lyric frames, keyed by the frame's first byte.
const (
	EncodingLatin1  byte = 0
	EncodingUTF16   byte = 1 // UTF-16 with byte order mark
	EncodingUTF16BE byte = 2
	EncodingUTF8    byte = 3
)

// frameHeaderSize covers the encoding byte and the 3-byte language code.
const frameHeaderSize = 4

// DecodeFrameText extracts the lyric text from a USLT/SYLT style frame body.
//
// The body layout is:
//
//	[encoding:1][language:3][description][terminator][text][terminator]
//
// The encoding byte selects the character set (see EncodingLatin1 and
// friends); unknown values fall back to Latin-1. Single-byte and UTF-8 text
// is terminated by one zero byte, UTF-16 text by two zero bytes starting at an
// even offset. A text without closing terminator runs to the end of the body.
//
// The boolean result is false when the body is shorter than the header or the
// text cannot be decoded. A body whose text range is empty decodes to "".
//
// Example:
//
//	body := []byte{3, 'e', 'n', 'g', 0, 'h', 'i'}
//	text, ok := DecodeFrameText(body) // "hi", true
func DecodeFrameText(buf []byte) (string, bool) {
	if len(buf) < frameHeaderSize {
		return "", false
	}

	enc := buf[0]
	wide := enc == EncodingUTF16 || enc == EncodingUTF16BE
	termSize := 1
	if wide {
		termSize = 2
	}

	descEnd := findTerminator(buf, frameHeaderSize, wide)
	start := descEnd + termSize
	end := findTerminator(buf, start, wide)

	if end <= start || end > len(buf) {
		return "", true
	}

	text, err := frameDecoder(enc).Bytes(buf[start:end])
	if err != nil {
		return "", false
	}
	return string(text), true
}

// findTerminator returns the offset of the first string terminator at or
// after from, or len(buf) when there is none.
func findTerminator(buf []byte, from int, wide bool) int {
	for i := from; i < len(buf); i++ {
		if buf[i] != 0 {
			continue
		}
		if !wide {
			return i
		}
		if i%2 == 0 && i+1 < len(buf) && buf[i+1] == 0 {
			return i
		}
	}
	return len(buf)
}

// frameDecoder returns the decoder for an ID3v2 encoding byte.
func frameDecoder(enc byte) *encoding.Decoder {
	switch enc {
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case EncodingUTF8:
		return unicode.UTF8.NewDecoder()
	default:
		return charmap.ISO8859_1.NewDecoder()
	}
}
