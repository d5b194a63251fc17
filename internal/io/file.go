// Package ioutils provides file system utilities for the lyrics toolkit.
//
// This package contains functions for:
//   - Text reading with byte order mark detection
//   - File writing
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ReadText reads a text file and decodes it to a UTF-8 string.
//
// See DecodeText for the accepted encodings.
//
// Example:
//
//	text, err := ReadText(ctx, "/music/Artist/01 Song.lrc")
func ReadText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return text, nil
}

// DecodeText decodes raw text to a UTF-8 string.
//
// A UTF-8 or UTF-16 (either endianness) byte order mark selects the encoding
// and is removed. Without a byte order mark the data is treated as UTF-8;
// invalid sequences are replaced with U+FFFD.
//
// Example:
//
//	DecodeText([]byte("\xef\xbb\xbf[00:01.00]hi")) // Returns "[00:01.00]hi"
//	DecodeText([]byte{0xff, 0xfe, 'h', 0, 'i', 0}) // Returns "hi"
func DecodeText(data []byte) (string, error) {
	decoder := &encoding.Decoder{Transformer: unicode.BOMOverride(unicode.UTF8.NewDecoder())}
	text, err := decoder.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// WriteFile writes data to a file, creating it and its parent directories if
// necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := WriteFile(ctx, "/exports/01 Song.srt", []byte("1\n00:00:01,000 --> ..."))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/exports/Artist/Album")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
