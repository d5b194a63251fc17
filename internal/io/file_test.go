package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain utf-8", []byte("[00:01.00]héllo"), "[00:01.00]héllo"},
		{"utf-8 bom", []byte("\xef\xbb\xbf[00:01.00]hi"), "[00:01.00]hi"},
		{"utf-16le bom", []byte{0xff, 0xfe, 'h', 0, 'i', 0}, "hi"},
		{"utf-16be bom", []byte{0xfe, 0xff, 0, 'h', 0, 'i'}, "hi"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data)
			if err != nil {
				t.Fatalf("DecodeText: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteAndReadText(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "song.lrc")

	if err := WriteFile(ctx, path, []byte("\xef\xbb\xbf[00:01.00]hi")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadText(ctx, path)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "[00:01.00]hi" {
		t.Errorf("ReadText = %q, want %q", got, "[00:01.00]hi")
	}
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(context.Background(), filepath.Join(t.TempDir(), "missing.lrc"))
	if !os.IsNotExist(err) {
		t.Errorf("ReadText error = %v, want not-exist", err)
	}
}

func TestReadText_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadText(ctx, "irrelevant"); err != context.Canceled {
		t.Errorf("ReadText error = %v, want context.Canceled", err)
	}
}
