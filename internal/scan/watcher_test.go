package scan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/config"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
)

func TestManager_Watch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.mp3"), "audio")

	settings := config.DefaultSettings()
	service := lyrics.NewService(settings.ToLyricsOptions(), audio.NewTagger(nil), nil, zerolog.Nop())
	manager := NewManager(settings, service, Options{Debounce: 20 * time.Millisecond}, zerolog.Nop(), nil)

	results := make(chan Result, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := manager.Watch(ctx, root, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(root, "one.lrc"), "[00:01.00]watched")
	writeFile(t, filepath.Join(root, "notes.md"), "ignored")

	select {
	case r := <-results:
		if r.Track.Name != "one" || r.Source != lyrics.SourceSidecar {
			t.Errorf("result = %+v, want sidecar lyrics of one", r)
		}
		if len(r.Lines) != 1 || r.Lines[0].Content != "watched" {
			t.Errorf("lines = %+v", r.Lines)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no result after writing a sidecar file")
	}

	if w.TracksProcessed() < 1 {
		t.Errorf("TracksProcessed = %d, want at least 1", w.TracksProcessed())
	}
}

func TestManager_WatchMissingRoot(t *testing.T) {
	manager, _ := newTestManager(config.DefaultSettings(), Options{})
	if _, err := manager.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("Watch of missing root succeeded")
	}
}

func TestWatcher_TrackFor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.flac"), "audio")

	manager, _ := newTestManager(config.DefaultSettings(), Options{})
	fw := &Watcher{manager: manager}

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(root, "one.flac"), filepath.Join(root, "one.flac")},
		{filepath.Join(root, "one.lrc"), filepath.Join(root, "one.flac")},
		{filepath.Join(root, "two.lrc"), ""},
		{filepath.Join(root, "one.srt"), ""},
	}

	for _, tt := range tests {
		if got := fw.trackFor(tt.path); got != tt.want {
			t.Errorf("trackFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
