package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/config"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// createTestLibrary builds:
//
//	a/one.mp3    + a/one.lrc sidecar
//	b/two.mp3    with embedded lyrics
//	c/three.mp3  without lyrics
//	notes.txt, cover.jpg
func createTestLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a", "one.mp3"), "audio")
	writeFile(t, filepath.Join(root, "a", "one.lrc"), "[00:01.00]one")
	writeFile(t, filepath.Join(root, "b", "two.mp3"), "audio")
	writeFile(t, filepath.Join(root, "c", "three.mp3"), "audio")
	writeFile(t, filepath.Join(root, "notes.txt"), "[00:01.00]not a track")
	writeFile(t, filepath.Join(root, "cover.jpg"), "jpeg")

	if err := audio.NewTagger(nil).SaveLyrics(filepath.Join(root, "b", "two.mp3"), "[00:02.00]two"); err != nil {
		t.Fatal(err)
	}
	return root
}

func newTestManager(settings *config.Settings, opts Options) (*Manager, *[]ProgressEvent) {
	service := lyrics.NewService(settings.ToLyricsOptions(), audio.NewTagger(nil), nil, zerolog.Nop())

	var mu sync.Mutex
	events := &[]ProgressEvent{}
	manager := NewManager(settings, service, opts, zerolog.Nop(), func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		*events = append(*events, e)
	})
	return manager, events
}

func TestManager_Scan(t *testing.T) {
	root := createTestLibrary(t)
	settings := config.DefaultSettings()
	settings.MaxConcurrentTracks = 2
	settings.ExportFormat = "srt"

	manager, events := newTestManager(settings, Options{Export: true})
	results, err := manager.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	tests := []struct {
		name       string
		wantSource lyrics.Source
		wantErr    error
		wantExport string
	}{
		{"one", lyrics.SourceSidecar, nil, filepath.Join(root, "a", "one.srt")},
		{"two", lyrics.SourceEmbedded, nil, filepath.Join(root, "b", "two.srt")},
		{"three", lyrics.SourceNone, lyrics.ErrNoLyrics, ""},
	}

	for i, tt := range tests {
		got := results[i]
		if got.Track.Name != tt.name {
			t.Errorf("results[%d].Track.Name = %q, want %q", i, got.Track.Name, tt.name)
		}
		if got.Source != tt.wantSource {
			t.Errorf("results[%d].Source = %v, want %v", i, got.Source, tt.wantSource)
		}
		if !errors.Is(got.Err, tt.wantErr) {
			t.Errorf("results[%d].Err = %v, want %v", i, got.Err, tt.wantErr)
		}
		if got.ExportPath != tt.wantExport {
			t.Errorf("results[%d].ExportPath = %q, want %q", i, got.ExportPath, tt.wantExport)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "b", "two.srt"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "00:00:02,000 --> 00:00:06,000\ntwo") {
		t.Errorf("export content = %q", data)
	}

	processed, found, total := manager.GetProgress()
	if processed != 3 || found != 2 || total != 3 {
		t.Errorf("GetProgress = %d, %d, %d, want 3, 2, 3", processed, found, total)
	}

	last := (*events)[len(*events)-1]
	if last.Level != LevelWarning || !strings.Contains(last.Message, "2 of 3") {
		t.Errorf("last event = %+v", last)
	}
}

func TestManager_ScanSkipsSidecarOverwrite(t *testing.T) {
	root := createTestLibrary(t)
	settings := config.DefaultSettings()
	settings.ExportFormat = "lrc"

	manager, _ := newTestManager(settings, Options{Export: true})
	results, err := manager.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if results[0].ExportPath != "" {
		t.Errorf("sidecar track exported to %q, want skipped", results[0].ExportPath)
	}
	if results[1].ExportPath != filepath.Join(root, "b", "two.lrc") {
		t.Errorf("embedded track exported to %q", results[1].ExportPath)
	}

	data, err := os.ReadFile(filepath.Join(root, "a", "one.lrc"))
	if err != nil || string(data) != "[00:01.00]one" {
		t.Errorf("sidecar content = %q, %v, want untouched", data, err)
	}
}

func TestManager_ScanWithoutExport(t *testing.T) {
	root := createTestLibrary(t)

	manager, _ := newTestManager(config.DefaultSettings(), Options{})
	results, err := manager.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	for i, r := range results {
		if r.ExportPath != "" {
			t.Errorf("results[%d].ExportPath = %q, want empty", i, r.ExportPath)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "b", "two.lrc")); !os.IsNotExist(err) {
		t.Errorf("export written without Export option: %v", err)
	}
}

func TestManager_ScanErrors(t *testing.T) {
	manager, _ := newTestManager(config.DefaultSettings(), Options{})

	if _, err := manager.Scan(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Scan of missing root succeeded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := manager.Scan(ctx, createTestLibrary(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan error = %v, want context.Canceled", err)
	}
}
