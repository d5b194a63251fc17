package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/model"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher monitors a music directory and resolves lyrics again whenever an
// audio file or one of its sidecar lyric files is created or written.
type Watcher struct {
	manager  *Manager
	root     string
	onResult func(Result)
	log      zerolog.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}

	// Debounce: coalesce rapid Create+Write events on the same track.
	debounce       time.Duration
	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer

	tracksProcessed atomic.Int64
}

// Watch starts watching root and every directory below it. onResult is
// called from a background goroutine for each re-resolved track.
//
// The watcher stops when ctx is done or Stop is called.
func (m *Manager) Watch(ctx context.Context, root string, onResult func(Result)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &Watcher{
		manager:        m,
		root:           root,
		onResult:       onResult,
		log:            m.log.With().Str("component", "watcher").Logger(),
		watcher:        w,
		done:           make(chan struct{}),
		debounce:       m.opts.Debounce,
		debounceTimers: make(map[string]*time.Timer),
	}
	if fw.debounce <= 0 {
		fw.debounce = defaultDebounce
	}

	// Walk the directory tree and add all directories to fsnotify.
	dirCount := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fw.log.Warn().Err(err).Str("path", path).Msg("error walking directory")
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				fw.log.Warn().Err(addErr).Str("path", path).Msg("failed to watch directory")
			} else {
				dirCount++
			}
		}
		return nil
	})
	if err != nil {
		w.Close()
		return nil, err
	}

	fw.log.Info().Int("directories", dirCount).Str("root", root).Msg("watching library")

	go fw.watchLoop(ctx)

	return fw, nil
}

// Stop closes the watcher. Pending debounced tracks are dropped.
func (fw *Watcher) Stop() {
	fw.watcher.Close()
	<-fw.done

	fw.debounceMu.Lock()
	for path, t := range fw.debounceTimers {
		t.Stop()
		delete(fw.debounceTimers, path)
	}
	fw.debounceMu.Unlock()

	fw.log.Info().Int64("tracks_processed", fw.tracksProcessed.Load()).Msg("watcher stopped")
}

// TracksProcessed returns how many tracks were resolved since Watch.
func (fw *Watcher) TracksProcessed() int64 {
	return fw.tracksProcessed.Load()
}

func (fw *Watcher) watchLoop(ctx context.Context) {
	defer close(fw.done)

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// New directory: add it to the watch set.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := fw.watcher.Add(event.Name); err != nil {
					fw.log.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
				}
				continue
			}

			if track := fw.trackFor(event.Name); track != "" {
				fw.scheduleProcess(ctx, track)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Error().Err(err).Msg("fsnotify error")
		}
	}
}

// trackFor maps a changed file to the audio track it belongs to, or "".
func (fw *Watcher) trackFor(path string) string {
	service := fw.manager.service
	if service.IsAudio(path) {
		return path
	}

	ext := strings.ToLower(filepath.Ext(path))
	isLyric := false
	for _, e := range fw.manager.settings.LyricExtensions {
		if strings.EqualFold(e, ext) || strings.EqualFold("."+e, ext) {
			isLyric = true
			break
		}
	}
	if !isLyric {
		return ""
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, audioExt := range fw.manager.settings.AudioExtensions {
		if !strings.HasPrefix(audioExt, ".") {
			audioExt = "." + audioExt
		}
		candidate := base + audioExt
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// scheduleProcess debounces track processing so the file is fully written
// before reading.
func (fw *Watcher) scheduleProcess(ctx context.Context, path string) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if t, ok := fw.debounceTimers[path]; ok {
		t.Reset(fw.debounce)
		return
	}

	fw.debounceTimers[path] = time.AfterFunc(fw.debounce, func() {
		fw.debounceMu.Lock()
		delete(fw.debounceTimers, path)
		fw.debounceMu.Unlock()

		if ctx.Err() != nil {
			return
		}

		track := model.NewTrack(path, fw.manager.settings.ToTrackConfig())
		result := fw.manager.scanTrack(ctx, track)
		fw.tracksProcessed.Add(1)
		if fw.onResult != nil {
			fw.onResult(result)
		}
	})
}
