package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reindex-ot/AccordLegacy/internal/config"
	ioutils "github.com/reindex-ot/AccordLegacy/internal/io"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Result is the outcome for one audio track.
type Result struct {
	Track  *model.Track
	Lines  []model.LyricLine
	Source lyrics.Source

	// ExportPath is the written export file, empty when nothing was exported.
	ExportPath string

	// Err is lyrics.ErrNoLyrics when no source produced lines, or the export
	// error.
	Err error
}

// Options configures a Manager.
type Options struct {
	// Export writes every resolved track in the settings' export format.
	Export bool

	// Debounce is how long Watch waits for a file to settle before
	// resolving its track. Zero means 500ms.
	Debounce time.Duration
}

// Manager resolves lyrics for every audio file below a directory.
type Manager struct {
	settings *config.Settings
	service  *lyrics.Service
	writer   *lyrics.Writer
	opts     Options
	log      zerolog.Logger

	totalFiles     int32
	processedFiles int32
	foundFiles     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new scan Manager.
func NewManager(settings *config.Settings, service *lyrics.Service, opts Options, log zerolog.Logger, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		service:    service,
		writer:     lyrics.NewWriter(settings.Format()),
		opts:       opts,
		log:        log.With().Str("component", "scan").Logger(),
		onProgress: onProgress,
	}
}

// Scan walks root and resolves lyrics for each audio file, running up to
// MaxConcurrentTracks tracks at once. Results keep the walk order.
//
// Per-track failures are reported in the results and never stop the scan;
// the returned error is a walk failure or the context's error.
func (m *Manager) Scan(ctx context.Context, root string) ([]Result, error) {
	tracks, err := m.collectTracks(ctx, root)
	if err != nil {
		return nil, err
	}

	atomic.StoreInt32(&m.totalFiles, int32(len(tracks)))
	atomic.StoreInt32(&m.processedFiles, 0)
	atomic.StoreInt32(&m.foundFiles, 0)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(tracks), root), Level: LevelInfo})

	results := make([]Result, len(tracks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.settings.MaxConcurrentTracks, 1))

	for i, track := range tracks {
		i, track := i, track
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.scanTrack(ctx, track)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	found := atomic.LoadInt32(&m.foundFiles)
	level := LevelSuccess
	if int(found) != len(tracks) {
		level = LevelWarning
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Finished: lyrics for %d of %d tracks", found, len(tracks)), Level: level})

	return results, nil
}

// GetProgress returns current scan progress.
func (m *Manager) GetProgress() (processed, found, total int32) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.foundFiles),
		atomic.LoadInt32(&m.totalFiles)
}

func (m *Manager) collectTracks(ctx context.Context, root string) ([]*model.Track, error) {
	trackCfg := m.settings.ToTrackConfig()

	var tracks []*model.Track
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !m.service.IsAudio(path) {
			return nil
		}
		tracks = append(tracks, model.NewTrack(path, trackCfg))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return tracks, nil
}

func (m *Manager) scanTrack(ctx context.Context, track *model.Track) Result {
	defer atomic.AddInt32(&m.processedFiles, 1)

	result := Result{Track: track}
	result.Lines, result.Source = m.service.LoadTrack(ctx, track)
	if result.Lines == nil {
		result.Err = lyrics.ErrNoLyrics
		m.log.Debug().Str("path", track.Path).Msg("no lyrics")
		m.progress(ProgressEvent{Message: fmt.Sprintf("No lyrics: %s", filepath.Base(track.Path)), Level: LevelVerbose})
		return result
	}

	atomic.AddInt32(&m.foundFiles, 1)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Lyrics from %s: %s (%d lines)", result.Source, filepath.Base(track.Path), len(result.Lines)),
		Level:   LevelVerbose,
	})

	if m.opts.Export {
		path := track.ExportPath + m.writer.Format().Extension()
		if slices.Contains(track.LyricPaths, path) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping export over sidecar: %s", filepath.Base(path)), Level: LevelVerbose})
			return result
		}

		if err := m.export(ctx, path, result.Lines); err != nil {
			result.Err = err
			m.log.Error().Err(err).Str("path", track.Path).Msg("export lyrics")
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error exporting %s: %v", filepath.Base(track.Path), err), Level: LevelError})
			return result
		}
		result.ExportPath = path
	}

	return result
}

func (m *Manager) export(ctx context.Context, path string, lines []model.LyricLine) error {
	content, err := m.writer.Render(lines)
	if err != nil {
		return err
	}

	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
