package model

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Track represents a single audio file whose lyrics should be resolved.
//
// Track contains:
//   - The audio file path and its name parts
//   - Candidate sidecar lyric files next to it
//   - The computed export path for rendered lyrics
//
// Paths are computed when creating a track via NewTrack.
//
// Example:
//
//	cfg := &TrackConfig{LyricExtensions: []string{".lrc"}}
//	track := NewTrack("/music/Artist/01 Song.mp3", cfg)
//	// track.LyricPaths = ["/music/Artist/01 Song.lrc"]
type Track struct {
	// Path is the audio file path.
	Path string

	// Dir is the directory containing the audio file.
	Dir string

	// Name is the file name without directory and extension.
	Name string

	// Ext is the lowercase audio file extension, including the dot.
	Ext string

	// LyricPaths lists sidecar lyric files to try, in order of preference.
	LyricPaths []string

	// ExportPath is where rendered lyrics are written, without extension.
	ExportPath string
}

// TrackConfig holds track path settings.
//
// ExportPathFormat supports placeholders replaced with actual values:
//   - {dir} - Directory of the audio file
//   - {name} - Audio file name without extension
//   - {ext} - Audio file extension without the dot
//
// Example:
//
//	cfg := &TrackConfig{
//	    LyricExtensions:  []string{".lrc", ".txt"},
//	    ExportPathFormat: "/exports/{name}",
//	}
type TrackConfig struct {
	// LyricExtensions are tried in order when looking for sidecar files.
	LyricExtensions []string

	// ExportPathFormat is the template for exported lyric files.
	// Empty means "{dir}/{name}".
	ExportPathFormat string
}

// NewTrack creates a new Track with computed paths.
func NewTrack(path string, cfg *TrackConfig) *Track {
	ext := filepath.Ext(path)
	track := &Track{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: strings.TrimSuffix(filepath.Base(path), ext),
		Ext:  strings.ToLower(ext),
	}

	track.LyricPaths = track.parseLyricPaths(cfg)
	track.ExportPath = track.parseExportPath(cfg)

	return track
}

// IsMP3 reports whether the audio file can carry ID3v2 lyric frames.
func (t *Track) IsMP3() bool {
	return t.Ext == ".mp3"
}

// parseLyricPaths computes sidecar candidates for every configured extension.
func (t *Track) parseLyricPaths(cfg *TrackConfig) []string {
	paths := make([]string, 0, len(cfg.LyricExtensions))
	for _, ext := range cfg.LyricExtensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		paths = append(paths, filepath.Join(t.Dir, t.Name+ext))
	}
	return paths
}

// parseExportPath computes the export path from the config template.
func (t *Track) parseExportPath(cfg *TrackConfig) string {
	format := cfg.ExportPathFormat
	if format == "" {
		format = filepath.Join("{dir}", "{name}")
	}

	path := format
	path = strings.ReplaceAll(path, "{dir}", t.Dir)
	path = strings.ReplaceAll(path, "{ext}", sanitizeFileName(strings.TrimPrefix(t.Ext, ".")))
	path = strings.ReplaceAll(path, "{name}", sanitizeFileName(t.Name))

	// Limit path length for Windows compatibility (MAX_PATH = 260)
	if len(path) >= 250 {
		path = path[:249]
	}

	return filepath.Clean(path)
}

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
