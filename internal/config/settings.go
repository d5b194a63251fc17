package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// Settings holds all configuration options.
//
// Values come from DefaultSettings, then the JSON settings file, then the
// environment (LRC_* variables, optionally from a .env file), then CLI
// overrides.
type Settings struct {
	// Parsing
	TrimLines      bool `json:"trim_lines" env:"LRC_TRIM_LINES"`
	PreferEmbedded bool `json:"prefer_embedded" env:"LRC_PREFER_EMBEDDED"`

	// File discovery
	LyricExtensions []string `json:"lyric_extensions" env:"LRC_LYRIC_EXTENSIONS" envSeparator:","`
	AudioExtensions []string `json:"audio_extensions" env:"LRC_AUDIO_EXTENSIONS" envSeparator:","`

	// Library scan
	MaxConcurrentTracks int `json:"max_concurrent_tracks" env:"LRC_MAX_CONCURRENT"`

	// Export
	ExportFormat string `json:"export_format" env:"LRC_EXPORT_FORMAT"` // lrc, srt, ttml, json, txt
	ExportPath   string `json:"export_path" env:"LRC_EXPORT_PATH"`

	// Tag settings
	TagLanguage string `json:"tag_language" env:"LRC_TAG_LANGUAGE"`

	// Remote lyrics
	HTTPTimeout Duration `json:"http_timeout" env:"LRC_HTTP_TIMEOUT"`

	LogLevel string `json:"log_level" env:"LRC_LOG_LEVEL"`
}

// Duration is a time.Duration written as text such as "30s" in settings
// files and environment variables.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile      string
	LogLevel     string
	ExportFormat string
	ExportPath   string
	TrimLines    *bool
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		TrimLines:      true,
		PreferEmbedded: false,

		LyricExtensions: []string{".lrc", ".txt"},
		AudioExtensions: []string{".mp3", ".flac", ".ogg", ".m4a", ".opus", ".wav"},

		MaxConcurrentTracks: 8,

		ExportFormat: "lrc",

		TagLanguage: "eng",

		HTTPTimeout: Duration(30 * time.Second),

		LogLevel: "info",
	}
}

// Load reads settings from a JSON file, the environment and CLI overrides.
// Priority: CLI flags > environment variables > .env file > settings file > defaults.
//
// A missing settings file (or an empty path) is not an error.
func Load(path string, overrides Overrides) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(data, settings); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// Load .env file (silent if missing)
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}

	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.LogLevel != "" {
		settings.LogLevel = overrides.LogLevel
	}
	if overrides.ExportFormat != "" {
		settings.ExportFormat = overrides.ExportFormat
	}
	if overrides.ExportPath != "" {
		settings.ExportPath = overrides.ExportPath
	}
	if overrides.TrimLines != nil {
		settings.TrimLines = *overrides.TrimLines
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks that settings values are usable.
func (s *Settings) Validate() error {
	if s.MaxConcurrentTracks < 1 {
		return fmt.Errorf("max_concurrent_tracks must be at least 1, got %d", s.MaxConcurrentTracks)
	}
	if _, err := lyrics.ParseFormat(s.ExportFormat); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must not be negative")
	}
	return nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Level returns the configured log level, falling back to info.
func (s *Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Format returns the configured export format, falling back to LRC.
func (s *Settings) Format() lyrics.Format {
	f, _ := lyrics.ParseFormat(s.ExportFormat)
	return f
}

// Timeout returns the HTTP timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.HTTPTimeout)
}

// ToTrackConfig converts settings to TrackConfig.
func (s *Settings) ToTrackConfig() *model.TrackConfig {
	return &model.TrackConfig{
		LyricExtensions:  s.LyricExtensions,
		ExportPathFormat: s.ExportPath,
	}
}

// ToTagConfig converts settings to TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	if s.TagLanguage != "" {
		cfg.Language = s.TagLanguage
	}
	return cfg
}

// ToLyricsOptions converts settings to lyrics service options.
func (s *Settings) ToLyricsOptions() lyrics.Options {
	return lyrics.Options{
		Trim:            s.TrimLines,
		PreferEmbedded:  s.PreferEmbedded,
		Track:           s.ToTrackConfig(),
		AudioExtensions: s.AudioExtensions,
	}
}
