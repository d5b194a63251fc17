// Package config provides configuration management for the lyrics toolkit.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Environment overrides (LRC_* variables and .env files)
//   - Default configuration values
//   - Conversion to the option types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Lines trimmed, sidecar files preferred over tags
//	// Eight tracks scanned concurrently
//	// Exports written as LRC next to each track
//
// # Loading
//
//	settings, err := config.Load("/path/to/config.json", config.Overrides{})
//	if err != nil {
//	    // invalid file, environment or values
//	}
//
// Environment variables override the file:
//
//	LRC_TRIM_LINES=false
//	LRC_PREFER_EMBEDDED=true
//	LRC_LYRIC_EXTENSIONS=.lrc,.txt
//	LRC_AUDIO_EXTENSIONS=.mp3,.flac
//	LRC_MAX_CONCURRENT=4
//	LRC_EXPORT_FORMAT=srt
//	LRC_EXPORT_PATH=/exports/{name}
//	LRC_TAG_LANGUAGE=jpn
//	LRC_HTTP_TIMEOUT=10s
//	LRC_LOG_LEVEL=debug
//
// # Saving Settings
//
//	settings.ExportFormat = "ttml"
//	err := settings.Save("/path/to/config.json")
package config
