package lyrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/http"
	ioutils "github.com/reindex-ot/AccordLegacy/internal/io"
	"github.com/reindex-ot/AccordLegacy/internal/lrc"
	"github.com/reindex-ot/AccordLegacy/internal/model"
)

// ErrNoLyrics is returned when a source exists but yields no lyric lines.
var ErrNoLyrics = errors.New("no lyrics found")

// Source identifies where a set of lyrics came from.
type Source int

const (
	SourceNone Source = iota
	SourceText
	SourceSidecar
	SourceEmbedded
	SourceURL
)

func (s Source) String() string {
	switch s {
	case SourceText:
		return "text"
	case SourceSidecar:
		return "sidecar"
	case SourceEmbedded:
		return "embedded"
	case SourceURL:
		return "url"
	default:
		return "none"
	}
}

// Options configures a Service.
type Options struct {
	// Trim strips surrounding whitespace from every parsed line.
	Trim bool

	// PreferEmbedded tries tag frames before sidecar files in Load.
	PreferEmbedded bool

	// Track computes sidecar and export paths for audio files.
	Track *model.TrackConfig

	// AudioExtensions lists the extensions Load treats as audio files.
	AudioExtensions []string
}

// Service resolves lyrics from text, files, tags and URLs.
//
// Every From* method returns nil when the source is unavailable or holds no
// lyrics; the cause is logged, never returned. Panics raised while parsing are
// recovered and logged as errors.
//
// Example:
//
//	svc := lyrics.NewService(opts, audio.NewTagger(nil), http.NewClient(0), log)
//	lines, source := svc.Load(ctx, "/music/Artist/01 Song.mp3")
type Service struct {
	opts   Options
	parser *lrc.Parser
	tagger *audio.Tagger
	client *http.Client
	log    zerolog.Logger
}

// NewService creates a new Service.
//
// A nil tagger or client disables embedded or remote lyrics respectively.
func NewService(opts Options, tagger *audio.Tagger, client *http.Client, log zerolog.Logger) *Service {
	if opts.Track == nil {
		opts.Track = &model.TrackConfig{LyricExtensions: []string{".lrc", ".txt"}}
	}
	if len(opts.AudioExtensions) == 0 {
		opts.AudioExtensions = []string{".mp3", ".flac", ".ogg", ".m4a", ".opus", ".wav"}
	}
	return &Service{
		opts:   opts,
		parser: lrc.NewParser(opts.Trim),
		tagger: tagger,
		client: client,
		log:    log.With().Str("component", "lyrics").Logger(),
	}
}

// FromText parses an LRC document.
func (s *Service) FromText(text string) []model.LyricLine {
	lines, err := s.parse(text)
	if err != nil {
		s.log.Error().Err(err).Msg("parse lyrics")
		return nil
	}
	return lines
}

// FromTextLines parses an LRC document given as separate lines.
func (s *Service) FromTextLines(lines []string) []model.LyricLine {
	return s.FromText(strings.Join(lines, "\n"))
}

// FromFrame decodes a USLT/SYLT frame body and parses its text.
func (s *Service) FromFrame(body []byte) []model.LyricLine {
	text, ok := audio.DecodeFrameText(body)
	if !ok {
		s.log.Debug().Int("size", len(body)).Msg("undecodable lyric frame")
		return nil
	}
	return s.FromText(text)
}

// FromSidecar parses the first readable sidecar lyric file of track.
func (s *Service) FromSidecar(ctx context.Context, track *model.Track) []model.LyricLine {
	for _, path := range track.LyricPaths {
		lines, err := s.fromFile(ctx, path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				s.log.Debug().Err(err).Str("path", path).Msg("sidecar unavailable")
			}
			continue
		}
		return lines
	}
	return nil
}

// FromEmbedded parses the first lyric frame of the audio file at path that
// yields lines. Frames are tried in the order the tagger returns them.
func (s *Service) FromEmbedded(path string) []model.LyricLine {
	if s.tagger == nil {
		return nil
	}

	frames, err := s.tagger.LyricFrames(path)
	if err != nil {
		s.log.Debug().Err(err).Str("path", path).Msg("embedded lyrics unavailable")
		return nil
	}

	for _, frame := range frames {
		var lines []model.LyricLine
		if frame.Lines != nil {
			lines = s.FromTextLines(frame.Lines)
		} else {
			lines = s.FromFrame(frame.Body)
		}
		if lines != nil {
			return lines
		}
		s.log.Debug().Str("path", path).Str("frame", frame.ID).Msg("empty lyric frame")
	}
	return nil
}

// FromURL fetches and parses a remote LRC document.
func (s *Service) FromURL(ctx context.Context, url string) []model.LyricLine {
	if s.client == nil {
		return nil
	}

	body, err := s.client.Get(ctx, url)
	if err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("remote lyrics unavailable")
		return nil
	}

	text, err := ioutils.DecodeText(body)
	if err != nil {
		s.log.Debug().Err(err).Str("url", url).Msg("undecodable remote lyrics")
		return nil
	}
	return s.FromText(text)
}

// Load resolves lyrics for a URL, an audio file or a lyric file and reports
// which source produced them.
//
// Audio files are resolved through their sidecar files and their tag, in
// the order set by Options.PreferEmbedded. Any other path is read as text.
func (s *Service) Load(ctx context.Context, input string) ([]model.LyricLine, Source) {
	if isURL(input) {
		lines := s.FromURL(ctx, input)
		if lines == nil {
			return nil, SourceNone
		}
		return lines, SourceURL
	}

	if s.IsAudio(input) {
		return s.LoadTrack(ctx, model.NewTrack(input, s.opts.Track))
	}

	lines, err := s.fromFile(ctx, input)
	if err != nil {
		s.log.Debug().Err(err).Str("path", input).Msg("lyric file unavailable")
		return nil, SourceNone
	}
	return lines, SourceText
}

// LoadTrack resolves lyrics for an audio track from its sidecar files and
// its tag.
func (s *Service) LoadTrack(ctx context.Context, track *model.Track) ([]model.LyricLine, Source) {
	type attempt struct {
		source Source
		load   func() []model.LyricLine
	}

	attempts := []attempt{
		{SourceSidecar, func() []model.LyricLine { return s.FromSidecar(ctx, track) }},
		{SourceEmbedded, func() []model.LyricLine { return s.FromEmbedded(track.Path) }},
	}
	if s.opts.PreferEmbedded {
		slices.Reverse(attempts)
	}

	for _, a := range attempts {
		if lines := a.load(); lines != nil {
			return lines, a.source
		}
	}
	return nil, SourceNone
}

// Embed writes lines into the audio file's tag as LRC text.
func (s *Service) Embed(path string, lines []model.LyricLine) error {
	if s.tagger == nil {
		return errors.New("embedding disabled")
	}
	if len(lines) == 0 {
		return ErrNoLyrics
	}

	content, err := NewWriter(FormatLRC).Render(lines)
	if err != nil {
		return err
	}
	return s.tagger.SaveLyrics(path, strings.TrimSuffix(content, "\n"))
}

// IsAudio reports whether path has one of the configured audio extensions.
func (s *Service) IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range s.opts.AudioExtensions {
		if strings.EqualFold(e, ext) || strings.EqualFold("."+e, ext) {
			return true
		}
	}
	return false
}

func (s *Service) fromFile(ctx context.Context, path string) ([]model.LyricLine, error) {
	text, err := ioutils.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}

	lines := s.FromText(text)
	if lines == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLyrics)
	}
	return lines, nil
}

// parse runs the parser, turning a panic into an error.
func (s *Service) parse(text string) (lines []model.LyricLine, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return s.parser.Parse(text), nil
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
