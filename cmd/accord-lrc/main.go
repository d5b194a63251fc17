package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/config"
	"github.com/reindex-ot/AccordLegacy/internal/http"
	ioutils "github.com/reindex-ot/AccordLegacy/internal/io"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
	"github.com/reindex-ot/AccordLegacy/internal/model"
	"github.com/reindex-ot/AccordLegacy/internal/scan"
)

func main() {
	// Command line flags
	var (
		scanFlag    = flag.String("scan", "", "Scan a music directory and resolve lyrics for every track")
		exportFlag  = flag.Bool("export", false, "With -scan, write an export file for every track")
		watchFlag   = flag.Bool("watch", false, "With -scan, keep watching the directory for changed tracks")
		embedFlag   = flag.Bool("embed", false, "Write the sidecar lyrics of the given MP3 files into their tags")
		formatFlag  = flag.String("format", "", "Export format: lrc, srt, ttml, json, txt (overrides config)")
		outputFlag  = flag.String("output", "", "Export path template, e.g. /exports/{name} (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		envFlag     = flag.String("env", "", "Path to .env file (default .env)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		trimFlag    = flag.Bool("trim", true, "Trim whitespace around lyric lines (overrides config)")
	)

	flag.Parse()

	if *scanFlag == "" && flag.NArg() == 0 {
		fmt.Println("accord-lrc - Parse and convert synchronized lyrics")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  accord-lrc [options] <track|lyric file|URL|->...")
		fmt.Println("  accord-lrc -scan <DIR> [-export] [-watch] [options]")
		fmt.Println("  accord-lrc -embed <track.mp3>...")
		fmt.Println()
		fmt.Println("For interactive mode, use: accord-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	overrides := config.Overrides{
		EnvFile:      *envFlag,
		ExportFormat: *formatFlag,
		ExportPath:   *outputFlag,
	}
	if *verboseFlag {
		overrides.LogLevel = "debug"
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "trim" {
			overrides.TrimLines = trimFlag
		}
	})

	settings, err := config.Load(*configFlag, overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(settings.Level())

	service := lyrics.NewService(
		settings.ToLyricsOptions(),
		audio.NewTagger(settings.ToTagConfig()),
		http.NewClient(settings.Timeout()),
		log,
	)

	// Handle interrupts
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var failed bool
	switch {
	case *scanFlag != "":
		failed = runScan(ctx, settings, service, log, *scanFlag, *exportFlag, *verboseFlag)
		if !failed && *watchFlag {
			failed = runWatch(ctx, settings, service, log, *scanFlag, *exportFlag)
		}
	case *embedFlag:
		failed = runEmbed(ctx, settings, service, log, flag.Args())
	default:
		failed = runConvert(ctx, settings, service, log, flag.Args(), *outputFlag != "")
	}

	if ctx.Err() != nil && !*watchFlag {
		log.Warn().Msg("cancelled")
		os.Exit(130)
	}
	if failed {
		os.Exit(1)
	}
}

// runConvert resolves every input and prints or exports it.
func runConvert(ctx context.Context, settings *config.Settings, service *lyrics.Service, log zerolog.Logger, inputs []string, toFile bool) bool {
	writer := lyrics.NewWriter(settings.Format())
	trackCfg := settings.ToTrackConfig()

	var failed bool
	for _, input := range inputs {
		var lines []model.LyricLine
		source := lyrics.SourceText

		if input == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Error().Err(err).Msg("read stdin")
				failed = true
				continue
			}
			text, err := ioutils.DecodeText(data)
			if err != nil {
				log.Error().Err(err).Msg("decode stdin")
				failed = true
				continue
			}
			lines = service.FromText(text)
		} else {
			lines, source = service.Load(ctx, input)
		}

		if lines == nil {
			log.Warn().Str("input", input).Msg("no lyrics found")
			failed = true
			continue
		}
		log.Debug().Str("input", input).Stringer("source", source).Int("lines", len(lines)).Msg("lyrics loaded")

		content, err := writer.Render(lines)
		if err != nil {
			log.Error().Err(err).Str("input", input).Msg("render lyrics")
			failed = true
			continue
		}

		if !toFile || input == "-" || source == lyrics.SourceURL {
			fmt.Print(content)
			continue
		}

		path := model.NewTrack(input, trackCfg).ExportPath + writer.Format().Extension()
		if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
			log.Error().Err(err).Str("path", path).Msg("write export")
			failed = true
			continue
		}
		log.Info().Str("input", input).Str("path", path).Msg("exported")
	}

	return failed
}

// runEmbed copies sidecar lyrics of every MP3 input into its tag.
func runEmbed(ctx context.Context, settings *config.Settings, service *lyrics.Service, log zerolog.Logger, inputs []string) bool {
	trackCfg := settings.ToTrackConfig()

	var failed bool
	for _, input := range inputs {
		track := model.NewTrack(input, trackCfg)
		if !track.IsMP3() {
			log.Warn().Str("input", input).Msg("only MP3 files carry ID3v2 lyrics")
			failed = true
			continue
		}

		lines := service.FromSidecar(ctx, track)
		if lines == nil {
			log.Warn().Str("input", input).Msg("no sidecar lyrics found")
			failed = true
			continue
		}

		if err := service.Embed(track.Path, lines); err != nil {
			log.Error().Err(err).Str("input", input).Msg("embed lyrics")
			failed = true
			continue
		}
		log.Info().Str("input", input).Int("lines", len(lines)).Msg("lyrics embedded")
	}

	return failed
}

// runScan resolves lyrics for a whole library.
func runScan(ctx context.Context, settings *config.Settings, service *lyrics.Service, log zerolog.Logger, root string, export, verbose bool) bool {
	manager := scan.NewManager(settings, service, scan.Options{Export: export}, log, func(event scan.ProgressEvent) {
		if event.Level == scan.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case scan.LevelError:
			prefix = "✗ "
		case scan.LevelWarning:
			prefix = "! "
		case scan.LevelSuccess:
			prefix = "✓ "
		case scan.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})

	results, err := manager.Scan(ctx, root)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Str("root", root).Msg("scan failed")
		}
		return true
	}

	var failed bool
	for _, r := range results {
		if r.Err != nil && r.Lines != nil {
			failed = true
		}
	}

	processed, found, total := manager.GetProgress()
	log.Info().Int32("processed", processed).Int32("found", found).Int32("total", total).Msg("scan finished")

	return failed
}

// runWatch re-resolves tracks whose files change until interrupted.
func runWatch(ctx context.Context, settings *config.Settings, service *lyrics.Service, log zerolog.Logger, root string, export bool) bool {
	manager := scan.NewManager(settings, service, scan.Options{Export: export}, log, nil)

	watcher, err := manager.Watch(ctx, root, func(r scan.Result) {
		event := log.Info()
		if r.Err != nil {
			event = log.Warn().Err(r.Err)
		}
		event.Str("track", r.Track.Path).Stringer("source", r.Source).Int("lines", len(r.Lines)).
			Str("export", r.ExportPath).Msg("track updated")
	})
	if err != nil {
		log.Error().Err(err).Str("root", root).Msg("watch failed")
		return true
	}

	<-ctx.Done()
	watcher.Stop()
	return false
}
