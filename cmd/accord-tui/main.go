package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/reindex-ot/AccordLegacy/internal/audio"
	"github.com/reindex-ot/AccordLegacy/internal/config"
	"github.com/reindex-ot/AccordLegacy/internal/http"
	"github.com/reindex-ot/AccordLegacy/internal/lyrics"
	"github.com/reindex-ot/AccordLegacy/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file")
		logFlag    = flag.String("log", "", "Write logs to this file")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag, config.Overrides{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs only go to a file.
	var out io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := zerolog.New(out).With().Timestamp().Logger().Level(settings.Level())

	service := lyrics.NewService(
		settings.ToLyricsOptions(),
		audio.NewTagger(settings.ToTagConfig()),
		http.NewClient(settings.Timeout()),
		log,
	)

	if err := tui.Run(settings, service, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
