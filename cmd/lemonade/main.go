package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/appengine-ltd/lemonade-stand/internal/config"
	"github.com/appengine-ltd/lemonade-stand/internal/history"
	"github.com/appengine-ltd/lemonade-stand/internal/ui"
)

// version, commit, date are injected at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		seed        int64
		days        int
		logLevel    string
		noHistory   bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.IntVar(&days, "days", 0, "end the game after this many days (0 plays until you quit)")
	flag.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flag.BoolVar(&noHistory, "no-history", false, "skip the end-of-game season totals")
	flag.Parse()

	if showVersion {
		fmt.Printf("Lemonade Stand %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(configPath, seed, days, logLevel, noHistory); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, days int, logLevel string, noHistory bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Only flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "days":
			cfg.RunLength = config.RunLength{OpenEnded: days == 0, Days: days}
		case "log-level":
			cfg.LogLevel = logLevel
		case "no-history":
			cfg.History = !noHistory
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lemonade",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	logger.SetLevel(level)

	var store *history.Store
	if cfg.History {
		store, err = history.Open(logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	app := ui.NewApp(ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Game:      cfg.GameConfig(),
		In:        os.Stdin,
		Out:       os.Stdout,
		Logger:    logger,
		History:   store,
	})
	return app.Run()
}
