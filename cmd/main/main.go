package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/day-tracker/pkg/config"
	"github.com/matt-steen/day-tracker/pkg/controller"
	"github.com/matt-steen/day-tracker/pkg/db"
	"github.com/matt-steen/day-tracker/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", filepath.Join(config.DefaultDir(), "config.yaml"), "path to the config file")
	debug := flag.Bool("debug", false, "log at debug level regardless of the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	filePerms := 0o666

	if err = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		panic(err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msgf("unknown log level '%s'; using info", cfg.LogLevel)

		level = zerolog.InfoLevel
	}

	if *debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Info().Str("config", *configPath).Str("db", cfg.Database).Msg("starting application...")

	if err = os.MkdirAll(filepath.Dir(cfg.Database), 0o700); err != nil {
		panic(err)
	}

	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		panic(err)
	}

	defer database.Close()

	events := store.New(database, store.WithKey(cfg.StorageKey), store.WithPalette(cfg.Palette))
	events.Load(ctx)

	controller, err := controller.NewController(ctx, events)
	if err != nil {
		panic(err)
	}

	if err = controller.Go(); err != nil {
		log.Error().Err(err).Msg("application stopped with an error")
	}
}
