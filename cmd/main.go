package main

import (
	"cmp"
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytxl/internal/services"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	defaultConfigPath = "config.toml"
	configPathEnv     = "YTXL_CONFIG"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	configPath := cmp.Or(os.Getenv(configPathEnv), defaultConfigPath)
	config, err := shared.LoadConfigOrDefault(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var youtubeService services.Service
	if key, err := config.ResolveAPIKey(); err != nil {
		logger.Warn("YouTube client disabled", "error", err)
	} else {
		svc, err := services.NewYouTubeService(ctx, services.YouTubeOpts{
			APIKey:            key,
			RequestsPerSecond: config.YouTube.RequestsPerSecond,
		})
		if err != nil {
			logger.Warn("failed to create YouTube client", "error", err)
		} else {
			youtubeService = svc
		}
	}

	db, err := shared.OpenHistory(config.Database)
	if err != nil {
		logger.Warn("history disabled", "path", config.Database.Path, "error", err)
	} else {
		defer db.Close()
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		YouTube:    youtubeService,
		DB:         db,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "ytxl",
		Usage:   "Fetch YouTube video, mix and playlist metadata into spreadsheets",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
		Action:   runner.Menu,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
