// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/golazoapp/golazo/internal/config"
	"github.com/golazoapp/golazo/internal/db"
	"github.com/golazoapp/golazo/internal/league"
	"github.com/golazoapp/golazo/internal/scheduler"
	"github.com/golazoapp/golazo/internal/scorer"
)

const defaultShutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func configPath() string {
	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		return path
	}
	return "config/config.yaml"
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	client := league.NewClient(cfg.League.BaseURL, cfg.League.RequestTimeout())
	if cfg.League.Token != "" {
		client = client.WithToken(cfg.League.Token)
	}

	console := scorer.NewService(client, database, scorer.Config{
		MinutesPerHalf:  cfg.Match.MinutesPerHalf,
		MinutesHalftime: cfg.Match.MinutesHalftime,
		StaleAfter:      cfg.Match.SnapshotMaxAge(),
		PersistInterval: cfg.Match.PersistInterval(),
	})

	jobs, err := scheduler.NewService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterConsoleJobs(jobs, console, database, scheduler.JobsConfig{
		StaleAfter:       cfg.Match.SnapshotMaxAge(),
		EvictionInterval: cfg.Jobs.EvictionInterval(),
		RefreshInterval:  cfg.Jobs.RefreshInterval(),
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register background jobs")
	}

	server := newServer(cfg, console)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	jobs.Start()

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := jobs.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown failed")
		}
		// Unmount sessions so clock runners stop and final snapshots land.
		for _, matchID := range console.MountedMatches() {
			if err := console.Unmount(shutdownCtx, matchID); err != nil {
				log.Error().Err(err).Str("match_id", matchID).Msg("Session unmount failed")
			}
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
