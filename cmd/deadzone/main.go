// Package main is the entry point for Deadzone.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/samdwyer/deadzone/internal/config"
	"github.com/samdwyer/deadzone/internal/game"
	"github.com/samdwyer/deadzone/internal/gamedata"
	"github.com/samdwyer/deadzone/internal/logger"
	"github.com/samdwyer/deadzone/internal/save"
	"github.com/samdwyer/deadzone/internal/session"
	"github.com/samdwyer/deadzone/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	closer, err := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	defer closer.Close()
	mainLog := logger.For("main")

	ctx := context.Background()

	if cfg.TelemetryEnabled {
		telemetry.Honeycomb{APIKey: cfg.HoneycombAPIKey, Dataset: cfg.HoneycombDataset}.ConfigureEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{SampleRatio: cfg.TelemetryRatio, Seed: cfg.Seed})
		if err != nil {
			// Continue without telemetry - game still works
			mainLog.WithError(err).Warn("telemetry setup failed, running without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					mainLog.WithError(err).Error("telemetry shutdown failed")
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	catalog := gamedata.MustLoadCatalog()

	store, err := save.Open(cfg.SaveBackend, cfg.SaveDir, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open save store: %v", err)
	}
	defer store.Close()

	sess, err := session.New(ctx, catalog, session.Options{
		Name:  cfg.PlayerName,
		Start: cfg.StartLocation,
		Seed:  cfg.Seed,
		Store: store,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	g, err := game.New(sess)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}
