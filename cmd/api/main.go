package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/aqarai/pkg/api"
	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/db"
	"github.com/urmzd/aqarai/pkg/schema"

	_ "github.com/urmzd/aqarai/docs"
)

// @title           Aqarai API
// @version         1.0
// @description     REST API bridging the Aqara cloud for smart home control

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/aqarai/aqarai.db)")
	addr := flag.String("addr", "0.0.0.0:8080", "API listen address")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	// Resolve credentials: environment over active profile
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Incomplete vendor credentials")
	}

	log.Info().
		Str("region", cfg.Region).
		Str("endpoint", cfg.BaseURL()).
		Msg("Configuration loaded")

	client, err := aqara.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build vendor client")
	}

	validator := schema.NewValidator()

	// Create API router
	router := api.NewRouter(client, validator, cfg)

	// Handle shutdown gracefully. In-flight vendor calls are not drained;
	// queued ones are abandoned with the process.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		client.ClearCache()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	log.Info().Str("address", *addr).Msg("Starting API server")

	if err := router.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
