// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/moodswipe/internal/api"
	"github.com/tomtom215/moodswipe/internal/auth"
	"github.com/tomtom215/moodswipe/internal/catalog"
	"github.com/tomtom215/moodswipe/internal/classifier"
	"github.com/tomtom215/moodswipe/internal/config"
	"github.com/tomtom215/moodswipe/internal/database"
	"github.com/tomtom215/moodswipe/internal/logging"
	"github.com/tomtom215/moodswipe/internal/recommend"
	"github.com/tomtom215/moodswipe/internal/supervisor"
	"github.com/tomtom215/moodswipe/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("addr", cfg.Server.Addr()).
		Bool("classifier_remote", cfg.Classifier.URL != "").
		Msg("Starting Moodswipe with supervisor tree")

	// The catalog is read-only for the life of the process. A broken data
	// file is a deployment error, so refuse to start.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	cat, err := catalog.Load(loadCtx, catalogPaths(&cfg.Catalog))
	loadCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}
	report := cat.Lint()
	logging.Info().
		Int("songs", report.Songs).
		Int("moods", report.Moods).
		Int("instrument_moods", report.InstrumentMoods).
		Msg("Catalog loaded")
	if len(report.UnknownRelated) > 0 || len(report.UntaggedMoodSongs) > 0 {
		logging.Warn().
			Strs("unknown_related_moods", report.UnknownRelated).
			Ints("songs_without_mood", report.UntaggedMoodSongs).
			Msg("Catalog has dangling references")
	}

	engine, err := recommend.NewEngine(cat, recommendConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	svc := recommend.NewService(engine, db, db)

	cls, err := classifier.New(&cfg.Classifier)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize classifier")
		return
	}
	defer func() {
		if err := cls.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing classifier cache")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create JWT manager")
		return
	}
	authService, err := auth.NewService(db, jwtManager, cfg.Security.BcryptCost)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create auth service")
		return
	}
	logging.Info().Dur("token_ttl", jwtManager.TTL()).Msg("JWT authentication enabled")

	handler := api.NewHandler(cfg, svc, authService, cls, db, db)
	router := api.NewRouter(
		handler,
		auth.NewMiddleware(jwtManager),
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg)),
	)
	server := newHTTPServer(&cfg.Server, router.Setup())

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval, logging.WithComponent("supervisor")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server added to supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// ServeBackground delivers exactly one result and never closes the channel.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, u := range unstopped {
			logging.Warn().Str("service", u.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
