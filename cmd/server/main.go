// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

// Package main is the entry point for the Zoommaps server.
//
// Zoommaps stores named maps, each with an image and a set of clickable
// hotspots that can link ("zoom") to other maps, behind a small REST API
// with token-based authentication and role-based write access.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered loading (defaults, config.yaml, env)
//  2. Logging: global zerolog logger
//  3. Store: embedded BadgerDB document store
//  4. Services, JWT manager, router
//  5. HTTP server with graceful shutdown on SIGINT/SIGTERM
//
// Minimal configuration:
//
//	export JWT_SECRET=<32+ character secret>
//	export DATABASE_PATH=./data
//	./zoommaps
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zoommaps/zoommaps/internal/api"
	"github.com/zoommaps/zoommaps/internal/auth"
	"github.com/zoommaps/zoommaps/internal/config"
	"github.com/zoommaps/zoommaps/internal/logging"
	"github.com/zoommaps/zoommaps/internal/maps"
	"github.com/zoommaps/zoommaps/internal/store"
	"github.com/zoommaps/zoommaps/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_path", cfg.Database.Path).
		Bool("db_in_memory", cfg.Database.InMemory).
		Msg("Starting Zoommaps")

	st, err := store.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	handler := api.NewHandler(
		maps.NewService(st.Maps()),
		users.NewService(st.Users()),
		jwtManager,
	)
	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager), cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logging.Info().Str("signal", sig.String()).Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Shutdown complete")
}
