// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Command server runs the studio backend: the public portfolio API, the
// contact form, and the token-protected admin API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/softhalostudio/studio/internal/analytics"
	"github.com/softhalostudio/studio/internal/api"
	"github.com/softhalostudio/studio/internal/auth"
	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/imagehost"
	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/mailer"
	"github.com/softhalostudio/studio/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	// Optional integrations. Each one degrades its endpoints when absent
	// instead of blocking startup.
	var imageHost api.ImageHost
	if cfg.StorageEnabled() {
		host, err := imagehost.New(ctx, &cfg.Storage)
		if err != nil {
			return fmt.Errorf("configuring object storage: %w", err)
		}
		imageHost = host
		logging.Info().Str("bucket", cfg.Storage.Bucket).Msg("object storage enabled")
	} else {
		logging.Warn().Msg("object storage not configured, image uploads disabled")
	}

	var stats api.StatsService
	if cfg.AnalyticsEnabled() {
		cache := analytics.NewCacheClient(&cfg.Cache)
		if cache != nil {
			defer cache.Close()
		}
		stats = analytics.NewService(analytics.NewClient(&cfg.Analytics), &cfg.Analytics, cache)
		logging.Info().Str("property_id", cfg.Analytics.PropertyID).Msg("analytics enabled")
	} else {
		logging.Warn().Msg("analytics not configured, stats endpoint disabled")
	}

	notifier, err := mailer.New(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("configuring mailer: %w", err)
	}
	var apiNotifier api.Notifier
	if notifier != nil {
		apiNotifier = notifier
		logging.Info().Str("host", cfg.SMTP.Host).Msg("contact notifications enabled")
	} else {
		logging.Warn().Msg("smtp not configured, contact notifications disabled")
	}

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("configuring token manager: %w", err)
	}

	handler := api.NewHandler(
		cfg,
		store.Images,
		store.Messages,
		imageHost,
		stats,
		apiNotifier,
		store,
		auth.NewCredentialChecker(&cfg.Security),
		tokens,
	)
	router := api.NewRouter(handler, auth.NewMiddleware(tokens), api.NewChiMiddleware(&cfg.Security))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logging.Info().Msg("server stopped")
	return nil
}
