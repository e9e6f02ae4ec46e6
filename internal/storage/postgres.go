// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package storage implements the PostgreSQL persistence layer for
// portfolio images and contact messages.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/storage/migrations"
)

// ErrNotFound is returned when a row does not exist. Handlers map it to
// a 404 rather than a 500.
var ErrNotFound = errors.New("not found")

// Store owns the database handle and the per-entity repositories.
type Store struct {
	db       *sql.DB
	Images   *ImageRepo
	Messages *MessageRepo
}

// Open connects to PostgreSQL, verifies the connection, and optionally
// applies pending migrations.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	s := &Store{
		db:       db,
		Images:   &ImageRepo{db: db},
		Messages: &MessageRepo{db: db},
	}

	if cfg.MigrateOnStart {
		if err := s.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	return s, nil
}

// RunMigrations applies pending goose migrations from the embedded FS.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return err
	}
	logging.Info().Msg("database migrations applied")
	return nil
}

// Ping reports database reachability for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
