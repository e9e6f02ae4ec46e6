// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package api provides the HTTP surface of the studio backend: the
// public portfolio and contact endpoints, the login endpoint, and the
// token-protected admin endpoints.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, store interfaces
//   - handlers_health.go: health endpoint
//   - handlers_auth.go: login
//   - handlers_images.go: portfolio image CRUD
//   - handlers_contact.go: contact form and message management
//   - handlers_analytics.go: admin dashboard stats
package api

import (
	"context"
	"io"
	"time"

	"github.com/softhalostudio/studio/internal/auth"
	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/models"
)

// ImageStore is the persistence surface for portfolio images.
type ImageStore interface {
	List(ctx context.Context, category string) ([]models.Image, error)
	Get(ctx context.Context, id string) (*models.Image, error)
	Create(ctx context.Context, img *models.Image) error
	Update(ctx context.Context, id string, upd *models.ImageUpdate) (*models.Image, error)
	Delete(ctx context.Context, id string) (*models.Image, error)
}

// MessageStore is the persistence surface for contact messages.
type MessageStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ImageHost stores uploaded image bytes and serves them publicly.
type ImageHost interface {
	Upload(ctx context.Context, body io.Reader, contentType string) (url, key string, err error)
	Delete(ctx context.Context, key string)
}

// StatsService provides the analytics snapshot for the admin dashboard.
type StatsService interface {
	Stats(ctx context.Context) (*models.SiteStats, bool, error)
}

// Notifier delivers contact notifications.
type Notifier interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
}

// Pinger reports backing-store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers. Optional dependencies
// (imageHost, stats, notifier) may be nil; the affected endpoints then
// degrade or report unavailability instead of failing at startup.
type Handler struct {
	cfg       *config.Config
	images    ImageStore
	messages  MessageStore
	imageHost ImageHost
	stats     StatsService
	notifier  Notifier
	db        Pinger

	credentials *auth.CredentialChecker
	tokens      *auth.TokenManager

	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(
	cfg *config.Config,
	images ImageStore,
	messages MessageStore,
	imageHost ImageHost,
	stats StatsService,
	notifier Notifier,
	db Pinger,
	credentials *auth.CredentialChecker,
	tokens *auth.TokenManager,
) *Handler {
	return &Handler{
		cfg:         cfg,
		images:      images,
		messages:    messages,
		imageHost:   imageHost,
		stats:       stats,
		notifier:    notifier,
		db:          db,
		credentials: credentials,
		tokens:      tokens,
		startTime:   time.Now(),
	}
}
