// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
)

// ImageRepo persists portfolio images.
type ImageRepo struct {
	db *sql.DB
}

// List returns images ordered for display: display_order ascending, then
// newest first. An empty category returns everything.
func (r *ImageRepo) List(ctx context.Context, category string) ([]models.Image, error) {
	query := `SELECT id, title, description, category, image_url, public_id, display_order, created_at, updated_at
	          FROM images`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY display_order ASC, created_at DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("list", "images", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.Title, &img.Description, &img.Category,
			&img.ImageURL, &img.PublicID, &img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Get returns a single image by ID.
func (r *ImageRepo) Get(ctx context.Context, id string) (*models.Image, error) {
	query := `SELECT id, title, description, category, image_url, public_id, display_order, created_at, updated_at
	          FROM images WHERE id = $1`

	var img models.Image
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(&img.ID, &img.Title, &img.Description,
		&img.Category, &img.ImageURL, &img.PublicID, &img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt)
	metrics.RecordDBQuery("get", "images", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &img, nil
}

// Create inserts a new image and fills in its generated ID and timestamps.
func (r *ImageRepo) Create(ctx context.Context, img *models.Image) error {
	img.ID = uuid.New().String()
	query := `INSERT INTO images (id, title, description, category, image_url, public_id, display_order)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at, updated_at`

	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, img.ID, img.Title, img.Description,
		img.Category, img.ImageURL, img.PublicID, img.DisplayOrder).
		Scan(&img.CreatedAt, &img.UpdatedAt)
	metrics.RecordDBQuery("create", "images", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Update applies the non-nil fields of upd to an existing image and
// returns the updated row.
func (r *ImageRepo) Update(ctx context.Context, id string, upd *models.ImageUpdate) (*models.Image, error) {
	query := `UPDATE images SET
	            title = COALESCE($2, title),
	            description = COALESCE($3, description),
	            category = COALESCE($4, category),
	            display_order = COALESCE($5, display_order),
	            updated_at = now()
	          WHERE id = $1
	          RETURNING id, title, description, category, image_url, public_id, display_order, created_at, updated_at`

	var img models.Image
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id, upd.Title, upd.Description, upd.Category, upd.DisplayOrder).
		Scan(&img.ID, &img.Title, &img.Description, &img.Category, &img.ImageURL,
			&img.PublicID, &img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt)
	metrics.RecordDBQuery("update", "images", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &img, nil
}

// Delete removes an image and returns the deleted row so the caller can
// clean up the stored object.
func (r *ImageRepo) Delete(ctx context.Context, id string) (*models.Image, error) {
	query := `DELETE FROM images WHERE id = $1
	          RETURNING id, title, description, category, image_url, public_id, display_order, created_at, updated_at`

	var img models.Image
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(&img.ID, &img.Title, &img.Description,
		&img.Category, &img.ImageURL, &img.PublicID, &img.DisplayOrder, &img.CreatedAt, &img.UpdatedAt)
	metrics.RecordDBQuery("delete", "images", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &img, nil
}
