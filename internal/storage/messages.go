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

// MessageRepo persists contact form submissions.
type MessageRepo struct {
	db *sql.DB
}

// Create inserts a new contact message and fills in its generated ID and
// timestamp. New messages start unread.
func (r *MessageRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = uuid.New().String()
	query := `INSERT INTO contact_messages (id, name, email, phone, service, message)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING read, created_at`

	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.Name, msg.Email,
		msg.Phone, msg.Service, msg.Message).Scan(&msg.Read, &msg.CreatedAt)
	metrics.RecordDBQuery("create", "contact_messages", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	query := `SELECT id, name, email, phone, service, message, read, created_at
	          FROM contact_messages ORDER BY created_at DESC`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	metrics.RecordDBQuery("list", "contact_messages", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Phone,
			&msg.Service, &msg.Message, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkRead flags a message as read and returns the updated row. Marking
// an already-read message is a no-op that still succeeds.
func (r *MessageRepo) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `UPDATE contact_messages SET read = TRUE WHERE id = $1
	          RETURNING id, name, email, phone, service, message, read, created_at`

	var msg models.ContactMessage
	start := time.Now()
	err := r.db.QueryRowContext(ctx, query, id).Scan(&msg.ID, &msg.Name, &msg.Email,
		&msg.Phone, &msg.Service, &msg.Message, &msg.Read, &msg.CreatedAt)
	metrics.RecordDBQuery("mark_read", "contact_messages", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &msg, nil
}

// Delete removes a message.
func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	metrics.RecordDBQuery("delete", "contact_messages", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
