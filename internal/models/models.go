// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package models defines the API data structures shared between the
// handlers, the storage layer, and clients.
package models

import "time"

// Image is a single portfolio entry. ImageURL points at the public object
// store; PublicID is the storage key used for deletion.
type Image struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"imageUrl"`
	PublicID     string    `json:"publicId,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ImageUpdate carries the mutable fields of an image. Nil fields are
// left unchanged.
type ImageUpdate struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category     *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	DisplayOrder *int    `json:"displayOrder,omitempty" validate:"omitempty,min=0"`
}

// ContactMessage is an inquiry submitted through the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactRequest is the public contact form payload. Phone and Service
// are optional; everything else is required.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Service string `json:"service" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token. The token is a bearer
// credential; clients send it back as "Authorization: Bearer <token>".
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SiteStats is the analytics summary shown on the admin dashboard.
type SiteStats struct {
	PageViews30d       int     `json:"pageViews30d"`
	PastPageViews      int     `json:"pastPageViews"`
	TotalVisitsAllTime int     `json:"totalVisitsAllTime"`
	UniqueVisitors     int     `json:"uniqueVisitors"`
	AvgSessionDuration int     `json:"avgSessionDuration"`
	BounceRate         float64 `json:"bounceRate"`
}

// APIResponse is the standard envelope for every JSON response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS float64   `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the machine-readable error payload. Code is stable across
// releases; Message is for humans.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
