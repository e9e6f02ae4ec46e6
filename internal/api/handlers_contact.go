// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/softhalostudio/studio/internal/logging"
	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
	"github.com/softhalostudio/studio/internal/storage"
)

// SubmitContact accepts a public contact form submission. The message is
// persisted first; the notification email is sent asynchronously and
// best-effort, so a broken SMTP relay never loses an inquiry.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if !decodeJSONBody(w, r, &req) {
		metrics.ContactMessages.WithLabelValues("invalid").Inc()
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		metrics.ContactMessages.WithLabelValues("invalid").Inc()
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	}
	if err := h.messages.Create(r.Context(), msg); err != nil {
		metrics.ContactMessages.WithLabelValues("database_error").Inc()
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save message", err)
		return
	}
	metrics.ContactMessages.WithLabelValues("accepted").Inc()

	if h.notifier != nil {
		go h.sendNotification(msg)
	}

	respondOK(w, http.StatusCreated, msg)
}

// sendNotification emails the studio about a new inquiry. Runs detached
// from the request.
func (h *Handler) sendNotification(msg *models.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.notifier.NotifyContact(ctx, msg); err != nil {
		metrics.NotificationEmails.WithLabelValues("failed").Inc()
		logging.Error().Err(err).Str("message_id", msg.ID).Msg("contact notification failed")
		return
	}
	metrics.NotificationEmails.WithLabelValues("sent").Inc()
}

// ListMessages returns all contact messages, newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load messages", err)
		return
	}
	respondOK(w, http.StatusOK, messages)
}

// MarkMessageRead flags a message as read.
func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, err := h.messages.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update message", err)
		return
	}
	respondOK(w, http.StatusOK, msg)
}

// DeleteMessage removes a message.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.messages.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete message", err)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{"id": id})
}
