// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/softhalostudio/studio/internal/metrics"
	"github.com/softhalostudio/studio/internal/models"
	"github.com/softhalostudio/studio/internal/storage"
)

// ListImages returns the portfolio, ordered for display. An optional
// ?category= filter narrows the set.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	images, err := h.images.List(r.Context(), category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load images", err)
		return
	}
	respondOK(w, http.StatusOK, images)
}

// GetImage returns a single portfolio image.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	img, err := h.images.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Image not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load image", err)
		return
	}
	respondOK(w, http.StatusOK, img)
}

// imageForm is the validated metadata part of an upload.
type imageForm struct {
	Title        string `validate:"required,min=1,max=200"`
	Description  string `validate:"max=2000"`
	Category     string `validate:"required,min=1,max=100"`
	DisplayOrder int    `validate:"min=0"`
}

// CreateImage handles a multipart upload: metadata fields plus an image
// file. The file is stored first; if the database insert then fails, the
// stored object is cleaned up so no orphan remains.
func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	if h.imageHost == nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_ERROR", "Image storage is not configured", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.Server.MaxUploadBytes); err != nil {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "Image exceeds the upload size limit", err)
		return
	}

	form := imageForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}
	if v := r.FormValue("displayOrder"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			metrics.ImageUploads.WithLabelValues("rejected").Inc()
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "displayOrder must be an integer", nil)
			return
		}
		form.DisplayOrder = order
	}
	if apiErr := validateRequest(&form); apiErr != nil {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "image file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		metrics.ImageUploads.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Only image files are accepted", nil)
		return
	}

	url, key, err := h.imageHost.Upload(r.Context(), file, contentType)
	if err != nil {
		metrics.ImageUploads.WithLabelValues("storage_error").Inc()
		respondError(w, http.StatusBadGateway, "STORAGE_ERROR", "Failed to store image", err)
		return
	}

	img := &models.Image{
		Title:        form.Title,
		Description:  form.Description,
		Category:     form.Category,
		ImageURL:     url,
		PublicID:     key,
		DisplayOrder: form.DisplayOrder,
	}
	if err := h.images.Create(r.Context(), img); err != nil {
		h.imageHost.Delete(r.Context(), key)
		metrics.ImageUploads.WithLabelValues("storage_error").Inc()
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save image", err)
		return
	}

	metrics.ImageUploads.WithLabelValues("success").Inc()
	metrics.ImageUploadBytes.Observe(float64(header.Size))
	respondOK(w, http.StatusCreated, img)
}

// UpdateImage changes image metadata. The stored file is untouched.
func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd models.ImageUpdate
	if !decodeJSONBody(w, r, &upd) {
		return
	}
	if apiErr := validateRequest(&upd); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	img, err := h.images.Update(r.Context(), id, &upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Image not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update image", err)
		return
	}
	respondOK(w, http.StatusOK, img)
}

// DeleteImage removes an image. The stored object is deleted best-effort
// after the database row, so a dangling object can never resurrect a
// deleted portfolio entry.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	img, err := h.images.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Image not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete image", err)
		return
	}

	if h.imageHost != nil {
		h.imageHost.Delete(r.Context(), img.PublicID)
	}

	respondOK(w, http.StatusOK, map[string]string{"id": img.ID})
}
