// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/softhalostudio/studio/internal/auth"
	"github.com/softhalostudio/studio/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler shape for r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers, authentication, and middleware into the HTTP tree.
type Router struct {
	handler       *Handler
	authMW        *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates the router.
func NewRouter(handler *Handler, authMW *auth.Middleware, mw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		authMW:        authMW,
		chiMiddleware: mw,
	}
}

// Setup configures all HTTP routes.
//
// Everything under /api/v1/admin requires a valid bearer token; the
// public surface is limited to the portfolio reads, the contact form,
// login, and health.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Authentication. Login carries the strictest rate limit: 5
	// attempts per 5 minutes per IP.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// Public portfolio and contact endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/images", router.handler.ListImages)
		r.Get("/images/{id}", router.handler.GetImage)
		r.With(router.chiMiddleware.RateLimitContact()).Post("/contact", router.handler.SubmitContact)
	})

	// Admin endpoints. Bearer token required for every route.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.authMW.Handler)

		r.Post("/images", router.handler.CreateImage)
		r.Put("/images/{id}", router.handler.UpdateImage)
		r.Delete("/images/{id}", router.handler.DeleteImage)

		r.Get("/messages", router.handler.ListMessages)
		r.Patch("/messages/{id}/read", router.handler.MarkMessageRead)
		r.Delete("/messages/{id}", router.handler.DeleteMessage)

		r.Get("/analytics", router.handler.SiteStats)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
