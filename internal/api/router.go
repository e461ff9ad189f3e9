// Zoommaps - Interactive Map Server with Linked Hotspots
// Copyright 2026 Zoommaps Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zoommaps/zoommaps

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zoommaps/zoommaps/internal/auth"
	"github.com/zoommaps/zoommaps/internal/config"
	"github.com/zoommaps/zoommaps/internal/logging"
	"github.com/zoommaps/zoommaps/internal/middleware"
)

// Router assembles the HTTP routes and middleware stack.
type Router struct {
	handler *Handler
	authMW  *auth.Middleware
	cfg     *config.Config
}

// NewRouter creates the router.
func NewRouter(handler *Handler, authMW *auth.Middleware, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		authMW:  authMW,
		cfg:     cfg,
	}
}

// Setup configures all routes using the chi router.
//
// Read routes are public; every write route sits behind the auth gate and
// the admin role gate. Exact paths and verbs are part of the API contract.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", auth.TokenHeader},
		ExposedHeaders: []string{auth.TokenHeader, "X-Request-ID"},
	}))
	r.Use(middleware.PrometheusMetrics)

	admin := func(r chi.Router) chi.Router {
		return r.With(router.authMW.Authenticate, router.authMW.RequireAdmin)
	}

	r.Route("/api/maps", func(r chi.Router) {
		r.Get("/", router.handler.ListMaps)
		r.Get("/{id}", router.handler.GetMap)
		r.Get("/name/{name}", router.handler.GetMapByName)
		admin(r).Post("/", router.handler.SubmitMap)
		admin(r).Put("/", router.handler.UpdateMap)
		admin(r).Delete("/{id}", router.handler.DeleteMap)

		// chi requires one param name per path level, so hotspot routes
		// reuse {id} for the owning map.
		r.Route("/{id}/hotspots", func(r chi.Router) {
			r.Get("/{hotSpotId}", router.handler.GetHotSpot)
			admin(r).Post("/", router.handler.SubmitHotSpot)
			admin(r).Delete("/{hotSpotId}", router.handler.DeleteHotSpot)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.With(router.authMW.Authenticate).Get("/me", router.handler.Me)
		r.Get("/", router.handler.ListUsers)
		r.Get("/{id}", router.handler.GetUser)
		r.Get("/email/{email}", router.handler.GetUserByEmail)
		admin(r).Post("/", router.handler.CreateUser)
		admin(r).Delete("/{id}", router.handler.DeleteUser)
	})

	// Login gets strict per-IP rate limiting as a brute-force guard.
	r.With(httprate.LimitByIP(
		router.cfg.Security.LoginRateLimit,
		router.cfg.Security.LoginRateWindow,
	)).Post("/api/auth", router.handler.Login)

	r.Get("/healthz", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// recoverer converts handler panics into the generic 500 response, logging
// the panic value server-side and never exposing internals to the client.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Handler panicked")
				respondText(w, http.StatusInternalServerError, "Something failed!")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
