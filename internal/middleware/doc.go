// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging context
  - AccessLog: one zerolog line per request with route, status and duration
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by chi route pattern

CORS, rate limiting, compression, real IP and panic recovery come from
go-chi/cors, go-chi/httprate and chi's own middleware package and are wired
in the api package.

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Group(func(r chi.Router) {
	    r.Use(httprate.LimitByIP(120, time.Minute))
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/api/v1/feed", h.Feed)
	})
*/
package middleware
