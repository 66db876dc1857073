// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/motion"
)

// ProcessorStatus is satisfied by *motion.Processor.
type ProcessorStatus interface {
	State() motion.State
	Err() error
}

// SinkStatus is satisfied by the sink service; Err is non-nil once
// delivering outputs has failed.
type SinkStatus interface {
	Err() error
}

// Handler holds the dependencies of the ops endpoints.
type Handler struct {
	processor ProcessorStatus
	sink      SinkStatus
	logger    zerolog.Logger
	startTime time.Time
	version   string
}

// NewHandler creates the ops handler for p.
func NewHandler(p ProcessorStatus, version string, logger zerolog.Logger) *Handler {
	return &Handler{
		processor: p,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
	}
}

// SetSink adds the sink's fault to /healthz and /status.
func (h *Handler) SetSink(s SinkStatus) {
	h.sink = s
}

func (h *Handler) sinkErr() error {
	if h.sink == nil {
		return nil
	}
	return h.sink.Err()
}

// RouterConfig holds router-wide middleware settings.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow per client IP. Zero or less
	// disables rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// DefaultRouterConfig allows 1000 requests per minute, enough for any
// scrape or health check interval.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{RateLimitRequests: 1000, RateLimitWindow: time.Minute}
}

// NewRouter builds the chi router for h.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(PrometheusMetrics)
	r.Use(RateLimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))

	r.Get("/healthz", h.Health)
	r.Get("/status", h.Status)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
