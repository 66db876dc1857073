// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HTTPService runs an *http.Server as a supervised service. It listens
// itself so that the bound address is known even for ":0".
type HTTPService struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          zerolog.Logger

	mu    sync.Mutex
	addr  string
	ready chan struct{}
}

// NewHTTPService wraps server. shutdownTimeout bounds graceful shutdown;
// zero or less means 10s.
func NewHTTPService(server *http.Server, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ready:           make(chan struct{}),
	}
}

// Serve implements suture.Service. A listen or serve failure is returned
// so suture restarts the service; cancellation shuts the server down
// gracefully.
func (h *HTTPService) Serve(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("http listen %s: %w", h.server.Addr, err)
	}
	h.setAddr(ln.Addr().String())
	h.logger.Info().Str("addr", ln.Addr().String()).Msg("ops server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already cancelled; shutdown gets its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		h.logger.Info().Msg("ops server stopped")
		return ctx.Err()
	}
}

func (h *HTTPService) setAddr(addr string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addr = addr
	select {
	case <-h.ready:
	default:
		close(h.ready)
	}
}

// Addr returns the bound address, or "" before the first listen.
func (h *HTTPService) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}

// Ready is closed once the server is listening.
func (h *HTTPService) Ready() <-chan struct{} {
	return h.ready
}

// String implements fmt.Stringer; suture uses it in log messages.
func (h *HTTPService) String() string {
	return "ops-http"
}
