// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/metrics"
	"github.com/tomtom215/motionspace/internal/motion"
)

type stubProcessor struct {
	state motion.State
	err   error
}

func (s stubProcessor) State() motion.State { return s.state }
func (s stubProcessor) Err() error          { return s.err }

func serve(t *testing.T, p ProcessorStatus, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewHandler(p, "test", zerolog.Nop()), DefaultRouterConfig())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	fault := fmt.Errorf("process post input: %w", &motion.CoordNotLoadedError{ID: "u1"})
	tests := []struct {
		name       string
		proc       stubProcessor
		wantCode   int
		wantStatus string
		wantState  string
	}{
		{name: "idle", proc: stubProcessor{state: motion.StateIdle}, wantCode: http.StatusOK, wantStatus: "ok", wantState: "idle"},
		{name: "running", proc: stubProcessor{state: motion.StateRunning}, wantCode: http.StatusOK, wantStatus: "ok", wantState: "running"},
		{name: "finished", proc: stubProcessor{state: motion.StateTerminatedOK}, wantCode: http.StatusOK, wantStatus: "ok", wantState: "terminated_ok"},
		{name: "faulted", proc: stubProcessor{state: motion.StateTerminatedErr, err: fault}, wantCode: http.StatusServiceUnavailable, wantStatus: "faulted", wantState: "terminated_err"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.proc, "/healthz")
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.wantStatus || body.State != tt.wantState {
				t.Errorf("body = %+v", body)
			}
			if tt.proc.err != nil && body.Fault == "" {
				t.Error("fault should be reported")
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header missing")
			}
		})
	}
}

func TestStatus(t *testing.T) {
	fault := fmt.Errorf("wrap: %w", &motion.UserNotFoundError{ID: "ghost"})
	rec := serve(t, stubProcessor{state: motion.StateTerminatedErr, err: fault}, "/status")

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Version != "test" || body.State != "terminated_err" {
		t.Errorf("body = %+v", body)
	}
	if body.FaultKind != "not_found" {
		t.Errorf("FaultKind = %q, want not_found", body.FaultKind)
	}
}

type stubSink struct{ err error }

func (s stubSink) Err() error { return s.err }

func TestSinkFault(t *testing.T) {
	sinkErr := errors.New("console sink: write output: broken pipe")
	h := NewHandler(stubProcessor{state: motion.StateTerminatedOK}, "test", zerolog.Nop())
	h.SetSink(stubSink{err: sinkErr})
	router := NewRouter(h, DefaultRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/healthz code = %d, want 503", rec.Code)
	}
	var health HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "faulted" || health.State != "terminated_ok" || health.SinkFault != sinkErr.Error() {
		t.Errorf("health = %+v", health)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	var status StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.SinkFault != sinkErr.Error() || status.Fault != "" {
		t.Errorf("status = %+v", status)
	}
}

func TestSinkHealthy(t *testing.T) {
	h := NewHandler(stubProcessor{state: motion.StateRunning}, "test", zerolog.Nop())
	h.SetSink(stubSink{})
	rec := httptest.NewRecorder()
	NewRouter(h, DefaultRouterConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz code = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RecordInput("user")

	rec := serve(t, stubProcessor{}, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "motion_inputs_processed_total") {
		t.Error("/metrics should expose motionspace collectors")
	}
}

func TestPrometheusMetrics_RoutePattern(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/healthz", "200"))
	beforeMissing := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	serve(t, stubProcessor{}, "/healthz")
	if rec := serve(t, stubProcessor{}, "/nope/123"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path code = %d, want 404", rec.Code)
	}

	if got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/healthz", "200")) - before; got != 1 {
		t.Errorf("/healthz requests delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "unmatched", "404")) - beforeMissing; got != 1 {
		t.Errorf("unmatched requests delta = %v, want 1", got)
	}
}

func TestRequestIDWithLogging_PropagatesIncomingID(t *testing.T) {
	router := NewRouter(NewHandler(stubProcessor{}, "test", zerolog.Nop()), DefaultRouterConfig())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestRateLimitByIP(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RouterConfig
		requests int
		wantLast int
	}{
		{name: "limited", cfg: RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute}, requests: 3, wantLast: http.StatusTooManyRequests},
		{name: "disabled", cfg: RouterConfig{}, requests: 3, wantLast: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(NewHandler(stubProcessor{}, "test", zerolog.Nop()), tt.cfg)
			var last int
			for i := 0; i < tt.requests; i++ {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
				req.RemoteAddr = "10.0.0.1:1234"
				router.ServeHTTP(rec, req)
				last = rec.Code
			}
			if last != tt.wantLast {
				t.Errorf("last status = %d, want %d", last, tt.wantLast)
			}
		})
	}
}
