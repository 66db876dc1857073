// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/motion"
)

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	State     string `json:"state"`
	Fault     string `json:"fault,omitempty"`
	SinkFault string `json:"sink_fault,omitempty"`
}

// StatusResponse is the body of /status.
type StatusResponse struct {
	Version   string    `json:"version"`
	State     string    `json:"state"`
	Fault     string    `json:"fault,omitempty"`
	FaultKind string    `json:"fault_kind,omitempty"`
	SinkFault string    `json:"sink_fault,omitempty"`
	Uptime    float64   `json:"uptime_seconds"`
	Timestamp time.Time `json:"timestamp"`
}

// Health reports 200 while the processor is idle, running or finished
// cleanly and 503 once it has terminated with a fault or the sink has
// failed. State always describes the processor alone.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state := h.processor.State()
	resp := HealthResponse{Status: "ok", State: state.String()}
	code := http.StatusOK

	if state == motion.StateTerminatedErr {
		resp.Status = "faulted"
		if err := h.processor.Err(); err != nil {
			resp.Fault = err.Error()
		}
		code = http.StatusServiceUnavailable
	}
	if err := h.sinkErr(); err != nil {
		resp.Status = "faulted"
		resp.SinkFault = err.Error()
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, r, code, resp)
}

// Status reports processor state, the last processor and sink faults and
// uptime.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Version:   h.version,
		State:     h.processor.State().String(),
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	if err := h.processor.Err(); err != nil {
		resp.Fault = err.Error()
		resp.FaultKind = motion.FaultKind(err)
	}
	if err := h.sinkErr(); err != nil {
		resp.SinkFault = err.Error()
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("failed to write JSON response")
	}
}
