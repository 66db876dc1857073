// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package api serves the ops endpoints on a chi router:
//
//	GET /metrics   Prometheus exposition
//	GET /healthz   liveness; 503 once the processor or the sink has faulted
//	GET /status    processor state, faults and uptime as JSON
//
// Every request gets an X-Request-ID, a debug log line and the
// http_requests_total / http_request_duration_seconds
// metrics, labelled by route pattern.
package api
