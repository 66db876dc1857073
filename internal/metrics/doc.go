// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

/*
Package metrics provides Prometheus instrumentation for the motion pipeline.

All collectors are registered on the default registry via promauto and are
exposed at /metrics by the ops HTTP server (see internal/api).

# Available Metrics

Processor Metrics:
  - motion_inputs_processed_total: Inputs consumed by the processor (counter)
    Labels: kind (user, post, interaction)
  - motion_interactions_applied_total: Interactions applied (counter)
    Labels: type (post_to_user, user_to_user)
  - motion_faults_total: Faults that terminated the processor (counter)
    Labels: kind
  - motion_degraded_normalizations_total: Blends that could not be normalized (counter)
  - motion_interaction_weight: Interaction weight distribution (histogram)
  - motion_interaction_similarity: Kernel similarity distribution (histogram)
  - motion_space_entries: Entries held by the space (gauge)
    Labels: tag (user, post)
  - motion_processor_state: 0=idle, 1=running, 2=terminated ok, 3=terminated with error (gauge)

Front-end, Sink and Journal Metrics:
  - motion_frontend_commands_total: Parsed command lines (counter)
    Labels: command, result
  - motion_sink_outputs_total: Outputs handled by a sink (counter)
    Labels: sink, kind
  - motion_sink_errors_total: Sink failures (counter)
    Labels: sink
  - motion_journal_appends_total: Journal records written (counter)
  - motion_journal_append_duration_seconds: Journal write latency (histogram)
  - motion_embedding_cache_requests_total: Embedding cache lookups by result (counter)

HTTP Metrics:
  - http_requests_total / http_request_duration_seconds for the ops server.

# Thread Safety

All Record* helpers are safe for concurrent use.
*/
package metrics
