// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Processor state gauge values.
const (
	StateIdle          = 0
	StateRunning       = 1
	StateTerminatedOK  = 2
	StateTerminatedErr = 3
)

var (
	// Processor Metrics
	InputsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_inputs_processed_total",
			Help: "Total number of inputs consumed by the motion processor",
		},
		[]string{"kind"}, // "user", "post", "interaction"
	)

	InteractionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_interactions_applied_total",
			Help: "Total number of interactions applied to the space",
		},
		[]string{"type"},
	)

	ProcessorFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_faults_total",
			Help: "Total number of faults that terminated the motion processor",
		},
		[]string{"kind"},
	)

	DegradedNormalizations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motion_degraded_normalizations_total",
			Help: "Total number of blended coordinates that could not be unit-normalized",
		},
	)

	InteractionWeight = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "motion_interaction_weight",
			Help:    "Distribution of interaction weights",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	InteractionSimilarity = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "motion_interaction_similarity",
			Help:    "Distribution of kernel similarities",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	SpaceEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "motion_space_entries",
			Help: "Current number of entries in the motion space",
		},
		[]string{"tag"},
	)

	ProcessorState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "motion_processor_state",
			Help: "Processor state (0=idle, 1=running, 2=terminated ok, 3=terminated with error)",
		},
	)

	// Front-end Metrics
	FrontendCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_frontend_commands_total",
			Help: "Total number of command lines parsed by the front-end",
		},
		[]string{"command", "result"}, // result: "ok", "invalid"
	)

	// Sink Metrics
	SinkOutputs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_sink_outputs_total",
			Help: "Total number of outputs handled by a sink",
		},
		[]string{"sink", "kind"},
	)

	SinkErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_sink_errors_total",
			Help: "Total number of sink failures",
		},
		[]string{"sink"},
	)

	// Journal Metrics
	JournalAppends = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motion_journal_appends_total",
			Help: "Total number of records written to the output journal",
		},
	)

	JournalAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "motion_journal_append_duration_seconds",
			Help:    "Duration of journal writes in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Embedding Metrics
	EmbeddingCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motion_embedding_cache_requests_total",
			Help: "Embedding cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// HTTP Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served by the ops server",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of ops HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordInput records one consumed input
func RecordInput(kind string) {
	InputsProcessed.WithLabelValues(kind).Inc()
}

// RecordInteraction records an applied interaction and its scores
func RecordInteraction(interactionType string, similarity, weight float64, degraded bool) {
	InteractionsApplied.WithLabelValues(interactionType).Inc()
	InteractionSimilarity.Observe(similarity)
	InteractionWeight.Observe(weight)
	if degraded {
		DegradedNormalizations.Inc()
	}
}

// RecordFault records a fatal processor fault
func RecordFault(kind string) {
	ProcessorFaults.WithLabelValues(kind).Inc()
}

// SetSpaceEntries sets the entry gauge for a tag
func SetSpaceEntries(tag string, count int) {
	SpaceEntries.WithLabelValues(tag).Set(float64(count))
}

// SetProcessorState sets the processor state gauge
func SetProcessorState(state int) {
	ProcessorState.Set(float64(state))
}

// RecordFrontendCommand records a parsed command line
func RecordFrontendCommand(command string, ok bool) {
	result := "ok"
	if !ok {
		result = "invalid"
	}
	FrontendCommands.WithLabelValues(command, result).Inc()
}

// RecordSinkOutput records an output handled by a sink
func RecordSinkOutput(sink, kind string, err error) {
	if err != nil {
		SinkErrors.WithLabelValues(sink).Inc()
		return
	}
	SinkOutputs.WithLabelValues(sink, kind).Inc()
}

// RecordJournalAppend records a journal write
func RecordJournalAppend(duration time.Duration) {
	JournalAppends.Inc()
	JournalAppendDuration.Observe(duration.Seconds())
}

// RecordEmbeddingCache records an embedding cache lookup
func RecordEmbeddingCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	EmbeddingCacheRequests.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an ops HTTP request
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
