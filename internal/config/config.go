// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package config

import "time"

// Config holds all runtime configuration.
type Config struct {
	Space       SpaceConfig       `koanf:"space"`
	Embedding   EmbeddingConfig   `koanf:"embedding"`
	Kernel      KernelConfig      `koanf:"kernel"`
	Interaction InteractionConfig `koanf:"interaction"`
	Pipeline    PipelineConfig    `koanf:"pipeline"`
	Sink        SinkConfig        `koanf:"sink"`
	Journal     JournalConfig     `koanf:"journal"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Logging     LoggingConfig     `koanf:"logging"`
	Supervisor  SupervisorConfig  `koanf:"supervisor"`
}

// SpaceConfig configures the embedding space.
type SpaceConfig struct {
	// Dimension of every coordinate and of the embedder output.
	// Default: 128
	Dimension int `koanf:"dimension" validate:"min=1,max=65536"`
}

// EmbeddingConfig configures post text embedding.
type EmbeddingConfig struct {
	// CacheSize is the number of texts whose vectors are kept. 0 disables
	// the cache.
	// Default: 1024
	CacheSize int `koanf:"cache_size" validate:"min=0,max=1048576"`
}

// KernelConfig selects the similarity kernel.
type KernelConfig struct {
	// Type is rbf, linear or polynomial.
	// Default: rbf
	Type string `koanf:"type" validate:"oneof=rbf linear polynomial"`

	// Gamma is the RBF width and the polynomial scale.
	// Default: 2.0
	Gamma float64 `koanf:"gamma" validate:"finite,gt=0"`

	// Coef0 is the polynomial offset.
	Coef0 float64 `koanf:"coef0" validate:"finite"`

	// Degree is the polynomial degree.
	Degree int `koanf:"degree" validate:"min=1,max=16"`
}

// InteractionConfig holds the constants of the two update rules.
type InteractionConfig struct {
	// Decay is the fraction of motion lost per interaction.
	// Default: 0.02
	Decay float64 `koanf:"decay" validate:"finite,gte=0,lte=1"`

	// PostGain scales the motion a post adds to a user.
	// Default: 1.0
	PostGain float64 `koanf:"post_gain" validate:"finite,gte=0"`

	// TargetGain and ActorGain scale the motion added on each side of a
	// user to user interaction.
	// Default: 1.0 and 0.5
	TargetGain float64 `koanf:"target_gain" validate:"finite,gte=0"`
	ActorGain  float64 `koanf:"actor_gain" validate:"finite,gte=0"`

	// MutualStep is the fraction of the weight each user moves toward the other.
	// Default: 0.5
	MutualStep float64 `koanf:"mutual_step" validate:"finite,gte=0,lte=1"`

	// PostAlpha is the alpha of the interaction synthesized for a new post.
	// Default: 0.5
	PostAlpha float64 `koanf:"post_alpha" validate:"finite,gte=0"`
}

// PipelineConfig sizes the channels between front-end, processor and sink.
// Zero means unbuffered.
type PipelineConfig struct {
	InputBuffer  int `koanf:"input_buffer" validate:"min=0,max=1048576"`
	OutputBuffer int `koanf:"output_buffer" validate:"min=0,max=1048576"`
}

// SinkConfig configures output delivery.
type SinkConfig struct {
	// Format of the console sink: text or json.
	// Default: text
	Format string `koanf:"format" validate:"oneof=text json"`

	// Console enables printing outputs to stdout.
	// Default: true
	Console bool `koanf:"console"`

	// Log enables writing each output as a structured log event.
	// Default: false
	Log bool `koanf:"log"`

	// LogLevel is the level of the log sink events.
	// Default: debug
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
}

// JournalConfig configures the badger-backed output journal.
type JournalConfig struct {
	// Enabled turns on journaling of every output.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Path is the badger directory. Required unless InMemory is set.
	// Default: ./data/journal
	Path string `koanf:"path"`

	// InMemory keeps the journal in memory only.
	InMemory bool `koanf:"in_memory"`

	// SyncWrites fsyncs every append.
	// Default: false
	SyncWrites bool `koanf:"sync_writes"`

	// CloseTimeout bounds how long Close waits for badger.
	// Default: 10s
	CloseTimeout time.Duration `koanf:"close_timeout" validate:"min=0"`
}

// MetricsConfig configures the ops HTTP server.
type MetricsConfig struct {
	// Enabled starts the /metrics and /healthz server.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// Addr is the listen address.
	// Default: 127.0.0.1:9464
	Addr string `koanf:"addr"`

	// ReadTimeout and WriteTimeout bound a single request.
	// Default: 5s and 10s
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=0"`

	// RateLimitRequests per RateLimitWindow per client IP; 0 disables.
	// Default: 1000 per 1m
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`

	// Format is json or console.
	// Default: console
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SupervisorConfig holds suture tree parameters.
type SupervisorConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64 `koanf:"failure_threshold" validate:"finite,gt=0"`

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64 `koanf:"failure_decay" validate:"finite,gt=0"`

	// FailureBackoff is the duration to wait when the threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration `koanf:"failure_backoff" validate:"min=0"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}
