// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched, in order, when no config
// file is named explicitly. The first file found is used.
var DefaultConfigPaths = []string{
	"motionspace.yaml",
	"motionspace.yml",
	"/etc/motionspace/config.yaml",
}

// ConfigPathEnvVar names the config file when --config is not given.
const ConfigPathEnvVar = "MOTIONSPACE_CONFIG"

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MOTIONSPACE_"

// defaultConfig returns a Config with every default applied.
// Defaults load first, then the config file, then the environment.
func defaultConfig() *Config {
	return &Config{
		Space: SpaceConfig{
			Dimension: 128,
		},
		Embedding: EmbeddingConfig{
			CacheSize: 1024,
		},
		Kernel: KernelConfig{
			Type:   "rbf",
			Gamma:  2.0,
			Coef0:  1.0,
			Degree: 2,
		},
		Interaction: InteractionConfig{
			Decay:      0.02,
			PostGain:   1.0,
			TargetGain: 1.0,
			ActorGain:  0.5,
			MutualStep: 0.5,
			PostAlpha:  0.5,
		},
		Pipeline: PipelineConfig{
			InputBuffer:  64,
			OutputBuffer: 64,
		},
		Sink: SinkConfig{
			Format:   "text",
			Console:  true,
			Log:      false,
			LogLevel: "debug",
		},
		Journal: JournalConfig{
			Enabled:      false,
			Path:         "./data/journal",
			SyncWrites:   false,
			CloseTimeout: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:           false,
			Addr:              "127.0.0.1:9464",
			ReadTimeout:       5 * time.Second,
			WriteTimeout:      10 * time.Second,
			RateLimitRequests: 1000,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Default returns the built-in defaults without reading any source.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration from three layers:
//
//  1. struct defaults
//  2. a YAML file: path if non-empty, else $MOTIONSPACE_CONFIG, else the
//     first of DefaultConfigPaths that exists
//  3. MOTIONSPACE_* environment variables
//
// An explicitly named file that does not exist is an error. The result is
// validated before it is returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// MOTIONSPACE_KERNEL_GAMMA -> kernel.gamma
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("config file %s (from %s): %w", envPath, ConfigPathEnvVar, err)
		}
		return envPath, nil
	}

	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// envMappings maps lower-cased variable names, prefix stripped, to koanf
// paths. Section names contain no underscore but many keys do, so the
// split cannot be derived from the name alone.
var envMappings = map[string]string{
	"space_dimension": "space.dimension",

	"embedding_cache_size": "embedding.cache_size",

	"kernel_type":   "kernel.type",
	"kernel_gamma":  "kernel.gamma",
	"kernel_coef0":  "kernel.coef0",
	"kernel_degree": "kernel.degree",

	"interaction_decay":       "interaction.decay",
	"interaction_post_gain":   "interaction.post_gain",
	"interaction_target_gain": "interaction.target_gain",
	"interaction_actor_gain":  "interaction.actor_gain",
	"interaction_mutual_step": "interaction.mutual_step",
	"interaction_post_alpha":  "interaction.post_alpha",

	"pipeline_input_buffer":  "pipeline.input_buffer",
	"pipeline_output_buffer": "pipeline.output_buffer",

	"sink_format":    "sink.format",
	"sink_console":   "sink.console",
	"sink_log":       "sink.log",
	"sink_log_level": "sink.log_level",

	"journal_enabled":       "journal.enabled",
	"journal_path":          "journal.path",
	"journal_in_memory":     "journal.in_memory",
	"journal_sync_writes":   "journal.sync_writes",
	"journal_close_timeout": "journal.close_timeout",

	"metrics_enabled":       "metrics.enabled",
	"metrics_addr":          "metrics.addr",
	"metrics_read_timeout":  "metrics.read_timeout",
	"metrics_write_timeout": "metrics.write_timeout",
	"metrics_rate_limit":    "metrics.rate_limit_requests",
	"metrics_rate_window":   "metrics.rate_limit_window",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc maps MOTIONSPACE_* names to koanf paths. Unmapped
// names (MOTIONSPACE_CONFIG included) return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}
