// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package pipeline assembles a motionspace session from configuration:
// front-end, motion processor and sinks connected by channels and run
// under the supervisor tree, plus the optional ops server.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/motionspace/internal/api"
	"github.com/tomtom215/motionspace/internal/config"
	"github.com/tomtom215/motionspace/internal/embedding"
	"github.com/tomtom215/motionspace/internal/frontend"
	"github.com/tomtom215/motionspace/internal/journal"
	"github.com/tomtom215/motionspace/internal/kernel"
	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/motion"
	"github.com/tomtom215/motionspace/internal/sink"
	"github.com/tomtom215/motionspace/internal/supervisor"
	"github.com/tomtom215/motionspace/internal/supervisor/services"
)

// Options describe one session.
type Options struct {
	Config *config.Config

	// Input is read line by line by the front-end.
	Input io.Reader

	// Output receives prompts, front-end messages and console output.
	Output io.Writer

	// Prompt enables the banner and "> " prompts.
	Prompt bool

	// Version is reported by the ops /status endpoint.
	Version string

	Logger zerolog.Logger

	// Embedder overrides the hashing embedder and its cache.
	Embedder embedding.Embedder

	// PostIDs overrides post id generation.
	PostIDs func() string
}

// Result summarizes a finished session.
type Result struct {
	// State is the processor's final state. A sink failure leaves it at
	// StateTerminatedOK when the processor had already finished; Run's
	// error carries the sink fault.
	State motion.State

	// Entries is the number of entries in the space.
	Entries int

	// Outputs is the number of outputs the sink handled.
	Outputs int
}

// Run executes a session until the input is exhausted, the processor
// faults, a sink fails or ctx is cancelled. Cancellation is not an error.
// A processor fault or sink failure is returned along with the result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	runID := logging.NewRunID()
	ctx = logging.ContextWithRunID(logging.ContextWithCorrelationID(ctx, runID), runID)
	session := logging.ForSession(opts.Logger, runID)
	logger := logging.Component(session, logging.ComponentPipeline)
	out := &lockedWriter{w: opts.Output}
	if opts.Output == nil {
		out.w = io.Discard
	}
	input := opts.Input
	if input == nil {
		input = strings.NewReader("")
	}

	k, err := kernel.New(kernelConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}

	embedder := opts.Embedder
	if embedder == nil {
		embedder = embedding.NewHashingEmbedder(cfg.Space.Dimension)
		if cfg.Embedding.CacheSize > 0 {
			embedder = embedding.NewCachedEmbedder(embedder, cfg.Embedding.CacheSize)
		}
	}
	if embedder.Dimensions() != cfg.Space.Dimension {
		return nil, fmt.Errorf("embedder produces %d dimensions, space has %d", embedder.Dimensions(), cfg.Space.Dimension)
	}

	space := motion.NewSpace(cfg.Space.Dimension, k,
		motion.WithParams(params(cfg)),
		motion.WithLogger(logging.Component(session, logging.ComponentSpace)),
	)
	processor := motion.NewProcessor(space, embedder, logging.Component(session, logging.ComponentProcessor))

	feOpts := []frontend.Option{frontend.WithPrompt(opts.Prompt)}
	if opts.PostIDs != nil {
		feOpts = append(feOpts, frontend.WithIDFunc(opts.PostIDs))
	}
	fe := frontend.New(logging.Component(session, logging.ComponentFrontend), feOpts...)

	sinks, closeSinks, err := buildSinks(cfg, out, session)
	if err != nil {
		return nil, err
	}
	defer closeSinks()

	inputs := make(chan motion.Input, cfg.Pipeline.InputBuffer)
	outputs := make(chan motion.Output, cfg.Pipeline.OutputBuffer)

	tree := supervisor.NewTree(logging.NewSlogLogger(logging.Component(session, logging.ComponentSupervisor)), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})

	feSvc := services.NewFrontendService(fe, input, out, inputs, logger)
	procSvc := services.NewProcessorService(processor, inputs, outputs)
	sinkSvc := services.NewSinkService(sinks, outputs, logger)
	tree.AddPipelineService(sinkSvc)
	tree.AddPipelineService(procSvc)
	tree.AddPipelineService(feSvc)

	if cfg.Metrics.Enabled {
		handler := api.NewHandler(processor, opts.Version, logging.Component(session, logging.ComponentAPI))
		handler.SetSink(sinkSvc)
		router := api.NewRouter(handler, api.RouterConfig{
			RateLimitRequests: cfg.Metrics.RateLimitRequests,
			RateLimitWindow:   cfg.Metrics.RateLimitWindow,
		})
		server := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           router,
			ReadHeaderTimeout: cfg.Metrics.ReadTimeout,
			ReadTimeout:       cfg.Metrics.ReadTimeout,
			WriteTimeout:      cfg.Metrics.WriteTimeout,
		}
		tree.AddOpsService(services.NewHTTPService(server, cfg.Supervisor.ShutdownTimeout, logger))
	}

	logger.Info().
		Int("dimension", cfg.Space.Dimension).
		Str("kernel", k.Name()).
		Str("sink", sinks.Name()).
		Bool("journal", cfg.Journal.Enabled).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("session starting")

	treeErr := tree.Serve(ctx)

	result := &Result{
		State:   processor.State(),
		Entries: space.Len(),
		Outputs: sinkSvc.Handled(),
	}

	if treeErr != nil &&
		!errors.Is(treeErr, suture.ErrTerminateSupervisorTree) &&
		!errors.Is(treeErr, context.Canceled) &&
		!errors.Is(treeErr, context.DeadlineExceeded) {
		return result, fmt.Errorf("supervisor: %w", treeErr)
	}

	// A failed sink is the root cause of whatever the processor saw after it.
	if err := sinkSvc.Err(); err != nil && ctx.Err() == nil {
		return result, fmt.Errorf("sink: %w", err)
	}

	if err := processor.Err(); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			logger.Info().Msg("session interrupted")
			return result, nil
		}
		return result, fmt.Errorf("processor fault (%s): %w", motion.FaultKind(err), err)
	}

	if err := feSvc.Err(); err != nil && ctx.Err() == nil {
		return result, fmt.Errorf("front-end: %w", err)
	}

	logger.Info().Int("entries", result.Entries).Int("outputs", result.Outputs).Msg("session finished")
	return result, nil
}

func buildSinks(cfg *config.Config, out io.Writer, logger zerolog.Logger) (sink.Multi, func(), error) {
	var sinks sink.Multi
	closeFn := func() {}

	if cfg.Sink.Console {
		sinks = append(sinks, sink.NewConsole(out, cfg.Sink.Format))
	}
	if cfg.Sink.Log {
		sinks = append(sinks, sink.NewLog(logging.Component(logger, logging.ComponentSink), logging.ParseLevel(cfg.Sink.LogLevel)))
	}
	if cfg.Journal.Enabled {
		j, err := OpenJournal(cfg, logger)
		if err != nil {
			return nil, closeFn, err
		}
		sinks = append(sinks, sink.NewJournal(j))
		closeFn = func() {
			if err := j.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close journal")
			}
		}
	}
	return sinks, closeFn, nil
}

// OpenJournal opens the journal described by cfg.
func OpenJournal(cfg *config.Config, logger zerolog.Logger) (*journal.Journal, error) {
	j, err := journal.Open(journal.Config{
		Path:         cfg.Journal.Path,
		InMemory:     cfg.Journal.InMemory,
		SyncWrites:   cfg.Journal.SyncWrites,
		CloseTimeout: cfg.Journal.CloseTimeout,
	}, logging.Component(logger, logging.ComponentJournal))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

func kernelConfig(cfg *config.Config) kernel.Config {
	return kernel.Config{
		Type:   cfg.Kernel.Type,
		Gamma:  cfg.Kernel.Gamma,
		Coef0:  cfg.Kernel.Coef0,
		Degree: cfg.Kernel.Degree,
	}
}

func params(cfg *config.Config) motion.Params {
	return motion.Params{
		Decay:      cfg.Interaction.Decay,
		PostGain:   cfg.Interaction.PostGain,
		TargetGain: cfg.Interaction.TargetGain,
		ActorGain:  cfg.Interaction.ActorGain,
		MutualStep: cfg.Interaction.MutualStep,
		PostAlpha:  cfg.Interaction.PostAlpha,
	}
}

// lockedWriter serializes front-end messages and console output, which
// are written from different goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
