// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package services

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/motionspace/internal/motion"
	"github.com/tomtom215/motionspace/internal/sink"
)

// FrontendRunner is satisfied by *frontend.Frontend.
type FrontendRunner interface {
	Run(ctx context.Context, r io.Reader, w io.Writer, out chan<- motion.Input) error
}

// ProcessorRunner is satisfied by *motion.Processor.
type ProcessorRunner interface {
	Run(ctx context.Context, in <-chan motion.Input, out chan<- motion.Output) error
}

// result holds the outcome of a run-once service.
type result struct {
	mu   sync.Mutex
	err  error
	done bool
}

func (r *result) set(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.done = true
}

// Err returns the error the wrapped component returned.
func (r *result) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done reports whether the wrapped component has returned.
func (r *result) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// FrontendService runs the command front-end once. The front-end closes
// the input channel when it returns, which ends the processor.
type FrontendService struct {
	result
	frontend FrontendRunner
	r        io.Reader
	w        io.Writer
	in       chan<- motion.Input
	logger   zerolog.Logger
}

// NewFrontendService wraps fe reading r, prompting on w, sending on in.
func NewFrontendService(fe FrontendRunner, r io.Reader, w io.Writer, in chan<- motion.Input, logger zerolog.Logger) *FrontendService {
	return &FrontendService{frontend: fe, r: r, w: w, in: in, logger: logger}
}

// Serve implements suture.Service.
func (s *FrontendService) Serve(ctx context.Context) error {
	err := s.frontend.Run(ctx, s.r, s.w, s.in)
	s.set(err)
	if err != nil {
		s.logger.Debug().Err(err).Msg("front-end stopped")
	} else {
		s.logger.Debug().Msg("front-end finished")
	}
	return suture.ErrDoNotRestart
}

func (s *FrontendService) String() string { return "frontend" }

// ProcessorService runs the motion processor once.
type ProcessorService struct {
	result
	processor ProcessorRunner
	in        <-chan motion.Input
	out       chan<- motion.Output
}

// NewProcessorService wraps p reading in and writing out.
func NewProcessorService(p ProcessorRunner, in <-chan motion.Input, out chan<- motion.Output) *ProcessorService {
	return &ProcessorService{processor: p, in: in, out: out}
}

// Serve implements suture.Service. A processor fault is terminal; it is
// kept on the service and the processor is never restarted.
func (s *ProcessorService) Serve(ctx context.Context) error {
	s.set(s.processor.Run(ctx, s.in, s.out))
	return suture.ErrDoNotRestart
}

func (s *ProcessorService) String() string { return "processor" }

// SinkService drains the output channel into a sink and then terminates
// the supervisor tree.
type SinkService struct {
	result
	sink    sink.Sink
	out     <-chan motion.Output
	logger  zerolog.Logger
	handled int
}

// NewSinkService wraps s reading out.
func NewSinkService(s sink.Sink, out <-chan motion.Output, logger zerolog.Logger) *SinkService {
	return &SinkService{sink: s, out: out, logger: logger}
}

// Serve implements suture.Service.
func (s *SinkService) Serve(ctx context.Context) error {
	n, err := sink.Drain(ctx, s.out, s.sink)

	s.mu.Lock()
	s.handled = n
	s.mu.Unlock()
	s.set(err)

	event := s.logger.Debug()
	if err != nil {
		event = s.logger.Warn().Err(err)
	}
	event.Int("outputs", n).Str("sink", s.sink.Name()).Msg("sink drained")
	return suture.ErrTerminateSupervisorTree
}

// Handled returns the number of outputs delivered.
func (s *SinkService) Handled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handled
}

func (s *SinkService) String() string { return "sink" }
