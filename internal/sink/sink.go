// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package sink consumes processor outputs: console rendering, structured
// logging and the journal.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/motionspace/internal/metrics"
	"github.com/tomtom215/motionspace/internal/motion"
)

// Sink handles one output at a time. Implementations are called from a
// single goroutine.
type Sink interface {
	Handle(ctx context.Context, o motion.Output) error
	Name() string
}

// Multi fans each output out to every sink in order. All sinks see every
// output; their errors are joined.
type Multi []Sink

func (m Multi) Handle(ctx context.Context, o motion.Output) error {
	var errs []error
	for _, s := range m {
		err := s.Handle(ctx, o)
		metrics.RecordSinkOutput(s.Name(), o.Kind(), err)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s sink: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Name() string { return "multi" }

// Drain hands every output from in to s until in is closed. It stops at the
// first sink error. On ctx cancellation it returns ctx.Err() without
// draining the rest.
func Drain(ctx context.Context, in <-chan motion.Output, s Sink) (int, error) {
	handled := 0
	for {
		select {
		case <-ctx.Done():
			return handled, ctx.Err()
		case o, ok := <-in:
			if !ok {
				return handled, nil
			}
			if err := s.Handle(ctx, o); err != nil {
				return handled, fmt.Errorf("handle %s output: %w", o.Kind(), err)
			}
			handled++
		}
	}
}
