// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/embedding"
	"github.com/tomtom215/motionspace/internal/metrics"
)

// State is the lifecycle state of a Processor.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateTerminatedOK
	StateTerminatedErr
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminatedOK:
		return "terminated_ok"
	case StateTerminatedErr:
		return "terminated_err"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Processor is the single owner of a Space. It applies inputs in arrival
// order and emits outputs for each one.
type Processor struct {
	space    *Space
	embedder embedding.Embedder
	logger   zerolog.Logger

	state atomic.Int32

	mu  sync.Mutex
	err error
}

// NewProcessor creates a processor that owns space and embeds post text with
// embedder.
func NewProcessor(space *Space, embedder embedding.Embedder, logger zerolog.Logger) *Processor {
	return &Processor{
		space:    space,
		embedder: embedder,
		logger:   logger,
	}
}

// State returns the current lifecycle state. Safe for concurrent use.
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Err returns the fault that terminated the processor, if any.
func (p *Processor) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Processor) setState(s State) {
	p.state.Store(int32(s))
	metrics.SetProcessorState(int(s))
}

// Run consumes in until it is closed, applying each input to the space and
// emitting the resulting outputs on out. It returns nil when in closes and
// the fault otherwise; nothing applied before a fault is rolled back. out is
// closed on return. Cancelling ctx is treated as the consumer going away and
// yields ErrChannelClosed. A processor runs at most once; a second call
// returns ErrAlreadyRunning and leaves out untouched.
func (p *Processor) Run(ctx context.Context, in <-chan Input, out chan<- Output) (err error) {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyRunning
	}
	metrics.SetProcessorState(int(StateRunning))
	p.logger.Info().Int("dimension", p.space.Dim()).Str("kernel", p.space.Kernel().Name()).Msg("motion processor started")

	defer func() {
		close(out)
		if err != nil {
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			p.setState(StateTerminatedErr)
			metrics.RecordFault(FaultKind(err))
			p.logger.Error().Err(err).Str("fault", FaultKind(err)).Msg("motion processor terminated with fault")
			return
		}
		p.setState(StateTerminatedOK)
		p.logger.Info().Int("entries", p.space.Len()).Msg("motion processor finished")
	}()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrChannelClosed, ctx.Err())
		case input, ok := <-in:
			if !ok {
				return nil
			}
			if err := p.handle(ctx, input, out); err != nil {
				return fmt.Errorf("process %s input: %w", input.Kind(), err)
			}
			metrics.RecordInput(input.Kind())
			metrics.SetSpaceEntries(TagUser.String(), p.space.Count(TagUser))
			metrics.SetSpaceEntries(TagPost.String(), p.space.Count(TagPost))
		}
	}
}

func (p *Processor) handle(ctx context.Context, input Input, out chan<- Output) error {
	switch v := input.(type) {
	case UserInput:
		return p.handleUser(ctx, v, out)
	case PostInput:
		return p.handlePost(ctx, v, out)
	case Interaction:
		return p.handleInteraction(ctx, v, out)
	default:
		return fmt.Errorf("unsupported input type %T", input)
	}
}

func (p *Processor) handleUser(ctx context.Context, in UserInput, out chan<- Output) error {
	if existing, err := p.space.User(in.ID); err == nil {
		p.logger.Debug().Str("user_id", in.ID).Msg("user already present")
		return p.emit(ctx, out, Updated{Entry: existing.Clone()})
	}

	user := NewUser(in.ID)
	if err := p.space.Enter(user); err != nil {
		return err
	}
	return p.emit(ctx, out, Entered{Entry: user.Clone()})
}

func (p *Processor) handlePost(ctx context.Context, in PostInput, out chan<- Output) error {
	coord, err := p.embedder.Embed(ctx, in.Text)
	if err != nil {
		return &EmbedError{PostID: in.ID, Err: err}
	}

	post := NewPost(in.ID, coord)
	if err := p.space.Enter(post); err != nil {
		return err
	}
	if err := p.emit(ctx, out, Entered{Entry: post.Clone()}); err != nil {
		return err
	}

	if _, err := p.space.User(in.UserID); errors.Is(err, ErrNotFound) {
		user := NewUser(in.UserID)
		if err := p.space.Enter(user); err != nil {
			return err
		}
		if err := p.emit(ctx, out, Entered{Entry: user.Clone()}); err != nil {
			return err
		}
	}

	return p.handleInteraction(ctx, Interaction{
		Type:  PostToUser,
		SrcID: in.ID,
		DstID: in.UserID,
		Alpha: p.space.Params().PostAlpha,
	}, out)
}

func (p *Processor) handleInteraction(ctx context.Context, in Interaction, out chan<- Output) error {
	res, err := p.space.Apply(in)
	if err != nil {
		return err
	}
	metrics.RecordInteraction(res.Type.String(), res.Similarity, res.Weight, res.Degraded)
	return p.emit(ctx, out, InteractionApplied{Result: res})
}

func (p *Processor) emit(ctx context.Context, out chan<- Output, o Output) error {
	select {
	case out <- o:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrChannelClosed, ctx.Err())
	}
}
