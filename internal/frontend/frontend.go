// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package frontend reads command lines and turns them into motion inputs.
package frontend

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/metrics"
	"github.com/tomtom215/motionspace/internal/motion"
)

// DefaultAlpha is the interaction alpha used when a command omits it.
const DefaultAlpha = 0.5

const maxLineBytes = 1 << 20

// NewPostID returns a time-ordered post id.
func NewPostID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "post-" + uuid.NewString()
	}
	return "post-" + id.String()
}

// Frontend parses lines from a reader and sends the resulting inputs to the
// processor. It tracks the current user for bare post commands.
type Frontend struct {
	logger       zerolog.Logger
	newID        func() string
	prompt       bool
	defaultAlpha float64

	current string
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithIDFunc overrides post id generation.
func WithIDFunc(fn func() string) Option {
	return func(f *Frontend) {
		f.newID = fn
	}
}

// WithPrompt enables the interactive banner and "> " prompt.
func WithPrompt(enabled bool) Option {
	return func(f *Frontend) {
		f.prompt = enabled
	}
}

// WithDefaultAlpha sets the alpha used when interact omits it.
func WithDefaultAlpha(alpha float64) Option {
	return func(f *Frontend) {
		f.defaultAlpha = alpha
	}
}

// New creates a Frontend.
func New(logger zerolog.Logger, opts ...Option) *Frontend {
	f := &Frontend{
		logger:       logger,
		newID:        NewPostID,
		defaultAlpha: DefaultAlpha,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CurrentUser returns the user that bare post commands are attributed to.
func (f *Frontend) CurrentUser() string {
	return f.current
}

type lineResult struct {
	line string
	err  error
}

// Run reads r line by line until EOF, quit, or ctx cancellation. Replies and
// rejected lines are reported on w. out is closed on return, which is the
// processor's signal to finish.
//
// The reading goroutine cannot be interrupted while blocked in r.Read; on
// cancellation it exits at the next line or EOF.
func (f *Frontend) Run(ctx context.Context, r io.Reader, w io.Writer, out chan<- motion.Input) error {
	defer close(out)

	lines := make(chan lineResult)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- lineResult{line: scanner.Text()}:
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- lineResult{err: err}:
			case <-done:
			}
		}
	}()

	if f.prompt {
		fmt.Fprintln(w, "=== Motion Input ===")
		fmt.Fprintln(w, HelpText)
	}

	for {
		if f.prompt {
			fmt.Fprint(w, "> ")
		}

		var res lineResult
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok = <-lines:
		}
		if !ok {
			f.logger.Debug().Msg("input exhausted")
			return nil
		}
		if res.err != nil {
			return fmt.Errorf("read input: %w", res.err)
		}

		quit, err := f.handleLine(ctx, res.line, w, out)
		if err != nil {
			return err
		}
		if quit {
			f.logger.Debug().Msg("quit requested")
			return nil
		}
	}
}

// handleLine executes one line. It returns quit=true for the quit command
// and a non-nil error only when ctx ends while sending.
func (f *Frontend) handleLine(ctx context.Context, line string, w io.Writer, out chan<- motion.Input) (bool, error) {
	cmd, err := Parse(line, f.defaultAlpha)
	if cmd.Kind != CmdNone || err != nil {
		metrics.RecordFrontendCommand(string(cmd.Kind), err == nil)
	}
	if err != nil {
		f.logger.Debug().Err(err).Str("line", line).Msg("rejected input line")
		fmt.Fprintln(w, err.Error())
		return false, nil
	}

	switch cmd.Kind {
	case CmdNone:
		return false, nil
	case CmdHelp:
		fmt.Fprintln(w, HelpText)
		return false, nil
	case CmdQuit:
		return true, nil
	case CmdSwitch:
		f.current = cmd.UserID
		fmt.Fprintf(w, "Switched to user: %s\n", cmd.UserID)
		return false, nil
	case CmdUser:
		f.current = cmd.UserID
		if err := f.send(ctx, out, motion.UserInput{ID: cmd.UserID}); err != nil {
			return false, err
		}
		fmt.Fprintf(w, "Created and switched to user: %s\n", cmd.UserID)
		return false, nil
	case CmdPost:
		if f.current == "" {
			fmt.Fprintln(w, "No current user. Use: user <id>")
			return false, nil
		}
		return false, f.post(ctx, w, out, f.current, cmd.Text)
	case CmdPostAs:
		return false, f.post(ctx, w, out, cmd.UserID, cmd.Text)
	case CmdInteract:
		if err := f.send(ctx, out, cmd.Interaction); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, fmt.Errorf("unhandled command %q", cmd.Kind)
	}
}

func (f *Frontend) post(ctx context.Context, w io.Writer, out chan<- motion.Input, userID, text string) error {
	in := motion.PostInput{ID: f.newID(), UserID: userID, Text: text}
	if err := f.send(ctx, out, in); err != nil {
		return err
	}
	fmt.Fprintf(w, "Posted %s as user: %s\n", in.ID, userID)
	return nil
}

func (f *Frontend) send(ctx context.Context, out chan<- motion.Input, in motion.Input) error {
	select {
	case out <- in:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send %s input: %w: %w", in.Kind(), motion.ErrChannelClosed, ctx.Err())
	}
}
