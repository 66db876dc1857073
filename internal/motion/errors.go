// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is matched by UserNotFoundError and PostNotFoundError.
var ErrNotFound = errors.New("entry not found")

// ErrChannelClosed is returned when an output cannot be delivered because the
// consumer is gone.
var ErrChannelClosed = errors.New("channel closed while sending motion output")

// ErrUnknownInteraction is returned for an interaction type outside the
// defined set.
var ErrUnknownInteraction = errors.New("unknown interaction type")

// ErrAlreadyRunning is returned when Run is called on a processor that has
// already been started.
var ErrAlreadyRunning = errors.New("processor already started")

// UserNotFoundError reports a missing user.
type UserNotFoundError struct {
	ID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found for id: %s", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PostNotFoundError reports a missing post.
type PostNotFoundError struct {
	ID string
}

func (e *PostNotFoundError) Error() string {
	return fmt.Sprintf("post not found for id: %s", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *PostNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CoordNotLoadedError reports a user that has no coordinate yet.
type CoordNotLoadedError struct {
	ID string
}

func (e *CoordNotLoadedError) Error() string {
	return fmt.Sprintf("no coord loaded for user id: %s", e.ID)
}

// DuplicateEntryError reports an insertion whose (tag, id) is already taken.
type DuplicateEntryError struct {
	Key Key
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry: %s", e.Key)
}

// MathError wraps a vector or kernel fault raised while operating on the space.
type MathError struct {
	Op  string
	Err error
}

func (e *MathError) Error() string {
	return fmt.Sprintf("math error during %s: %v", e.Op, e.Err)
}

func (e *MathError) Unwrap() error {
	return e.Err
}

// EmbedError reports a failure to embed post text.
type EmbedError struct {
	PostID string
	Err    error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embed post %s: %v", e.PostID, e.Err)
}

func (e *EmbedError) Unwrap() error {
	return e.Err
}

// FaultKind classifies err into a short label for logs and metrics.
func FaultKind(err error) string {
	var (
		coordErr *CoordNotLoadedError
		dupErr   *DuplicateEntryError
		mathErr  *MathError
		embedErr *EmbedError
	)
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrChannelClosed):
		return "channel_closed"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &coordErr):
		return "coord_not_loaded"
	case errors.As(err, &dupErr):
		return "duplicate_entry"
	case errors.As(err, &mathErr):
		return "math"
	case errors.As(err, &embedErr):
		return "embed"
	case errors.Is(err, ErrUnknownInteraction):
		return "unknown_interaction"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unknown"
	}
}
