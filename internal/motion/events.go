// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"fmt"
	"strings"
)

// InteractionType selects the update rule.
type InteractionType int

const (
	PostToUser InteractionType = iota + 1
	UserToUser
)

func (t InteractionType) String() string {
	switch t {
	case PostToUser:
		return "post_to_user"
	case UserToUser:
		return "user_to_user"
	default:
		return fmt.Sprintf("interaction(%d)", int(t))
	}
}

// ParseInteractionType accepts "post", "post_to_user", "user" and "user_to_user".
func ParseInteractionType(s string) (InteractionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "post", "post_to_user":
		return PostToUser, nil
	case "user", "user_to_user":
		return UserToUser, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInteraction, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t InteractionType) MarshalText() ([]byte, error) {
	if t != PostToUser && t != UserToUser {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInteraction, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *InteractionType) UnmarshalText(b []byte) error {
	parsed, err := ParseInteractionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Input is a command consumed by the processor: UserInput, PostInput or
// Interaction.
type Input interface {
	Kind() string
	isInput()
}

// UserInput registers a user.
type UserInput struct {
	ID string
}

// PostInput creates a post authored by UserID.
type PostInput struct {
	ID     string
	UserID string
	Text   string
}

// Interaction applies one update rule. For PostToUser, SrcID is the post and
// DstID the user; for UserToUser, SrcID is the actor and DstID the target.
type Interaction struct {
	Type  InteractionType
	SrcID string
	DstID string
	Alpha float64
}

func (UserInput) Kind() string   { return "user" }
func (PostInput) Kind() string   { return "post" }
func (Interaction) Kind() string { return "interaction" }

func (UserInput) isInput()   {}
func (PostInput) isInput()   {}
func (Interaction) isInput() {}

// InteractionResult describes one applied interaction.
type InteractionResult struct {
	Type       InteractionType `json:"type"`
	SrcID      string          `json:"src_id"`
	DstID      string          `json:"dst_id"`
	Weight     float64         `json:"weight"`
	Similarity float64         `json:"similarity"`

	// Degraded is set when a blended coordinate had zero norm and was
	// stored un-normalized.
	Degraded bool `json:"degraded,omitempty"`
}

// Output is an event emitted by the processor: Entered, Updated or
// InteractionApplied.
type Output interface {
	Kind() string
	isOutput()
}

// Entered announces a new entry.
type Entered struct {
	Entry Entry
}

// Updated carries the current state of an existing entry.
type Updated struct {
	Entry Entry
}

// InteractionApplied carries the result of an applied interaction.
type InteractionApplied struct {
	Result InteractionResult
}

const (
	KindEntered            = "entered"
	KindUpdated            = "updated"
	KindInteractionApplied = "interaction_applied"
)

func (Entered) Kind() string            { return KindEntered }
func (Updated) Kind() string            { return KindUpdated }
func (InteractionApplied) Kind() string { return KindInteractionApplied }

func (Entered) isOutput()            {}
func (Updated) isOutput()            {}
func (InteractionApplied) isOutput() {}
