// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package frontend

import (
	"errors"
	"testing"

	"github.com/tomtom215/motionspace/internal/motion"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Command
		wantErr error
	}{
		{"blank", "   ", Command{Kind: CmdNone}, nil},
		{"comment", "# setup", Command{Kind: CmdNone}, nil},
		{"user", "user alice", Command{Kind: CmdUser, UserID: "alice"}, nil},
		{"user trims", "  user   bob  ", Command{Kind: CmdUser, UserID: "bob"}, nil},
		{"user without id", "user", Command{Kind: CmdUser}, ErrEmptyID},
		{"switch", "switch carol", Command{Kind: CmdSwitch, UserID: "carol"}, nil},
		{"switch without id", "switch ", Command{Kind: CmdSwitch}, ErrEmptyID},
		{"post", "post hello world", Command{Kind: CmdPost, Text: "hello world"}, nil},
		{"post without text", "post", Command{Kind: CmdPost}, ErrEmptyText},
		{"post as", "dave: good morning", Command{Kind: CmdPostAs, UserID: "dave", Text: "good morning"}, nil},
		{"post as keeps later colons", "eve: ratio: 3:1", Command{Kind: CmdPostAs, UserID: "eve", Text: "ratio: 3:1"}, nil},
		{"post as without user", ": hi", Command{Kind: CmdPostAs}, ErrEmptyID},
		{"post as without text", "frank:", Command{Kind: CmdPostAs, UserID: "frank"}, ErrEmptyText},
		{"help", "help", Command{Kind: CmdHelp}, nil},
		{"quit", "quit", Command{Kind: CmdQuit}, nil},
		{"q", "Q", Command{Kind: CmdQuit}, nil},
		{"unknown", "dance now", Command{Kind: CmdNone}, ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line, DefaultAlpha)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParse_Interact(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    motion.Interaction
		wantErr bool
	}{
		{
			name: "post with default alpha",
			line: "interact post p1 u1",
			want: motion.Interaction{Type: motion.PostToUser, SrcID: "p1", DstID: "u1", Alpha: DefaultAlpha},
		},
		{
			name: "user with alpha",
			line: "interact user a b 2.5",
			want: motion.Interaction{Type: motion.UserToUser, SrcID: "a", DstID: "b", Alpha: 2.5},
		},
		{
			name: "negative alpha passes through",
			line: "interact user a b -1",
			want: motion.Interaction{Type: motion.UserToUser, SrcID: "a", DstID: "b", Alpha: -1},
		},
		{name: "too few args", line: "interact user a", wantErr: true},
		{name: "too many args", line: "interact user a b 1 2", wantErr: true},
		{name: "bad type", line: "interact like a b", wantErr: true},
		{name: "bad alpha", line: "interact user a b lots", wantErr: true},
		{name: "nan alpha", line: "interact post p1 u1 NaN", wantErr: true},
		{name: "inf alpha", line: "interact post p1 u1 Inf", wantErr: true},
		{name: "negative inf alpha", line: "interact user a b -inf", wantErr: true},
		{name: "overflowing alpha", line: "interact user a b 1e400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line, DefaultAlpha)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgs) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidArgs", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.line, err)
			}
			if got.Kind != CmdInteract || got.Interaction != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.line, got.Interaction, tt.want)
			}
		})
	}
}
