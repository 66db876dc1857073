// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package frontend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/motionspace/internal/motion"
)

var (
	// ErrEmptyID is returned for a command that needs an id but got none.
	ErrEmptyID = errors.New("cannot accept empty user id")

	// ErrEmptyText is returned for a post without text.
	ErrEmptyText = errors.New("post cannot be empty")

	// ErrUnknownCommand is returned for a line that matches no command.
	ErrUnknownCommand = errors.New("unrecognized command")

	// ErrInvalidArgs is returned when a command has the wrong arguments.
	ErrInvalidArgs = errors.New("invalid arguments")
)

// CommandKind names a front-end command.
type CommandKind string

const (
	CmdNone     CommandKind = "none"
	CmdUser     CommandKind = "user"
	CmdSwitch   CommandKind = "switch"
	CmdPost     CommandKind = "post"
	CmdPostAs   CommandKind = "post_as"
	CmdInteract CommandKind = "interact"
	CmdHelp     CommandKind = "help"
	CmdQuit     CommandKind = "quit"
)

// Command is one parsed input line.
type Command struct {
	Kind        CommandKind
	UserID      string
	Text        string
	Interaction motion.Interaction
}

// HelpText lists the accepted commands.
const HelpText = `Commands:
  user <id>                          create a user and switch to it
  switch <id>                        switch the current user
  post <text>                        post as the current user
  <user>: <text>                     post as <user>
  interact post|user <src> <dst> [alpha]
                                     apply an interaction
  help                               show this help
  quit | q                           stop reading input`

// Parse turns a line into a Command. Blank lines and lines starting with '#'
// parse to CmdNone. defaultAlpha is used when interact omits alpha.
func Parse(line string, defaultAlpha float64) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{Kind: CmdNone}, nil
	}

	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(word) {
	case "user":
		if rest == "" {
			return Command{Kind: CmdUser}, ErrEmptyID
		}
		return Command{Kind: CmdUser, UserID: rest}, nil
	case "switch":
		if rest == "" {
			return Command{Kind: CmdSwitch}, ErrEmptyID
		}
		return Command{Kind: CmdSwitch, UserID: rest}, nil
	case "post":
		if rest == "" {
			return Command{Kind: CmdPost}, ErrEmptyText
		}
		return Command{Kind: CmdPost, Text: rest}, nil
	case "interact":
		return parseInteract(rest, defaultAlpha)
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	}

	if user, text, ok := strings.Cut(line, ":"); ok {
		user = strings.TrimSpace(user)
		text = strings.TrimSpace(text)
		switch {
		case user == "":
			return Command{Kind: CmdPostAs}, ErrEmptyID
		case text == "":
			return Command{Kind: CmdPostAs, UserID: user}, ErrEmptyText
		}
		return Command{Kind: CmdPostAs, UserID: user, Text: text}, nil
	}

	return Command{Kind: CmdNone}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
}

func parseInteract(args string, defaultAlpha float64) (Command, error) {
	cmd := Command{Kind: CmdInteract}
	fields := strings.Fields(args)
	if len(fields) < 3 || len(fields) > 4 {
		return cmd, fmt.Errorf("%w: usage: interact post|user <src> <dst> [alpha]", ErrInvalidArgs)
	}

	typ, err := motion.ParseInteractionType(fields[0])
	if err != nil {
		return cmd, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}

	alpha := defaultAlpha
	if len(fields) == 4 {
		alpha, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return cmd, fmt.Errorf("%w: alpha %q is not a number", ErrInvalidArgs, fields[3])
		}
		if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
			return cmd, fmt.Errorf("%w: alpha %q is not finite", ErrInvalidArgs, fields[3])
		}
	}

	cmd.Interaction = motion.Interaction{
		Type:  typ,
		SrcID: fields[1],
		DstID: fields[2],
		Alpha: alpha,
	}
	return cmd, nil
}
