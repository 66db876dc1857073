// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/pipeline"
)

func newRunCmd(a *app) *cobra.Command {
	var noPrompt bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive session on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.session(cmd.Context(), a.stdin, !noPrompt)
		},
	}
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Do not print the banner and prompts")
	return cmd
}

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Run a command script without prompts (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return a.session(cmd.Context(), a.stdin, false)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			return a.session(cmd.Context(), f, false)
		},
	}
}

// session runs one pipeline until input ends or SIGINT/SIGTERM.
func (a *app) session(parent context.Context, input io.Reader, prompt bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.Logger()
	res, err := pipeline.Run(ctx, pipeline.Options{
		Config:  a.cfg,
		Input:   input,
		Output:  a.stdout,
		Prompt:  prompt,
		Version: a.version,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if prompt {
		fmt.Fprintf(a.stdout, "\nsession ended: %d entries, %d outputs\n", res.Entries, res.Outputs)
	}
	return nil
}
