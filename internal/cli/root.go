// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package cli implements the motionspace commands.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/motionspace/internal/config"
	"github.com/tomtom215/motionspace/internal/logging"
)

// app carries state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg     *config.Config
	version string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewRootCmd builds the command tree bound to the given streams.
func NewRootCmd(version string, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{version: version, stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "motionspace",
		Short: "Streaming embedding-space interaction engine",
		Long: "motionspace places users and posts in a shared embedding space and moves\n" +
			"users toward the content and people they interact with.",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: $"+config.ConfigPathEnvVar+" or ./motionspace.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or console")

	root.AddCommand(newRunCmd(a), newReplayCmd(a), newJournalCmd(a))
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: a.stderr,
	})
	logging.Debug().Str("command", cmd.Name()).Msg("configuration loaded")
	return nil
}
