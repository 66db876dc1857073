// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Command motionspace runs the embedding-space interaction engine.
//
//	motionspace run                  interactive session
//	motionspace replay script.txt    feed a command script
//	motionspace journal dump         print journaled outputs as JSON lines
//
// The exit status is 1 when the processor faults or a command fails.
package main

import (
	"os"

	"github.com/tomtom215/motionspace/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version, os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
