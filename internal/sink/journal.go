// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package sink

import (
	"context"

	"github.com/tomtom215/motionspace/internal/motion"
)

// Appender stores outputs. *journal.Journal satisfies it.
type Appender interface {
	Append(ctx context.Context, o motion.Output) (uint64, error)
}

// Journal appends every output to an Appender.
type Journal struct {
	appender Appender
}

// NewJournal creates a journal sink.
func NewJournal(a Appender) *Journal {
	return &Journal{appender: a}
}

func (j *Journal) Name() string { return "journal" }

func (j *Journal) Handle(ctx context.Context, o motion.Output) error {
	_, err := j.appender.Append(ctx, o)
	return err
}
