// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package sink

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/motion"
)

// Log records each output as a structured log event.
type Log struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewLog creates a log sink that writes at level.
func NewLog(logger zerolog.Logger, level zerolog.Level) *Log {
	return &Log{logger: logger, level: level}
}

func (l *Log) Name() string { return "log" }

func (l *Log) Handle(ctx context.Context, o motion.Output) error {
	event := l.logger.WithLevel(l.level).Str("kind", o.Kind())
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}

	switch v := o.(type) {
	case motion.Entered:
		event = entryFields(event, v.Entry)
	case motion.Updated:
		event = entryFields(event, v.Entry)
	case motion.InteractionApplied:
		event = event.
			Str("type", v.Result.Type.String()).
			Str("src_id", v.Result.SrcID).
			Str("dst_id", v.Result.DstID).
			Float64("similarity", v.Result.Similarity).
			Float64("weight", v.Result.Weight).
			Bool("degraded", v.Result.Degraded)
	}
	event.Msg("motion output")
	return nil
}

func entryFields(event *zerolog.Event, e motion.Entry) *zerolog.Event {
	key := e.Key()
	event = event.Str("tag", key.Tag.String()).Str("id", key.ID)
	if u, ok := e.(*motion.User); ok {
		event = event.Float64("motion", u.Motion).Bool("placed", u.HasCoord())
	}
	return event
}
