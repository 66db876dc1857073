// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/motionspace/internal/motion"
	"github.com/tomtom215/motionspace/internal/vecmath"
)

// Console output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// coordPreview is how many leading components the text format prints.
const coordPreview = 4

// Console writes outputs to w as readable text or JSON lines.
type Console struct {
	w      io.Writer
	format string
}

// NewConsole creates a console sink. Unknown formats fall back to text.
func NewConsole(w io.Writer, format string) *Console {
	if format != FormatJSON {
		format = FormatText
	}
	return &Console{w: w, format: format}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Handle(_ context.Context, o motion.Output) error {
	if c.format == FormatJSON {
		data, err := motion.EncodeOutput(o)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = c.w.Write(data)
		return err
	}
	_, err := io.WriteString(c.w, Render(o)+"\n")
	return err
}

// Render formats o as one line of text.
func Render(o motion.Output) string {
	switch v := o.(type) {
	case motion.Entered:
		return "[entered] " + describeEntry(v.Entry)
	case motion.Updated:
		return "[updated] " + describeEntry(v.Entry)
	case motion.InteractionApplied:
		r := v.Result
		line := fmt.Sprintf("[interaction] %s %s -> %s similarity=%.4f weight=%.4f",
			r.Type, r.SrcID, r.DstID, r.Similarity, r.Weight)
		if r.Degraded {
			line += " degraded"
		}
		return line
	default:
		return fmt.Sprintf("[%s] %v", o.Kind(), o)
	}
}

func describeEntry(e motion.Entry) string {
	switch v := e.(type) {
	case *motion.User:
		return fmt.Sprintf("user %s motion=%.4f coord=%s", v.ID, v.Motion, describeCoord(v.Coord))
	case *motion.Post:
		return fmt.Sprintf("post %s coord=%s", v.ID, describeCoord(v.Coord))
	default:
		return e.Key().String()
	}
}

func describeCoord(v *vecmath.Vector) string {
	if v == nil {
		return "none"
	}
	data := v.Data()
	n := len(data)
	if n > coordPreview {
		n = coordPreview
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%.3f", data[i])
	}
	preview := "[" + strings.Join(parts, " ")
	if len(data) > coordPreview {
		preview += " ..."
	}
	return fmt.Sprintf("%s] dim=%d norm=%.4f", preview, len(data), v.Norm())
}
