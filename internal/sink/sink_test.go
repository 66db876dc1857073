// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package sink

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/logging"
	"github.com/tomtom215/motionspace/internal/motion"
	"github.com/tomtom215/motionspace/internal/vecmath"
)

// recordingSink remembers every output and can be told to fail.
type recordingSink struct {
	name    string
	outputs []motion.Output
	err     error
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Handle(_ context.Context, o motion.Output) error {
	if r.err != nil {
		return r.err
	}
	r.outputs = append(r.outputs, o)
	return nil
}

type mockAppender struct {
	appended []motion.Output
}

func (m *mockAppender) Append(_ context.Context, o motion.Output) (uint64, error) {
	m.appended = append(m.appended, o)
	return uint64(len(m.appended) - 1), nil
}

func sampleOutputs() []motion.Output {
	placed := &motion.User{ID: "u1", Coord: vecmath.New([]float64{0.6, 0.8}), Motion: 0.3935}
	return []motion.Output{
		motion.Entered{Entry: motion.NewPost("p1", []float64{0.6, 0.8})},
		motion.Entered{Entry: motion.NewUser("u1")},
		motion.InteractionApplied{Result: motion.InteractionResult{Type: motion.PostToUser, SrcID: "p1", DstID: "u1", Similarity: 1, Weight: 0.3935}},
		motion.Updated{Entry: placed},
	}
}

func TestConsole_Text(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, "bogus")
	for _, o := range sampleOutputs() {
		if err := c.Handle(context.Background(), o); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	wants := []string{
		"[entered] post p1 coord=[0.600 0.800] dim=2 norm=1.0000",
		"[entered] user u1 motion=0.0000 coord=none",
		"[interaction] post_to_user p1 -> u1 similarity=1.0000 weight=0.3935",
		"[updated] user u1 motion=0.3935 coord=[0.600 0.800] dim=2 norm=1.0000",
	}
	for i, want := range wants {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRender_LongCoordAndDegraded(t *testing.T) {
	post := motion.NewPost("p", []float64{1, 0, 0, 0, 0, 0})
	if got := Render(motion.Entered{Entry: post}); !strings.Contains(got, "[1.000 0.000 0.000 0.000 ...] dim=6") {
		t.Errorf("Render() = %q, want truncated coordinate", got)
	}

	res := motion.InteractionApplied{Result: motion.InteractionResult{Type: motion.UserToUser, SrcID: "a", DstID: "b", Degraded: true}}
	if got := Render(res); !strings.HasSuffix(got, " degraded") {
		t.Errorf("Render() = %q, want degraded marker", got)
	}
}

func TestConsole_JSON(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, FormatJSON)
	for _, o := range sampleOutputs() {
		if err := c.Handle(context.Background(), o); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		o, err := motion.DecodeOutput([]byte(line))
		if err != nil {
			t.Fatalf("line %d does not decode: %v", i, err)
		}
		if o.Kind() != sampleOutputs()[i].Kind() {
			t.Errorf("line %d kind = %s", i, o.Kind())
		}
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog(zerolog.New(&buf), zerolog.InfoLevel)
	ctx := logging.ContextWithCorrelationID(context.Background(), "run-1")

	for _, o := range sampleOutputs() {
		if err := l.Handle(ctx, o); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	out := buf.String()
	for _, want := range []string{`"kind":"entered"`, `"correlation_id":"run-1"`, `"similarity":1`, `"placed":true`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestJournalSink(t *testing.T) {
	a := &mockAppender{}
	j := NewJournal(a)
	for _, o := range sampleOutputs() {
		if err := j.Handle(context.Background(), o); err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
	}
	if len(a.appended) != 4 {
		t.Errorf("appended %d outputs, want 4", len(a.appended))
	}
}

func TestMulti(t *testing.T) {
	ok := &recordingSink{name: "ok"}
	bad := &recordingSink{name: "bad", err: errors.New("disk full")}
	tail := &recordingSink{name: "tail"}

	err := Multi{ok, bad, tail}.Handle(context.Background(), sampleOutputs()[0])
	if err == nil || !strings.Contains(err.Error(), "bad sink: disk full") {
		t.Errorf("Handle() error = %v, want bad sink failure", err)
	}
	if len(ok.outputs) != 1 || len(tail.outputs) != 1 {
		t.Errorf("healthy sinks saw %d and %d outputs, want 1 each", len(ok.outputs), len(tail.outputs))
	}
}

func TestDrain(t *testing.T) {
	t.Run("until closed", func(t *testing.T) {
		in := make(chan motion.Output, 4)
		for _, o := range sampleOutputs() {
			in <- o
		}
		close(in)

		rec := &recordingSink{name: "rec"}
		n, err := Drain(context.Background(), in, rec)
		if err != nil {
			t.Fatalf("Drain() error = %v", err)
		}
		if n != 4 || len(rec.outputs) != 4 {
			t.Errorf("Drain() handled %d, sink saw %d; want 4", n, len(rec.outputs))
		}
	})

	t.Run("stops on sink error", func(t *testing.T) {
		in := make(chan motion.Output, 1)
		in <- sampleOutputs()[0]
		close(in)

		n, err := Drain(context.Background(), in, &recordingSink{name: "bad", err: errors.New("boom")})
		if err == nil || n != 0 {
			t.Errorf("Drain() = %d, %v; want 0 and error", n, err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		in := make(chan motion.Output)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Drain(ctx, in, &recordingSink{name: "rec"}); !errors.Is(err, context.Canceled) {
			t.Errorf("Drain() error = %v, want context.Canceled", err)
		}
	})
}
