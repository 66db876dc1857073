// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/embedding"
)

// mockEmbedder returns fixed vectors keyed by text.
type mockEmbedder struct {
	dim     int
	vectors map[string][]float64
	err     error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	v := make([]float64, m.dim)
	v[0] = 1
	return v, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dim }

func newTestProcessor(emb embedding.Embedder) *Processor {
	space := NewSpace(emb.Dimensions(), nil)
	return NewProcessor(space, emb, zerolog.Nop())
}

// runInputs feeds inputs, closes the input channel and collects every output.
func runInputs(t *testing.T, p *Processor, inputs ...Input) ([]Output, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := make(chan Input, len(inputs))
	out := make(chan Output, 64)
	for _, i := range inputs {
		in <- i
	}
	close(in)

	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx, in, out) }()

	var outputs []Output
	for o := range out {
		outputs = append(outputs, o)
	}
	return outputs, <-errCh
}

func TestProcessor_ColdStartPost(t *testing.T) {
	p := newTestProcessor(embedding.NewHashingEmbedder(embedding.DefaultDimensions))

	outputs, err := runInputs(t, p, PostInput{ID: "P1", UserID: "U1", Text: "hello world"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outputs) != 3 {
		t.Fatalf("got %d outputs, want 3: %+v", len(outputs), outputs)
	}

	e0, ok := outputs[0].(Entered)
	if !ok || e0.Entry.Key() != (Key{TagPost, "P1"}) {
		t.Errorf("outputs[0] = %+v, want Entered(P1)", outputs[0])
	}
	e1, ok := outputs[1].(Entered)
	if !ok || e1.Entry.Key() != (Key{TagUser, "U1"}) {
		t.Errorf("outputs[1] = %+v, want Entered(U1)", outputs[1])
	}
	if u, ok := e1.Entry.(*User); ok && u.HasCoord() {
		t.Error("Entered(U1) snapshot should have no coordinate")
	}

	applied, ok := outputs[2].(InteractionApplied)
	if !ok {
		t.Fatalf("outputs[2] = %+v, want InteractionApplied", outputs[2])
	}
	if math.Abs(applied.Result.Similarity-1.0) > 1e-9 {
		t.Errorf("Similarity = %v, want 1.0", applied.Result.Similarity)
	}
	if want := 1 - math.Exp(-0.5); math.Abs(applied.Result.Weight-want) > 1e-9 {
		t.Errorf("Weight = %v, want %v", applied.Result.Weight, want)
	}
	if applied.Result.SrcID != "P1" || applied.Result.DstID != "U1" {
		t.Errorf("result ids = %s -> %s", applied.Result.SrcID, applied.Result.DstID)
	}
	if p.State() != StateTerminatedOK {
		t.Errorf("State() = %v, want terminated_ok", p.State())
	}
}

func TestProcessor_EmptyInput(t *testing.T) {
	p := newTestProcessor(&mockEmbedder{dim: 2})
	outputs, err := runInputs(t, p)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(outputs) != 0 {
		t.Errorf("got %d outputs, want 0", len(outputs))
	}
	if p.State() != StateTerminatedOK {
		t.Errorf("State() = %v, want terminated_ok", p.State())
	}
	if p.Err() != nil {
		t.Errorf("Err() = %v, want nil", p.Err())
	}
}

func TestProcessor_KnownUserPostSkipsEntered(t *testing.T) {
	p := newTestProcessor(&mockEmbedder{dim: 2})
	outputs, err := runInputs(t, p,
		UserInput{ID: "u1"},
		PostInput{ID: "p1", UserID: "u1", Text: "x"},
	)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	kinds := make([]string, len(outputs))
	for i, o := range outputs {
		kinds[i] = o.Kind()
	}
	want := []string{KindEntered, KindEntered, KindInteractionApplied}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestProcessor_DuplicateUserEmitsUpdated(t *testing.T) {
	p := newTestProcessor(&mockEmbedder{dim: 2})
	outputs, err := runInputs(t, p,
		UserInput{ID: "u1"},
		PostInput{ID: "p1", UserID: "u1", Text: "x"},
		UserInput{ID: "u1"},
	)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	last, ok := outputs[len(outputs)-1].(Updated)
	if !ok {
		t.Fatalf("last output = %+v, want Updated", outputs[len(outputs)-1])
	}
	u := last.Entry.(*User)
	if !u.HasCoord() || u.Motion == 0 {
		t.Errorf("Updated snapshot = %+v, want current state", u)
	}
	if p.space.Count(TagUser) != 1 {
		t.Errorf("Count(user) = %d, want 1", p.space.Count(TagUser))
	}
}

func TestProcessor_InteractionsInOrder(t *testing.T) {
	emb := &mockEmbedder{dim: 2, vectors: map[string][]float64{
		"a": {1, 0},
		"b": {0, 1},
	}}
	p := newTestProcessor(emb)

	inputs := []Input{
		PostInput{ID: "pa", UserID: "ua", Text: "a"},
		PostInput{ID: "pb", UserID: "ub", Text: "b"},
	}
	const n = 5
	for i := 0; i < n; i++ {
		src, dst := "ua", "ub"
		if i%2 == 1 {
			src, dst = dst, src
		}
		inputs = append(inputs, Interaction{Type: UserToUser, SrcID: src, DstID: dst, Alpha: 1})
	}

	outputs, err := runInputs(t, p, inputs...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// Two posts produce three outputs each.
	tail := outputs[6:]
	if len(tail) != n {
		t.Fatalf("got %d interaction outputs, want %d", len(tail), n)
	}
	for i, o := range tail {
		applied, ok := o.(InteractionApplied)
		if !ok {
			t.Fatalf("tail[%d] = %+v, want InteractionApplied", i, o)
		}
		wantSrc := "ua"
		if i%2 == 1 {
			wantSrc = "ub"
		}
		if applied.Result.SrcID != wantSrc {
			t.Errorf("tail[%d].SrcID = %s, want %s", i, applied.Result.SrcID, wantSrc)
		}
	}
}

func TestProcessor_Faults(t *testing.T) {
	tests := []struct {
		name        string
		embedder    *mockEmbedder
		inputs      []Input
		wantOutputs int
		check       func(t *testing.T, err error)
	}{
		{
			name:     "user to user without coordinates",
			embedder: &mockEmbedder{dim: 2},
			inputs: []Input{
				UserInput{ID: "a"},
				UserInput{ID: "b"},
				Interaction{Type: UserToUser, SrcID: "a", DstID: "b", Alpha: 1},
				UserInput{ID: "never"},
			},
			wantOutputs: 2,
			check: func(t *testing.T, err error) {
				var cnl *CoordNotLoadedError
				if !errors.As(err, &cnl) || cnl.ID != "a" {
					t.Errorf("error = %v, want CoordNotLoaded{a}", err)
				}
			},
		},
		{
			name:     "interaction on unknown post",
			embedder: &mockEmbedder{dim: 2},
			inputs: []Input{
				Interaction{Type: PostToUser, SrcID: "ghost", DstID: "u", Alpha: 1},
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
			},
		},
		{
			name:     "embedder failure",
			embedder: &mockEmbedder{dim: 2, err: errors.New("model offline")},
			inputs: []Input{
				PostInput{ID: "p", UserID: "u", Text: "x"},
			},
			check: func(t *testing.T, err error) {
				var ee *EmbedError
				if !errors.As(err, &ee) || ee.PostID != "p" {
					t.Errorf("error = %v, want *EmbedError{p}", err)
				}
			},
		},
		{
			name:     "embedding with wrong dimension",
			embedder: &mockEmbedder{dim: 2, vectors: map[string][]float64{"x": {1, 0, 0}}},
			inputs: []Input{
				PostInput{ID: "p", UserID: "u", Text: "x"},
			},
			check: func(t *testing.T, err error) {
				var me *MathError
				if !errors.As(err, &me) {
					t.Errorf("error = %v, want *MathError", err)
				}
			},
		},
		{
			name:     "duplicate post id",
			embedder: &mockEmbedder{dim: 2},
			inputs: []Input{
				PostInput{ID: "p", UserID: "u", Text: "x"},
				PostInput{ID: "p", UserID: "u", Text: "y"},
			},
			wantOutputs: 3,
			check: func(t *testing.T, err error) {
				var dup *DuplicateEntryError
				if !errors.As(err, &dup) {
					t.Errorf("error = %v, want *DuplicateEntryError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProcessor(tt.embedder)
			outputs, err := runInputs(t, p, tt.inputs...)
			if err == nil {
				t.Fatal("Run() error = nil, want fault")
			}
			tt.check(t, err)
			if len(outputs) != tt.wantOutputs {
				t.Errorf("got %d outputs, want %d", len(outputs), tt.wantOutputs)
			}
			if p.State() != StateTerminatedErr {
				t.Errorf("State() = %v, want terminated_err", p.State())
			}
			if p.Err() == nil {
				t.Error("Err() = nil after fault")
			}
		})
	}
}

func TestProcessor_ConsumerGone(t *testing.T) {
	p := newTestProcessor(&mockEmbedder{dim: 2})

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan Input, 1)
	out := make(chan Output) // unbuffered and never read

	in <- UserInput{ID: "u"}

	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx, in, out) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrChannelClosed) {
			t.Errorf("Run() error = %v, want ErrChannelClosed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}

	if _, ok := <-out; ok {
		t.Error("output channel not closed")
	}
	if p.State() != StateTerminatedErr {
		t.Errorf("State() = %v, want terminated_err", p.State())
	}
}

func TestProcessor_RunOnce(t *testing.T) {
	p := newTestProcessor(&mockEmbedder{dim: 2})
	if _, err := runInputs(t, p); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	in := make(chan Input)
	out := make(chan Output)
	if err := p.Run(context.Background(), in, out); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}
