// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/motionspace/internal/motion"
	"github.com/tomtom215/motionspace/internal/sink"
)

type fakeFrontend struct {
	inputs []motion.Input
	err    error
}

func (f *fakeFrontend) Run(ctx context.Context, _ io.Reader, _ io.Writer, out chan<- motion.Input) error {
	defer close(out)
	for _, in := range f.inputs {
		select {
		case out <- in:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

type fakeProcessor struct {
	err error
}

func (p *fakeProcessor) Run(_ context.Context, in <-chan motion.Input, out chan<- motion.Output) error {
	defer close(out)
	for range in {
	}
	return p.err
}

type countingSink struct {
	n   int
	err error
}

func (s *countingSink) Handle(context.Context, motion.Output) error {
	if s.err != nil {
		return s.err
	}
	s.n++
	return nil
}

func (s *countingSink) Name() string { return "counting" }

func TestFrontendService(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		runErr  error
		wantErr error
	}{
		{name: "clean end", runErr: nil},
		{name: "failure kept", runErr: boom, wantErr: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make(chan motion.Input, 4)
			fe := &fakeFrontend{inputs: []motion.Input{motion.UserInput{ID: "u1"}}, err: tt.runErr}
			svc := NewFrontendService(fe, strings.NewReader(""), io.Discard, in, zerolog.Nop())

			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
			}
			if !svc.Done() {
				t.Error("Done() = false after Serve")
			}
			if !errors.Is(svc.Err(), tt.wantErr) || (tt.wantErr == nil && svc.Err() != nil) {
				t.Errorf("Err() = %v, want %v", svc.Err(), tt.wantErr)
			}
			if _, ok := <-in; !ok {
				t.Error("input should have been sent before close")
			}
		})
	}
}

func TestProcessorService(t *testing.T) {
	in := make(chan motion.Input)
	close(in)
	out := make(chan motion.Output)

	svc := NewProcessorService(&fakeProcessor{err: motion.ErrChannelClosed}, in, out)
	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
	}
	if !errors.Is(svc.Err(), motion.ErrChannelClosed) {
		t.Errorf("Err() = %v, want ErrChannelClosed", svc.Err())
	}
	if _, ok := <-out; ok {
		t.Error("out should be closed")
	}
}

func TestSinkService(t *testing.T) {
	out := make(chan motion.Output, 3)
	for i := 0; i < 3; i++ {
		out <- motion.Entered{Entry: motion.NewUser("u")}
	}
	close(out)

	s := &countingSink{}
	svc := NewSinkService(s, out, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("Serve() = %v, want ErrTerminateSupervisorTree", err)
	}
	if svc.Handled() != 3 || s.n != 3 {
		t.Errorf("Handled() = %d, sink saw %d, want 3", svc.Handled(), s.n)
	}
	if svc.Err() != nil {
		t.Errorf("Err() = %v, want nil", svc.Err())
	}
}

func TestSinkService_Error(t *testing.T) {
	out := make(chan motion.Output, 1)
	out <- motion.Entered{Entry: motion.NewUser("u")}
	close(out)

	boom := errors.New("write failed")
	svc := NewSinkService(sink.Multi{&countingSink{err: boom}}, out, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("Serve() = %v, want ErrTerminateSupervisorTree", err)
	}
	if !errors.Is(svc.Err(), boom) {
		t.Errorf("Err() = %v, want %v", svc.Err(), boom)
	}
}

func TestHTTPService(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	svc := NewHTTPService(&http.Server{Addr: "127.0.0.1:0", Handler: mux, ReadHeaderTimeout: time.Second}, time.Second, zerolog.Nop())

	if svc.Addr() != "" {
		t.Errorf("Addr() before Serve = %q, want empty", svc.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-svc.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server never became ready")
	}

	resp, err := http.Get("http://" + svc.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	if body.String() != "pong" {
		t.Errorf("body = %q, want pong", body.String())
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestHTTPService_ListenError(t *testing.T) {
	svc := NewHTTPService(&http.Server{Addr: "256.0.0.1:bad"}, 0, zerolog.Nop())
	if err := svc.Serve(context.Background()); err == nil {
		t.Fatal("Serve() with a bad address should fail")
	}
	if svc.String() != "ops-http" {
		t.Errorf("String() = %q", svc.String())
	}
}
