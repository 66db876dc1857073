// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package embedding

import (
	"context"
	"errors"
	"math"
	"testing"
)

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func TestNewHashingEmbedder(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		want int
	}{
		{"explicit dimension", 16, 16},
		{"zero selects default", 0, DefaultDimensions},
		{"negative selects default", -4, DefaultDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewHashingEmbedder(tt.dim).Dimensions(); got != tt.want {
				t.Errorf("Dimensions() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHashingEmbedder_Embed(t *testing.T) {
	e := NewHashingEmbedder(0)
	ctx := context.Background()

	t.Run("unit length for non-empty text", func(t *testing.T) {
		v, err := e.Embed(ctx, "hello world")
		if err != nil {
			t.Fatalf("Embed() error = %v", err)
		}
		if len(v) != DefaultDimensions {
			t.Fatalf("len = %d, want %d", len(v), DefaultDimensions)
		}
		if n := norm(v); math.Abs(n-1) > 1e-9 {
			t.Errorf("norm = %v, want 1", n)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a, _ := e.Embed(ctx, "the quick brown fox")
		b, _ := e.Embed(ctx, "the quick brown fox")
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("component %d differs: %v vs %v", i, a[i], b[i])
			}
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		a, _ := e.Embed(ctx, "Hello World")
		b, _ := e.Embed(ctx, "hello world")
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("component %d differs: %v vs %v", i, a[i], b[i])
			}
		}
	})

	t.Run("empty text is the zero vector", func(t *testing.T) {
		v, err := e.Embed(ctx, "")
		if err != nil {
			t.Fatalf("Embed() error = %v", err)
		}
		if n := norm(v); n != 0 {
			t.Errorf("norm = %v, want 0", n)
		}
	})

	t.Run("multibyte text", func(t *testing.T) {
		v, err := e.Embed(ctx, "héllo wörld 日本語")
		if err != nil {
			t.Fatalf("Embed() error = %v", err)
		}
		if n := norm(v); math.Abs(n-1) > 1e-9 {
			t.Errorf("norm = %v, want 1", n)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := e.Embed(cctx, "x"); !errors.Is(err, context.Canceled) {
			t.Errorf("Embed() error = %v, want context.Canceled", err)
		}
	})
}

func TestAddTextFeatures_SingleToken(t *testing.T) {
	buckets := make([]float64, 8)
	addTextFeatures(buckets, "ab")

	var total float64
	for _, b := range buckets {
		total += b
	}
	// One token, no 3-grams.
	if total != tokenWeight {
		t.Errorf("total weight = %v, want %v", total, tokenWeight)
	}

	buckets = make([]float64, 8)
	addTextFeatures(buckets, "abcd")
	total = 0
	for _, b := range buckets {
		total += b
	}
	// One token plus two 3-grams.
	if want := tokenWeight + 2*trigramWeight; math.Abs(total-want) > 1e-12 {
		t.Errorf("total weight = %v, want %v", total, want)
	}
}
