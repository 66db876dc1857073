// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package embedding

import (
	"context"

	"github.com/tomtom215/motionspace/internal/cache"
	"github.com/tomtom215/motionspace/internal/metrics"
	"github.com/tomtom215/motionspace/internal/vecmath"
)

// CachedEmbedder memoizes another embedder by exact text. Callers get
// their own copy of every vector. Errors are not cached.
type CachedEmbedder struct {
	inner Embedder
	cache *cache.LRU[string, []float64]
}

// NewCachedEmbedder wraps inner with an LRU of the given capacity.
func NewCachedEmbedder(inner Embedder, capacity int) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: cache.NewLRU[string, []float64](capacity),
	}
}

// Dimensions returns the wrapped embedder's size.
func (e *CachedEmbedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Embed returns the cached vector for text or computes and stores it.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := e.cache.Get(text); ok {
		metrics.RecordEmbeddingCache(true)
		return vecmath.Copy(v), nil
	}
	metrics.RecordEmbeddingCache(false)

	v, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.cache.Add(text, vecmath.Copy(v))
	return v, nil
}

// Stats reports cache counters.
func (e *CachedEmbedder) Stats() cache.Stats {
	return e.cache.Stats()
}
