// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package embedding turns post text into fixed-dimension vectors.
package embedding

import "context"

// DefaultDimensions is the embedding size used when none is configured.
const DefaultDimensions = 128

// Embedder generates vector embeddings from text.
type Embedder interface {
	// Embed returns a vector of length Dimensions() for text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the embedding size.
	Dimensions() int
}
