// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/motionspace/internal/vecmath"
)

const (
	tokenWeight   = 1.0
	trigramWeight = 0.3

	// maxTrigramBytes caps the UTF-8 encoding hashed for one 3-gram.
	maxTrigramBytes = 12
)

// HashingEmbedder is a deterministic bag-of-features embedder. Each
// whitespace token and each character 3-gram of the lower-cased text is
// hashed with FNV-1a into one of Dimensions() buckets. The result is
// unit-normalized unless every bucket is zero.
type HashingEmbedder struct {
	dimensions int
}

// NewHashingEmbedder creates a hashing embedder. A non-positive dimension
// selects DefaultDimensions.
func NewHashingEmbedder(dimensions int) *HashingEmbedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &HashingEmbedder{dimensions: dimensions}
}

// Dimensions returns the embedding size.
func (e *HashingEmbedder) Dimensions() int {
	return e.dimensions
}

// Embed hashes text into a vector. Text with no tokens and fewer than three
// characters yields the zero vector.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	buckets := make([]float64, e.dimensions)
	addTextFeatures(buckets, text)

	v := vecmath.New(buckets)
	if v.Norm() > 0 {
		// Norm is non-zero so Normalize cannot fail.
		_ = v.Normalize()
	}
	return v.Data(), nil
}

func addTextFeatures(buckets []float64, text string) {
	if len(buckets) == 0 {
		return
	}
	dim := uint64(len(buckets))
	lower := strings.ToLower(text)

	for _, token := range strings.Fields(lower) {
		buckets[hashBytes([]byte(token))%dim] += tokenWeight
	}

	runes := []rune(lower)
	buf := make([]byte, 0, maxTrigramBytes)
	var enc [utf8.UTFMax]byte
	for i := 0; i+3 <= len(runes); i++ {
		buf = buf[:0]
		for _, r := range runes[i : i+3] {
			n := utf8.EncodeRune(enc[:], r)
			room := maxTrigramBytes - len(buf)
			if n > room {
				n = room
			}
			buf = append(buf, enc[:n]...)
		}
		buckets[hashBytes(buf)%dim] += trigramWeight
	}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
