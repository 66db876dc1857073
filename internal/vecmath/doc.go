// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package vecmath provides the fixed-length vector primitive used for every
// coordinate in the motion space, plus elementwise slice helpers.
//
// # Caching
//
// A Vector lazily computes and caches its Euclidean norm and its
// unit-normalized form. Both caches are dropped whenever the raw components
// are replaced through SetData, so a cached value always matches the current
// components.
//
// # Errors
//
// Binary operations on slices of unequal length fail with
// *DimensionMismatchError reporting both lengths; they never return a
// partial result. Normalizing a vector whose norm is exactly zero fails with
// ErrZeroNorm.
//
// # Thread Safety
//
// Vector is not safe for concurrent use. The motion space owns every vector
// from a single goroutine.
package vecmath
