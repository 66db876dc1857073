// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package vecmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrZeroNorm is returned when normalizing a vector whose norm is exactly zero.
var ErrZeroNorm = errors.New("zero-length vector: cannot normalize")

// ErrNonFinite is returned when a value is NaN or infinite.
var ErrNonFinite = errors.New("non-finite value")

// DimensionMismatchError reports two operands of different lengths.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: left = %d, right = %d", e.Left, e.Right)
}

// CheckDims returns a *DimensionMismatchError when a and b differ in length.
func CheckDims(a, b []float64) error {
	if len(a) != len(b) {
		return &DimensionMismatchError{Left: len(a), Right: len(b)}
	}
	return nil
}

// CheckFinite returns an error wrapping ErrNonFinite naming the first NaN or
// infinite component of a.
func CheckFinite(a []float64) error {
	for i, x := range a {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: component %d is %v", ErrNonFinite, i, x)
		}
	}
	return nil
}
