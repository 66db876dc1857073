// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package vecmath

import "math"

// Vector is a fixed-length float64 vector with a cached norm and a cached
// unit-normalized copy.
type Vector struct {
	data []float64

	norm    float64
	hasNorm bool

	// unit is nil until Normalized succeeds.
	unit []float64
}

// New creates a vector that takes ownership of data.
func New(data []float64) *Vector {
	return &Vector{data: data}
}

// FromSlice creates a vector holding a copy of data.
func FromSlice(data []float64) *Vector {
	return New(Copy(data))
}

// Zeros creates a zero vector of the given dimension.
func Zeros(dim int) *Vector {
	return New(make([]float64, dim))
}

// Dim returns the number of components.
func (v *Vector) Dim() int {
	return len(v.data)
}

// Data returns a copy of the raw components.
func (v *Vector) Data() []float64 {
	return Copy(v.data)
}

// At returns component i.
func (v *Vector) At(i int) float64 {
	return v.data[i]
}

// SetData replaces the raw components and drops both caches.
func (v *Vector) SetData(data []float64) {
	v.data = data
	v.clearCache()
}

func (v *Vector) clearCache() {
	v.norm = 0
	v.hasNorm = false
	v.unit = nil
}

// Norm returns the Euclidean norm, computing it on first use.
func (v *Vector) Norm() float64 {
	if v.hasNorm {
		return v.norm
	}
	var sum float64
	for _, x := range v.data {
		sum += x * x
	}
	v.norm = math.Sqrt(sum)
	v.hasNorm = true
	return v.norm
}

// Normalized returns a copy of the unit-normalized components, computing and
// caching them on first use. It fails with ErrZeroNorm if the norm is zero.
func (v *Vector) Normalized() ([]float64, error) {
	if v.unit != nil {
		return Copy(v.unit), nil
	}
	n := v.Norm()
	if n == 0 {
		return nil, ErrZeroNorm
	}
	v.unit = Scale(v.data, 1/n)
	return Copy(v.unit), nil
}

// Normalize replaces the components with their unit-normalized form.
// On ErrZeroNorm the vector is left unchanged.
func (v *Vector) Normalize() error {
	unit, err := v.Normalized()
	if err != nil {
		return err
	}
	v.data = unit
	v.unit = Copy(unit)
	v.norm = 1
	v.hasNorm = true
	return nil
}

// Clone returns a deep copy, caches included.
func (v *Vector) Clone() *Vector {
	if v == nil {
		return nil
	}
	c := &Vector{
		data:    Copy(v.data),
		norm:    v.norm,
		hasNorm: v.hasNorm,
	}
	if v.unit != nil {
		c.unit = Copy(v.unit)
	}
	return c
}
