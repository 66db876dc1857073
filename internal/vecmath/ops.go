// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package vecmath

// Copy returns a copy of a. A nil slice stays nil.
func Copy(a []float64) []float64 {
	if a == nil {
		return nil
	}
	out := make([]float64, len(a))
	copy(out, a)
	return out
}

// Zip combines a and b elementwise with f.
func Zip(a, b []float64, f func(x, y float64) float64) ([]float64, error) {
	if err := CheckDims(a, b); err != nil {
		return nil, err
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = f(a[i], b[i])
	}
	return out, nil
}

// Map applies f to every component of a.
func Map(a []float64, f func(x float64) float64) []float64 {
	out := make([]float64, len(a))
	for i, x := range a {
		out[i] = f(x)
	}
	return out
}

// Add returns a + b.
func Add(a, b []float64) ([]float64, error) {
	return Zip(a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
func Sub(a, b []float64) ([]float64, error) {
	return Zip(a, b, func(x, y float64) float64 { return x - y })
}

// Scale returns a * s.
func Scale(a []float64, s float64) []float64 {
	return Map(a, func(x float64) float64 { return x * s })
}

// Dot returns the inner product of a and b.
func Dot(a, b []float64) (float64, error) {
	if err := CheckDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// SquaredDistance returns Σ(a[i]-b[i])².
func SquaredDistance(a, b []float64) (float64, error) {
	if err := CheckDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum, nil
}

// Blend returns a*(1-t) + b*t.
func Blend(a, b []float64, t float64) ([]float64, error) {
	return Zip(a, b, func(x, y float64) float64 { return x*(1-t) + y*t })
}
