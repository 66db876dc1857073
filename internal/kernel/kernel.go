// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package kernel provides the similarity functions used by the motion space.
//
// A Kernel maps two equal-length vectors to a scalar. The RBF kernel is the
// default; Linear and Polynomial are available through configuration.
package kernel

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/motionspace/internal/vecmath"
)

// Kernel computes a similarity score between two vectors.
type Kernel interface {
	// Apply returns the similarity of x and y. Vectors of different length
	// fail with *vecmath.DimensionMismatchError.
	Apply(x, y []float64) (float64, error)

	// Name returns the kernel identifier used in config and logs.
	Name() string
}

// Kernel names accepted by New.
const (
	TypeRBF        = "rbf"
	TypeLinear     = "linear"
	TypePolynomial = "polynomial"
)

// DefaultGamma is the RBF bandwidth used when none is configured.
const DefaultGamma = 2.0

// Config selects and parameterizes a kernel.
type Config struct {
	Type   string
	Gamma  float64
	Coef0  float64
	Degree int
}

// DefaultConfig returns an RBF kernel with gamma 2.0.
func DefaultConfig() Config {
	return Config{
		Type:   TypeRBF,
		Gamma:  DefaultGamma,
		Coef0:  1.0,
		Degree: 2,
	}
}

// New builds the kernel named by cfg.Type.
func New(cfg Config) (Kernel, error) {
	switch strings.ToLower(cfg.Type) {
	case TypeRBF, "":
		return RBF{Gamma: cfg.Gamma}, nil
	case TypeLinear:
		return Linear{}, nil
	case TypePolynomial:
		if cfg.Degree < 1 {
			return nil, fmt.Errorf("polynomial kernel degree must be >= 1, got %d", cfg.Degree)
		}
		return Polynomial{Gamma: cfg.Gamma, Coef0: cfg.Coef0, Degree: cfg.Degree}, nil
	default:
		return nil, fmt.Errorf("unknown kernel type %q", cfg.Type)
	}
}

// RBF is the Gaussian radial basis function exp(-gamma * ||x-y||²).
type RBF struct {
	Gamma float64
}

func (k RBF) Apply(x, y []float64) (float64, error) {
	sq, err := vecmath.SquaredDistance(x, y)
	if err != nil {
		return 0, err
	}
	return math.Exp(-k.Gamma * sq), nil
}

func (RBF) Name() string { return TypeRBF }

// Linear is the plain inner product.
type Linear struct{}

func (Linear) Apply(x, y []float64) (float64, error) {
	return vecmath.Dot(x, y)
}

func (Linear) Name() string { return TypeLinear }

// Polynomial computes (gamma * x·y + coef0)^degree.
type Polynomial struct {
	Gamma  float64
	Coef0  float64
	Degree int
}

func (k Polynomial) Apply(x, y []float64) (float64, error) {
	dot, err := vecmath.Dot(x, y)
	if err != nil {
		return 0, err
	}
	return math.Pow(k.Gamma*dot+k.Coef0, float64(k.Degree)), nil
}

func (Polynomial) Name() string { return TypePolynomial }
