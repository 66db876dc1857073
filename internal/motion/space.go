// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/motionspace/internal/kernel"
	"github.com/tomtom215/motionspace/internal/vecmath"
)

// Space holds every entry together with the kernel and update constants.
type Space struct {
	dim     int
	kernel  kernel.Kernel
	params  Params
	logger  zerolog.Logger
	entries []Entry
	index   map[Key]int
	counts  map[Tag]int
}

// Option configures a Space.
type Option func(*Space)

// WithParams overrides the update constants.
func WithParams(p Params) Option {
	return func(s *Space) {
		s.params = p
	}
}

// WithLogger sets the logger used for per-interaction diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Space) {
		s.logger = logger
	}
}

// NewSpace creates an empty space of the given dimension. A nil kernel
// selects RBF with the default gamma.
func NewSpace(dim int, k kernel.Kernel, opts ...Option) *Space {
	if k == nil {
		k = kernel.RBF{Gamma: kernel.DefaultGamma}
	}
	s := &Space{
		dim:    dim,
		kernel: k,
		params: DefaultParams(),
		logger: zerolog.Nop(),
		index:  make(map[Key]int),
		counts: make(map[Tag]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dim returns the space dimension.
func (s *Space) Dim() int { return s.dim }

// Kernel returns the active kernel.
func (s *Space) Kernel() kernel.Kernel { return s.kernel }

// Params returns the update constants.
func (s *Space) Params() Params { return s.params }

// Len returns the number of entries.
func (s *Space) Len() int { return len(s.entries) }

// Count returns the number of entries with the given tag.
func (s *Space) Count(tag Tag) int { return s.counts[tag] }

// Entries returns the live entries in insertion order.
func (s *Space) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Enter appends e to the space. It fails with *DuplicateEntryError when the
// key is taken and with *MathError when a coordinate has the wrong length.
// The space takes ownership of e.
func (s *Space) Enter(e Entry) error {
	key := e.Key()
	if _, ok := s.index[key]; ok {
		return &DuplicateEntryError{Key: key}
	}

	var coord *vecmath.Vector
	switch v := e.(type) {
	case *User:
		coord = v.Coord
	case *Post:
		coord = v.Coord
		if coord == nil {
			coord = vecmath.Zeros(0)
		}
	}
	if coord != nil && coord.Dim() != s.dim {
		return &MathError{Op: "enter", Err: &vecmath.DimensionMismatchError{Left: coord.Dim(), Right: s.dim}}
	}

	s.index[key] = len(s.entries)
	s.entries = append(s.entries, e)
	s.counts[key.Tag]++
	return nil
}

// Find returns the live entry for (tag, id).
func (s *Space) Find(tag Tag, id string) (Entry, error) {
	slot, ok := s.index[Key{Tag: tag, ID: id}]
	if !ok {
		if tag == TagPost {
			return nil, &PostNotFoundError{ID: id}
		}
		return nil, &UserNotFoundError{ID: id}
	}
	return s.entries[slot], nil
}

// User returns the live user with the given id.
func (s *Space) User(id string) (*User, error) {
	e, err := s.Find(TagUser, id)
	if err != nil {
		return nil, err
	}
	return e.(*User), nil
}

// Post returns the live post with the given id.
func (s *Space) Post(id string) (*Post, error) {
	e, err := s.Find(TagPost, id)
	if err != nil {
		return nil, err
	}
	return e.(*Post), nil
}
