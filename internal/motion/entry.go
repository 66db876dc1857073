// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"fmt"

	"github.com/tomtom215/motionspace/internal/vecmath"
)

// Tag distinguishes entry kinds.
type Tag uint8

const (
	TagUser Tag = iota + 1
	TagPost
)

func (t Tag) String() string {
	switch t {
	case TagUser:
		return "user"
	case TagPost:
		return "post"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// ParseTag parses "user" or "post".
func ParseTag(s string) (Tag, error) {
	switch s {
	case "user":
		return TagUser, nil
	case "post":
		return TagPost, nil
	default:
		return 0, fmt.Errorf("unknown entry tag %q", s)
	}
}

// Key identifies an entry. A user and a post may share an ID.
type Key struct {
	Tag Tag
	ID  string
}

func (k Key) String() string {
	return k.Tag.String() + ":" + k.ID
}

// Entry is a member of the space: *User or *Post.
type Entry interface {
	Key() Key
	// Clone returns a deep copy safe to hand to another goroutine.
	Clone() Entry
}

// User is an actor in the space. Coord is nil until the first interaction
// touches the user.
type User struct {
	ID     string
	Coord  *vecmath.Vector
	Motion float64
}

// NewUser creates a user with no coordinate and zero motion.
func NewUser(id string) *User {
	return &User{ID: id}
}

func (u *User) Key() Key {
	return Key{Tag: TagUser, ID: u.ID}
}

func (u *User) Clone() Entry {
	return &User{ID: u.ID, Coord: u.Coord.Clone(), Motion: u.Motion}
}

// HasCoord reports whether the user has been placed in the space.
func (u *User) HasCoord() bool {
	return u.Coord != nil
}

// Post is a piece of content with a fixed coordinate. Features is reserved.
type Post struct {
	ID       string
	Coord    *vecmath.Vector
	Features []*vecmath.Vector
}

// NewPost creates a post at coord.
func NewPost(id string, coord []float64) *Post {
	return &Post{ID: id, Coord: vecmath.New(coord)}
}

func (p *Post) Key() Key {
	return Key{Tag: TagPost, ID: p.ID}
}

func (p *Post) Clone() Entry {
	c := &Post{ID: p.ID, Coord: p.Coord.Clone()}
	if len(p.Features) > 0 {
		c.Features = make([]*vecmath.Vector, len(p.Features))
		for i, f := range p.Features {
			c.Features[i] = f.Clone()
		}
	}
	return c
}
