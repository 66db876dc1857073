// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/motionspace/internal/vecmath"
)

// OutputRecord is the JSON form of an Output.
type OutputRecord struct {
	Kind   string             `json:"kind"`
	Entry  *EntryRecord       `json:"entry,omitempty"`
	Result *InteractionResult `json:"result,omitempty"`
}

// EntryRecord is the JSON form of an Entry. Coord is null for a user that
// has not been placed yet.
type EntryRecord struct {
	Tag      string      `json:"tag"`
	ID       string      `json:"id"`
	Coord    []float64   `json:"coord"`
	Motion   *float64    `json:"motion,omitempty"`
	Features [][]float64 `json:"features,omitempty"`
}

// NewEntryRecord converts e to its record form.
func NewEntryRecord(e Entry) (*EntryRecord, error) {
	switch v := e.(type) {
	case *User:
		motion := v.Motion
		rec := &EntryRecord{Tag: TagUser.String(), ID: v.ID, Motion: &motion}
		if v.Coord != nil {
			rec.Coord = v.Coord.Data()
		}
		return rec, nil
	case *Post:
		rec := &EntryRecord{Tag: TagPost.String(), ID: v.ID}
		if v.Coord != nil {
			rec.Coord = v.Coord.Data()
		}
		for _, f := range v.Features {
			rec.Features = append(rec.Features, f.Data())
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unsupported entry type %T", e)
	}
}

// Entry converts the record back into an Entry.
func (r *EntryRecord) Entry() (Entry, error) {
	tag, err := ParseTag(r.Tag)
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagUser:
		u := &User{ID: r.ID}
		if r.Coord != nil {
			u.Coord = vecmath.FromSlice(r.Coord)
		}
		if r.Motion != nil {
			u.Motion = *r.Motion
		}
		return u, nil
	default:
		p := &Post{ID: r.ID, Coord: vecmath.FromSlice(r.Coord)}
		for _, f := range r.Features {
			p.Features = append(p.Features, vecmath.FromSlice(f))
		}
		return p, nil
	}
}

// NewOutputRecord converts o to its record form.
func NewOutputRecord(o Output) (*OutputRecord, error) {
	rec := &OutputRecord{Kind: o.Kind()}
	switch v := o.(type) {
	case Entered:
		entry, err := NewEntryRecord(v.Entry)
		if err != nil {
			return nil, err
		}
		rec.Entry = entry
	case Updated:
		entry, err := NewEntryRecord(v.Entry)
		if err != nil {
			return nil, err
		}
		rec.Entry = entry
	case InteractionApplied:
		result := v.Result
		rec.Result = &result
	default:
		return nil, fmt.Errorf("unsupported output type %T", o)
	}
	return rec, nil
}

// Output converts the record back into an Output.
func (r *OutputRecord) Output() (Output, error) {
	switch r.Kind {
	case KindEntered, KindUpdated:
		if r.Entry == nil {
			return nil, fmt.Errorf("%s record without entry", r.Kind)
		}
		entry, err := r.Entry.Entry()
		if err != nil {
			return nil, err
		}
		if r.Kind == KindEntered {
			return Entered{Entry: entry}, nil
		}
		return Updated{Entry: entry}, nil
	case KindInteractionApplied:
		if r.Result == nil {
			return nil, fmt.Errorf("%s record without result", r.Kind)
		}
		return InteractionApplied{Result: *r.Result}, nil
	default:
		return nil, fmt.Errorf("unknown output kind %q", r.Kind)
	}
}

// EncodeOutput marshals o to JSON.
func EncodeOutput(o Output) ([]byte, error) {
	rec, err := NewOutputRecord(o)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return data, nil
}

// DecodeOutput unmarshals JSON produced by EncodeOutput.
func DecodeOutput(data []byte) (Output, error) {
	var rec OutputRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal output: %w", err)
	}
	out, err := rec.Output()
	if err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return out, nil
}
