// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/motionspace/internal/vecmath"
)

// Apply dispatches i to the matching update rule.
func (s *Space) Apply(i Interaction) (InteractionResult, error) {
	switch i.Type {
	case PostToUser:
		return s.ApplyPostToUser(i.SrcID, i.DstID, i.Alpha)
	case UserToUser:
		return s.ApplyUserToUser(i.SrcID, i.DstID, i.Alpha)
	default:
		return InteractionResult{}, fmt.Errorf("%w: %d", ErrUnknownInteraction, int(i.Type))
	}
}

// ApplyPostToUser pulls user userID toward post postID. An unknown user is
// created without a coordinate, and a user without a coordinate is seeded
// with a copy of the post's coordinate. Nothing is written to the space
// when the interaction fails.
func (s *Space) ApplyPostToUser(postID, userID string, alpha float64) (InteractionResult, error) {
	post, err := s.Post(postID)
	if err != nil {
		return InteractionResult{}, err
	}

	user, err := s.User(userID)
	created := false
	if errors.Is(err, ErrNotFound) {
		user = NewUser(userID)
		created = true
	} else if err != nil {
		return InteractionResult{}, err
	}

	postData := post.Coord.Data()
	userData := postData
	if user.HasCoord() {
		userData = user.Coord.Data()
	}

	similarity, err := s.similarity(userData, postData)
	if err != nil {
		return InteractionResult{}, err
	}
	weight, err := interactionWeight(alpha, similarity)
	if err != nil {
		return InteractionResult{}, err
	}

	coord, degraded, err := blendTowards(userData, postData, weight)
	if err != nil {
		return InteractionResult{}, err
	}

	nextMotion, err := checkedScalar("motion", (1-s.params.Decay)*user.Motion+s.params.PostGain*weight)
	if err != nil {
		return InteractionResult{}, err
	}

	if created {
		if err := s.Enter(user); err != nil {
			return InteractionResult{}, err
		}
		s.logger.Debug().Str("user_id", userID).Msg("auto-created user for post interaction")
	}
	user.Coord = coord
	user.Motion = nextMotion

	s.logger.Debug().
		Str("post_id", postID).
		Str("user_id", userID).
		Float64("similarity", similarity).
		Float64("weight", weight).
		Float64("motion", user.Motion).
		Bool("degraded", degraded).
		Msg("post to user interaction applied")

	return InteractionResult{
		Type:       PostToUser,
		SrcID:      postID,
		DstID:      userID,
		Weight:     weight,
		Similarity: similarity,
		Degraded:   degraded,
	}, nil
}

// ApplyUserToUser pulls actor and target toward each other. Both users must
// already have coordinates; the actor is checked first.
func (s *Space) ApplyUserToUser(actorID, targetID string, alpha float64) (InteractionResult, error) {
	actor, err := s.User(actorID)
	if err != nil {
		return InteractionResult{}, err
	}
	target, err := s.User(targetID)
	if err != nil {
		return InteractionResult{}, err
	}
	if !actor.HasCoord() {
		return InteractionResult{}, &CoordNotLoadedError{ID: actorID}
	}
	if !target.HasCoord() {
		return InteractionResult{}, &CoordNotLoadedError{ID: targetID}
	}

	actorData := actor.Coord.Data()
	targetData := target.Coord.Data()

	similarity, err := s.similarity(actorData, targetData)
	if err != nil {
		return InteractionResult{}, err
	}
	weight, err := interactionWeight(alpha, similarity)
	if err != nil {
		return InteractionResult{}, err
	}
	step := s.params.MutualStep * weight

	newActor, actorDegraded, err := blendTowards(actorData, targetData, step)
	if err != nil {
		return InteractionResult{}, err
	}
	newTarget, targetDegraded, err := blendTowards(targetData, actorData, step)
	if err != nil {
		return InteractionResult{}, err
	}

	actorMotion, err := checkedScalar("motion", (1-s.params.Decay)*actor.Motion+s.params.ActorGain*weight)
	if err != nil {
		return InteractionResult{}, err
	}
	targetMotion, err := checkedScalar("motion", (1-s.params.Decay)*target.Motion+s.params.TargetGain*weight)
	if err != nil {
		return InteractionResult{}, err
	}

	// Target first so that a self-interaction ends with the actor's values.
	target.Coord = newTarget
	target.Motion = targetMotion
	actor.Coord = newActor
	actor.Motion = actorMotion

	degraded := actorDegraded || targetDegraded
	s.logger.Debug().
		Str("actor_id", actorID).
		Str("target_id", targetID).
		Float64("similarity", similarity).
		Float64("weight", weight).
		Float64("actor_motion", actorMotion).
		Float64("target_motion", targetMotion).
		Bool("degraded", degraded).
		Msg("user to user interaction applied")

	return InteractionResult{
		Type:       UserToUser,
		SrcID:      actorID,
		DstID:      targetID,
		Weight:     weight,
		Similarity: similarity,
		Degraded:   degraded,
	}, nil
}

func (s *Space) similarity(x, y []float64) (float64, error) {
	sim, err := s.kernel.Apply(x, y)
	if err != nil {
		return 0, &MathError{Op: "similarity", Err: err}
	}
	return checkedScalar("similarity", sim)
}

// interactionWeight is 1 - exp(-alpha*similarity).
func interactionWeight(alpha, similarity float64) (float64, error) {
	return checkedScalar("weight", 1-math.Exp(-alpha*similarity))
}

// checkedScalar returns v, or a math fault for op when v is NaN or infinite.
func checkedScalar(op string, v float64) (float64, error) {
	if err := vecmath.CheckFinite([]float64{v}); err != nil {
		return 0, &MathError{Op: op, Err: err}
	}
	return v, nil
}

// blendTowards returns from*(1-t) + to*t as a new vector, unit-normalized
// when its norm is non-zero. degraded reports a zero-norm blend. A blend
// with a non-finite component is a math fault.
func blendTowards(from, to []float64, t float64) (*vecmath.Vector, bool, error) {
	blended, err := vecmath.Blend(from, to, t)
	if err != nil {
		return nil, false, &MathError{Op: "blend", Err: err}
	}
	if err := vecmath.CheckFinite(blended); err != nil {
		return nil, false, &MathError{Op: "blend", Err: err}
	}
	v := vecmath.New(blended)
	if _, err := checkedScalar("blend norm", v.Norm()); err != nil {
		return nil, false, err
	}
	// Normalize fails only on a zero norm, which is tolerated.
	if err := v.Normalize(); err != nil {
		return v, true, nil
	}
	return v, false, nil
}
