// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

package motion

// Params holds the constants of the interaction update rules.
type Params struct {
	// Decay is the fraction of motion lost per interaction.
	Decay float64

	// PostGain scales the weight added to a user's motion by a post.
	PostGain float64

	// TargetGain and ActorGain scale the weight added to each side of a
	// user to user interaction.
	TargetGain float64
	ActorGain  float64

	// MutualStep is the fraction of the weight each user moves toward the
	// other.
	MutualStep float64

	// PostAlpha is the alpha of the interaction synthesized for a new post.
	PostAlpha float64
}

// DefaultParams returns the standard update constants.
func DefaultParams() Params {
	return Params{
		Decay:      0.02,
		PostGain:   1.0,
		TargetGain: 1.0,
		ActorGain:  0.5,
		MutualStep: 0.5,
		PostAlpha:  0.5,
	}
}
