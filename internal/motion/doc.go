// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

/*
Package motion implements the motion space: users and posts held as vectors in
a shared embedding space whose positions and motion values evolve as
interactions are applied.

# Overview

A Space owns an append-only list of entries plus a (tag, id) index. Two
update rules move coordinates toward each other:

  - Post to user: the user is pulled toward the post. A user without a
    coordinate is seeded from the post first.
  - User to user: actor and target are pulled toward each other by half the
    interaction weight.

For both rules the weight is 1 - exp(-alpha * similarity), where similarity
comes from the space's kernel. Blended coordinates are unit-normalized when
possible; a blend with zero norm is kept as-is and the result is flagged as
Degraded. Motion decays by Params.Decay and grows by the weight times the
applicable gain.

# Processing Loop

Processor.Run consumes Input values from a channel, applies them to the space
and emits Output values on a second channel. It terminates cleanly when the
input channel closes and with an error on any fault. The output channel is
always closed on return.

# Thread Safety

Space is not safe for concurrent use. The Processor is its only owner; every
Output carries a snapshot, never a live entry.
*/
package motion
