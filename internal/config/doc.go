// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

/*
Package config loads motionspace configuration using Koanf v2.

Sources are layered, later ones overriding earlier ones:

 1. built-in defaults
 2. a YAML file (--config, $MOTIONSPACE_CONFIG, or ./motionspace.yaml)
 3. MOTIONSPACE_* environment variables

Example file:

	space:
	  dimension: 64
	embedding:
	  cache_size: 1024
	kernel:
	  type: rbf
	  gamma: 2.0
	interaction:
	  decay: 0.02
	  post_alpha: 0.5
	sink:
	  format: json
	journal:
	  enabled: true
	  path: /var/lib/motionspace/journal
	metrics:
	  enabled: true
	  addr: 127.0.0.1:9464

Environment names are the section and key joined with an underscore,
e.g. MOTIONSPACE_KERNEL_GAMMA=1.5 or MOTIONSPACE_JOURNAL_ENABLED=true.
The logging section uses MOTIONSPACE_LOG_LEVEL, MOTIONSPACE_LOG_FORMAT and
MOTIONSPACE_LOG_CALLER.

Validation runs after loading. Field ranges come from validate tags
checked by internal/validation; rules spanning fields (journal path,
metrics address) are checked in Validate.
*/
package config
