// Motionspace - Streaming Embedding-Space Interaction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motionspace

// Package services adapts motionspace components to suture.Service.
//
// The three pipeline services run exactly once:
//   - FrontendService reads commands and sends inputs
//   - ProcessorService applies inputs to the space
//   - SinkService delivers outputs and, once the output channel is
//     closed, terminates the supervisor tree
//
// Their results are kept on the service and read after the tree stops.
// HTTPService runs the ops server and is restarted with backoff on failure.
package services
