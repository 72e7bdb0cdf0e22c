// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package registry keeps a durable history of training runs in BadgerDB.
//
// Each run is stored as JSON under a key ordered by start time, so the
// newest runs are read first with a reverse prefix scan. A secondary key
// maps run IDs to their primary key for direct lookup.
//
// The registry is informational: callers log registry errors and carry on,
// so a broken registry never fails a training run.
package registry
