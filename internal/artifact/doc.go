// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package artifact defines the trained model bundle and its on-disk form.
//
// An Artifact pairs a fitted classifier with the four codecs it was trained
// against (mood, weather, day, movie) and the movie metadata used to enrich
// recommendations. It is immutable once constructed and safe for concurrent
// read-only use.
//
// # Bundle Layout
//
// A bundle is a directory with fixed, versionless file names:
//
//	classifier.gob.gz      gob-encoded classifier, gzip-compressed
//	mood_codec.gob.gz      \
//	weather_codec.gob.gz    | gob-encoded codecs, gzip-compressed
//	day_codec.gob.gz        |
//	movie_codec.gob.gz     /
//	movie_metadata.json    ordered [{movie_title, year, genre, description}]
//	encoder_mappings.json  {"mood": {"0": "Happy"}, "weather": ..., "day": ..., "movies": ...}
//	manifest.json          version, timestamps, SHA-256 per gob component, counts
//
// LoadBundle refuses partial bundles (ErrArtifactMissing lists every absent
// file) and bundles whose pieces disagree (ErrArtifactInconsistent): bad
// checksums, undecodable components, a classifier whose class count differs
// from the movie codec, or mappings that do not match the codecs.
//
// # Store
//
// Store keeps numbered bundles under a root directory and publishes them by
// atomically swapping a "current" symlink:
//
//	root/
//	  v1/
//	  v2/
//	  current -> v2
//
// A bundle is fully written and synced in a temporary directory before it
// is renamed to v{N}, and "current" is replaced via rename, so a reader
// following "current" never observes a partially written bundle.
package artifact
