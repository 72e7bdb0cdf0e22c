// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package recommend serves movie recommendations from a trained artifact.
//
// # Inference
//
// A Query names a mood, a weather and a day type. Each value is checked
// against the artifact's codecs in that order; the first unknown value is
// reported as a *codec.UnknownCategoryError listing the accepted values,
// and the classifier is never consulted.
//
// Recommend returns the classifier's single best movie with its class
// probability as the confidence (0.5 when the classifier cannot produce
// probabilities). RecommendTopK ranks movies by probability, breaking ties
// by ascending class code, and requires probability support.
//
// # Hot Reload
//
// Engine holds the live artifact behind an atomic pointer. Every call
// loads the pointer once, so an in-flight request always sees a single
// consistent artifact even while Reload swaps in a newer one. Publish,
// used after in-process training, waits for any running Reload and never
// replaces a higher served version.
//
// Each published artifact gets its own bounded prediction cache keyed by
// the encoded context, so repeated queries skip the forest. The cache is
// discarded with the artifact on the next swap.
//
// # Usage
//
//	engine := recommend.NewEngine(logger)
//	if _, err := engine.Reload(ctx, store); err != nil {
//	    logger.Warn().Err(err).Msg("serving without a model")
//	}
//
//	rec, err := engine.Recommend(recommend.Query{Mood: "Happy", Weather: "Sunny", Day: "Weekend"})
//
// # Thread Safety
//
// Artifacts are immutable after construction, so inference needs no
// locking and is safe for any number of concurrent callers.
package recommend
