// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package training turns a raw context/movie dataset into a model artifact.
//
// # Pipeline
//
//  1. Normalize the CSV (dataset.Normalizer), skipping malformed rows
//  2. Drop rows missing a title, mood, weather or day
//  3. Fit the four codecs and encode every row (BuildCorpus)
//  4. Drop every movie seen only once and refit the codecs (FilterRareClasses)
//  5. Split 80/20, stratified when possible (Split)
//  6. Fit the random forest on the training partition
//  7. Score the held-out partition (Evaluate)
//  8. Assemble an artifact.Artifact
//
// Each stage logs what it did as structured events, and the whole run is
// summarised in a Summary for metrics and the run registry.
//
// # Determinism
//
// The split and the forest share one seed, so two runs over the same
// dataset produce the same accuracy and the same predictions.
//
// # Usage
//
//	cfg := training.DefaultConfig()
//	res, err := training.NewTrainer(cfg, logger).Train(ctx, "data/movies.csv")
//	if err != nil {
//	    return err
//	}
//	manifest, err := store.Save(ctx, res.Artifact)
package training
