// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
)

func TestEngine_PredictionCache(t *testing.T) {
	t.Parallel()

	a, calls := probaArtifact(t, []float64{0.1, 0.2, 0.3, 0.4})
	e := NewEngine(zerolog.Nop())
	e.Swap(a)

	first, err := e.Recommend(happy)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	afterFirst := *calls
	if afterFirst == 0 {
		t.Fatal("classifier was never consulted")
	}

	for i := 0; i < 5; i++ {
		rec, err := e.Recommend(happy)
		if err != nil {
			t.Fatal(err)
		}
		if rec.MovieTitle != first.MovieTitle || rec.Confidence != first.Confidence {
			t.Errorf("cached answer %+v differs from %+v", rec, first)
		}
	}
	if *calls != afterFirst {
		t.Errorf("classifier calls = %d after repeats, want %d", *calls, afterFirst)
	}

	stats := e.Info().PredictionCache
	if stats == nil {
		t.Fatal("Info() has no prediction cache stats")
	}
	if stats.Hits < 5 || stats.Misses < 1 || stats.Entries < 1 || stats.Evictions != 0 {
		t.Errorf("PredictionCache = %+v, want at least 5 hits, 1 miss and 1 entry", stats)
	}

	// A different context misses.
	if _, err := e.Recommend(Query{Mood: "Sad", Weather: "Rainy", Day: "Weekday"}); err != nil {
		t.Fatal(err)
	}
	if *calls == afterFirst {
		t.Error("a new context should reach the classifier")
	}
}

func TestEngine_PredictionCacheResetOnSwap(t *testing.T) {
	t.Parallel()

	e := NewEngine(zerolog.Nop())
	a, _ := probaArtifact(t, []float64{0.7, 0.1, 0.1, 0.1})
	b, _ := probaArtifact(t, []float64{0.1, 0.1, 0.1, 0.7})

	e.Swap(a)
	if rec, err := e.Recommend(happy); err != nil || rec.MovieTitle != "Amélie" {
		t.Fatalf("Recommend() = %+v, %v", rec, err)
	}
	e.Swap(b)
	if rec, err := e.Recommend(happy); err != nil || rec.MovieTitle != "Up" {
		t.Errorf("after swap Recommend() = %+v, %v; want Up", rec, err)
	}
	if e.Artifact() != b {
		t.Error("Artifact() should return the published artifact, not the cached view")
	}
}

func TestWithPredictionCache_KeepsCapabilities(t *testing.T) {
	t.Parallel()

	plain := withPredictionCache(newArtifact(t, plainClassifier{code: 1, classes: 4}))
	if _, ok := plain.Classifier.(artifact.ProbabilityEstimator); ok {
		t.Error("a classifier without probabilities must not gain PredictProba")
	}
	if _, err := RecommendTopK(plain, happy, 2); err == nil {
		t.Error("RecommendTopK() on a plain classifier should fail")
	}

	a, _ := probaArtifact(t, []float64{0.4, 0.3, 0.2, 0.1})
	cached := withPredictionCache(a)
	pe, ok := cached.Classifier.(artifact.ProbabilityEstimator)
	if !ok {
		t.Fatal("probability estimator lost its PredictProba")
	}
	x := []int{0, 0, 0}
	p1, err := pe.PredictProba(x)
	if err != nil {
		t.Fatal(err)
	}
	p1[0] = 99
	p2, _ := pe.PredictProba(x) //nolint:errcheck // cached
	if p2[0] != 0.4 {
		t.Errorf("cached vector was mutated through a returned slice: %v", p2)
	}
	if _, ok := a.Classifier.(probaClassifier); !ok {
		t.Error("withPredictionCache modified its input")
	}
	if withPredictionCache(nil) != nil {
		t.Error("withPredictionCache(nil) != nil")
	}
}
