// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/dataset"
	"github.com/tomtom215/moodflix/internal/training"
)

// TestTrainPublishRecommend runs the whole path: train on a CSV, publish
// the bundle, load it back and serve recommendations from it.
func TestTrainPublishRecommend(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("movie_title,mood,weather,day,year,genre,description\n")
	for i := 0; i < 5; i++ {
		b.WriteString("X,Happy,Sunny,Weekend,2001,Comedy,Bright\n")
		b.WriteString("Y,Sad,Rainy,Weekday,1999,Drama,\"Grey, slow\"\n")
	}
	b.WriteString("Once,Happy,Rainy,Weekday,2020,Indie,Only one\n")

	trainer := training.NewTrainer(training.DefaultConfig(), zerolog.Nop())
	res, err := trainer.TrainRecords(context.Background(), mustNormalize(t, b.String()))
	if err != nil {
		t.Fatalf("TrainRecords() error: %v", err)
	}

	store, err := artifact.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(context.Background(), res.Artifact); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	e := NewEngine(zerolog.Nop())
	if _, err := e.Reload(context.Background(), store); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}

	rec, err := e.Recommend(Query{Mood: "Happy", Weather: "Sunny", Day: "Weekend"})
	if err != nil {
		t.Fatalf("Recommend() error: %v", err)
	}
	if rec.MovieTitle != "X" || rec.Confidence <= 0.5 {
		t.Errorf("Recommend() = %q at %v, want X above 0.5", rec.MovieTitle, rec.Confidence)
	}

	recs, err := e.RecommendTopK(Query{Mood: "Sad", Weather: "Rainy", Day: "Weekday"}, 5)
	if err != nil {
		t.Fatalf("RecommendTopK() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2 (Once was filtered out)", len(recs))
	}
	if recs[0].MovieTitle != "Y" || recs[0].Description == nil || *recs[0].Description != "Grey, slow" {
		t.Errorf("top = %+v", recs[0])
	}
	if e.Info().Version != 1 {
		t.Errorf("Info().Version = %d, want 1", e.Info().Version)
	}
}

func mustNormalize(t *testing.T, csv string) []dataset.Record {
	t.Helper()
	res, err := dataset.NewNormalizer(zerolog.Nop()).NormalizeBytes([]byte(csv))
	if err != nil {
		t.Fatalf("NormalizeBytes() error: %v", err)
	}
	return res.Records
}
