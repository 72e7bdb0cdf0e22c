// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/dataset"
)

func rec(title, mood, weather, day string) dataset.Record {
	return dataset.Record{Title: title, Mood: mood, Weather: weather, Day: day}
}

func repeat(r dataset.Record, n int) []dataset.Record {
	out := make([]dataset.Record, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// sampleCSV is a small dataset: X, Y and Z are each tied to one context,
// "Lonely" occurs once, one row is malformed and one lacks a mood.
func sampleCSV() string {
	var b strings.Builder
	b.WriteString("movie_title,mood,weather,day,year,genre,description\n")
	for i := 0; i < 6; i++ {
		b.WriteString("X,Happy,Sunny,Weekend,2001,Comedy,Light, breezy, fun\n")
		b.WriteString("Y,Sad,Rainy,Weekday,1999,Drama,Heavy\n")
	}
	for i := 0; i < 4; i++ {
		b.WriteString("Z,Excited,Cloudy,Weekend,,Action,\n")
	}
	b.WriteString("Lonely,Happy,Sunny,Weekday,2010,Indie,Once\n")
	b.WriteString("Broken,Happy,Sunny\n")
	b.WriteString("NoMood,,Sunny,Weekend,2010,Indie,Missing\n")
	return b.String()
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Forest.NumTrees = 20
	return cfg
}

func TestBuildCorpus(t *testing.T) {
	t.Parallel()

	records := []dataset.Record{
		{Title: "B", Mood: "Sad", Weather: "Rainy", Day: "Weekday", Year: "1990", Genre: "Drama"},
		rec("A", "Happy", "Sunny", "Weekend"),
		{Title: "B", Mood: "Happy", Weather: "Rainy", Day: "Weekend", Year: "2000", Genre: "Other"},
	}

	c, err := BuildCorpus(records)
	if err != nil {
		t.Fatalf("BuildCorpus() error: %v", err)
	}
	if want := [][]int{{1, 0, 0}, {0, 1, 1}, {0, 0, 1}}; !reflect.DeepEqual(c.X, want) {
		t.Errorf("X = %v, want %v", c.X, want)
	}
	if want := []int{1, 0, 1}; !reflect.DeepEqual(c.Y, want) {
		t.Errorf("Y = %v, want %v", c.Y, want)
	}
	if want := []int{1, 2}; !reflect.DeepEqual(c.Support(), want) {
		t.Errorf("Support() = %v, want %v", c.Support(), want)
	}

	movies := c.Movies()
	if len(movies) != 2 || movies[0].Title != "B" || movies[1].Title != "A" {
		t.Fatalf("Movies() = %+v", movies)
	}
	if movies[0].Year == nil || *movies[0].Year != 1990 {
		t.Errorf("first occurrence should win, got year %v", movies[0].Year)
	}
	if movies[1].Year != nil || movies[1].Genre != nil {
		t.Errorf("missing metadata should be nil, got %+v", movies[1])
	}

	if _, err := BuildCorpus(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("BuildCorpus(nil) error = %v, want ErrEmptyCorpus", err)
	}
}

func TestFilterRareClasses(t *testing.T) {
	t.Parallel()

	var records []dataset.Record
	records = append(records, rec("Solo", "Bored", "Foggy", "Weekday"))
	records = append(records, repeat(rec("Pair", "Happy", "Sunny", "Weekend"), 2)...)
	records = append(records, rec("Alone", "Happy", "Rainy", "Weekday"))
	records = append(records, repeat(rec("Trio", "Sad", "Rainy", "Weekday"), 3)...)

	c, err := BuildCorpus(records)
	if err != nil {
		t.Fatal(err)
	}

	filtered, report, err := FilterRareClasses(c)
	if err != nil {
		t.Fatalf("FilterRareClasses() error: %v", err)
	}
	if want := []string{"Solo", "Alone"}; !reflect.DeepEqual(report.DroppedLabels, want) {
		t.Errorf("DroppedLabels = %v, want %v", report.DroppedLabels, want)
	}
	if report.DroppedExamples != 2 || report.Before != 7 || report.After != 5 {
		t.Errorf("report = %+v", report)
	}
	if report.ClassesBefore != 4 || report.ClassesAfter != 2 {
		t.Errorf("class counts = %d -> %d, want 4 -> 2", report.ClassesBefore, report.ClassesAfter)
	}
	if !errors.Is(report.Err(), ErrInsufficientClassSupport) {
		t.Errorf("report.Err() = %v", report.Err())
	}

	// Codecs are refitted: "Bored" and "Foggy" are gone and codes are dense.
	if want := []string{"Happy", "Sad"}; !reflect.DeepEqual(filtered.Mood.Labels(), want) {
		t.Errorf("Mood labels = %v, want %v", filtered.Mood.Labels(), want)
	}
	if want := []string{"Rainy", "Sunny"}; !reflect.DeepEqual(filtered.Weather.Labels(), want) {
		t.Errorf("Weather labels = %v, want %v", filtered.Weather.Labels(), want)
	}
	for i, s := range filtered.Support() {
		if s < MinClassSupport {
			t.Errorf("class %d has support %d", i, s)
		}
	}
}

func TestFilterRareClasses_NothingToDrop(t *testing.T) {
	t.Parallel()

	c, err := BuildCorpus(repeat(rec("A", "Happy", "Sunny", "Weekend"), 2))
	if err != nil {
		t.Fatal(err)
	}
	filtered, report, err := FilterRareClasses(c)
	if err != nil {
		t.Fatal(err)
	}
	if filtered != c {
		t.Error("corpus should be returned unchanged")
	}
	if report.Err() != nil || report.DroppedExamples != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestFilterRareClasses_AllSingletons(t *testing.T) {
	t.Parallel()

	c, err := BuildCorpus([]dataset.Record{
		rec("A", "Happy", "Sunny", "Weekend"),
		rec("B", "Sad", "Rainy", "Weekday"),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, report, err := FilterRareClasses(c)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("error = %v, want ErrEmptyCorpus", err)
	}
	if !errors.Is(err, ErrInsufficientClassSupport) {
		t.Errorf("error = %v, want it to wrap ErrInsufficientClassSupport", err)
	}
	if report.After != 0 || len(report.DroppedLabels) != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestTrain_EndToEnd(t *testing.T) {
	t.Parallel()

	path := writeDataset(t, sampleCSV())
	cleaned := filepath.Join(t.TempDir(), "cleaned.csv")
	cfg := fastConfig()
	cfg.CleanedPath = cleaned

	res, err := NewTrainer(cfg, zerolog.Nop()).Train(context.Background(), path)
	if err != nil {
		t.Fatalf("Train() error: %v", err)
	}

	s := res.Summary
	if s.RawRows != 19 || s.MalformedRows != 1 || s.MissingRequired != 1 {
		t.Errorf("rows raw=%d malformed=%d missing=%d, want 19/1/1", s.RawRows, s.MalformedRows, s.MissingRequired)
	}
	if s.UniqueMovies != 4 || s.Classes != 3 {
		t.Errorf("movies %d -> %d, want 4 -> 3", s.UniqueMovies, s.Classes)
	}
	if !reflect.DeepEqual(s.Filter.DroppedLabels, []string{"Lonely"}) {
		t.Errorf("DroppedLabels = %v", s.Filter.DroppedLabels)
	}
	if s.Strategy != StrategyStratified {
		t.Errorf("Strategy = %s (%s), want stratified", s.Strategy, s.SplitReason)
	}
	if s.TrainSize+s.TestSize != 16 || s.TestSize != 4 {
		t.Errorf("split %d/%d, want 12/4", s.TrainSize, s.TestSize)
	}
	if s.Accuracy() != 1 {
		t.Errorf("Accuracy() = %v, want 1", s.Accuracy())
	}

	a := res.Artifact
	x, err := a.Encode("Happy", "Sunny", "Weekend")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	code, err := a.Classifier.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	if title, _ := a.Movie.Decode(code); title != "X" {
		t.Errorf("prediction = %q, want X", title)
	}
	proba, err := a.Classifier.(artifact.ProbabilityEstimator).PredictProba(x)
	if err != nil {
		t.Fatal(err)
	}
	if proba[code] <= 0.5 {
		t.Errorf("confidence = %v, want > 0.5", proba[code])
	}

	if a.Movie.Contains("Lonely") {
		t.Error("single-occurrence movie should not be recommendable")
	}
	x1, ok := a.Lookup("X")
	if !ok || x1.Description == nil || *x1.Description != "Light, breezy, fun" {
		t.Errorf("metadata for X = %+v", x1)
	}

	data, err := os.ReadFile(cleaned)
	if err != nil {
		t.Fatalf("cleaned dataset not written: %v", err)
	}
	if !strings.Contains(string(data), `X,Happy,Sunny,Weekend,2001,Comedy,"Light, breezy, fun"`) {
		t.Errorf("cleaned dataset missing repaired row:\n%s", data)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	t.Parallel()

	path := writeDataset(t, sampleCSV())
	cfg := fastConfig()

	first, err := NewTrainer(cfg, zerolog.Nop()).Train(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewTrainer(cfg, zerolog.Nop()).Train(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if first.Summary.Accuracy() != second.Summary.Accuracy() {
		t.Errorf("accuracy differs: %v vs %v", first.Summary.Accuracy(), second.Summary.Accuracy())
	}
	for m := 0; m < first.Artifact.Mood.Len(); m++ {
		for w := 0; w < first.Artifact.Weather.Len(); w++ {
			for d := 0; d < first.Artifact.Day.Len(); d++ {
				x := []int{m, w, d}
				p1, _ := first.Artifact.Classifier.Predict(x)  //nolint:errcheck // shapes are valid
				p2, _ := second.Artifact.Classifier.Predict(x) //nolint:errcheck // shapes are valid
				if p1 != p2 {
					t.Errorf("Predict(%v) = %d vs %d", x, p1, p2)
				}
			}
		}
	}
}

func TestTrain_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewTrainer(fastConfig(), zerolog.Nop()).Train(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		if err == nil {
			t.Error("expected error for missing dataset")
		}
	})

	t.Run("all singletons", func(t *testing.T) {
		t.Parallel()
		path := writeDataset(t, "movie_title,mood,weather,day,year,genre,description\nA,Happy,Sunny,Weekend,,,\nB,Sad,Rainy,Weekday,,,\n")
		_, err := NewTrainer(fastConfig(), zerolog.Nop()).Train(ctx, path)
		if !errors.Is(err, ErrEmptyCorpus) {
			t.Errorf("error = %v, want ErrEmptyCorpus", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := fastConfig()
		cfg.TestSize = 1.5
		_, err := NewTrainer(cfg, zerolog.Nop()).TrainRecords(ctx, nil)
		if err == nil {
			t.Error("expected config error")
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		records := append(repeat(rec("A", "Happy", "Sunny", "Weekend"), 3), repeat(rec("B", "Sad", "Rainy", "Weekday"), 3)...)
		_, err := NewTrainer(fastConfig(), zerolog.Nop()).TrainRecords(canceled, records)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
