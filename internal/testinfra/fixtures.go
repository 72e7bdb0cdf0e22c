// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package testinfra

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/training"
)

// Titles in SampleCSV.
const (
	HappyMovie   = "Paddington"
	SadMovie     = "Blue Valentine"
	ExcitedMovie = "Mad Max"

	// RareMovie occurs once and is removed by the rare-class filter.
	RareMovie = "Lonely Planet"
)

// SampleCSV returns a dataset with three learnable movies, one rare
// movie, one malformed row and one row without a mood.
func SampleCSV() string {
	var b strings.Builder
	b.WriteString("movie_title,mood,weather,day,year,genre,description\n")
	for i := 0; i < 6; i++ {
		b.WriteString(HappyMovie + ",Happy,Sunny,Weekend,2014,Family,A bear, a family, and marmalade\n")
		b.WriteString(SadMovie + ",Sad,Rainy,Weekday,2010,Drama,\"A marriage, over time\"\n")
	}
	for i := 0; i < 4; i++ {
		b.WriteString(ExcitedMovie + ",Excited,Cloudy,Weekend,2015,Action,\n")
	}
	b.WriteString(RareMovie + ",Happy,Sunny,Weekday,2010,Indie,Once\n")
	b.WriteString("Broken,Happy,Sunny\n")
	b.WriteString("No Mood,,Sunny,Weekend,2010,Indie,Missing\n")
	return b.String()
}

// WriteDataset writes content to a CSV file in a test temp directory and
// returns its path.
func WriteDataset(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// FastTrainingConfig is the production configuration with fewer trees.
func FastTrainingConfig() training.Config {
	cfg := training.DefaultConfig()
	cfg.Forest.NumTrees = 15
	return cfg
}

// TrainArtifact trains on SampleCSV and returns the artifact.
func TrainArtifact(t testing.TB) *artifact.Artifact {
	t.Helper()
	path := WriteDataset(t, SampleCSV())
	res, err := training.NewTrainer(FastTrainingConfig(), zerolog.Nop()).Train(context.Background(), path)
	if err != nil {
		t.Fatalf("train sample dataset: %v", err)
	}
	return res.Artifact
}
