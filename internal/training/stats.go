// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/dataset"
)

// droppedSampleSize is how many dropped labels are logged by name.
const droppedSampleSize = 5

// uniqueInOrder returns the distinct values of column in order of first
// appearance, skipping empty strings.
func uniqueInOrder(records []dataset.Record, column func(*dataset.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		v := column(&records[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// missingCounts counts empty values per column.
func missingCounts(records []dataset.Record) map[string]int {
	counts := make(map[string]int, len(dataset.Header))
	for _, col := range dataset.Header {
		counts[col] = 0
	}
	for i := range records {
		for j, v := range records[i].Fields() {
			if v == "" {
				counts[dataset.Header[j]]++
			}
		}
	}
	return counts
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func logDatasetStats(logger zerolog.Logger, records []dataset.Record) {
	titles := uniqueInOrder(records, func(r *dataset.Record) string { return r.Title })
	logger.Info().
		Int("rows", len(records)).
		Int("columns", len(dataset.Header)).
		Int("unique_movies", len(titles)).
		Strs("moods", uniqueInOrder(records, func(r *dataset.Record) string { return r.Mood })).
		Strs("weather", uniqueInOrder(records, func(r *dataset.Record) string { return r.Weather })).
		Strs("days", uniqueInOrder(records, func(r *dataset.Record) string { return r.Day })).
		Msg("dataset loaded")

	missing := missingCounts(records)
	ev := logger.Info()
	for _, col := range dataset.Header {
		ev = ev.Int(col, missing[col])
	}
	ev.Msg("missing values per column")
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func logFilterReport(logger zerolog.Logger, r *FilterReport) {
	if len(r.DroppedLabels) == 0 {
		logger.Info().Int("movies", r.ClassesBefore).Msg("every movie has at least two examples")
		return
	}

	sample := r.DroppedLabels
	if len(sample) > droppedSampleSize {
		sample = sample[:droppedSampleSize]
	}
	ev := logger.Info().
		Int("dropped_movies", len(r.DroppedLabels)).
		Int("dropped_examples", r.DroppedExamples).
		Strs("sample", sample)
	if more := len(r.DroppedLabels) - len(sample); more > 0 {
		ev = ev.Int("and_more", more)
	}
	ev.Msg("removed movies with a single occurrence")

	logger.Info().
		Int("rows", r.After).
		Int("unique_movies", r.ClassesAfter).
		Msg("dataset after removing single-occurrence movies")
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func logEvaluation(logger zerolog.Logger, ev *Evaluation) {
	logger.Info().
		Float64("accuracy", ev.Accuracy).
		Int("samples", ev.Samples).
		Msg("model accuracy")

	if ev.ReportErr != nil {
		logger.Warn().
			Err(ev.ReportErr).
			Int("test_classes", ev.Summary.TestClasses).
			Int("predicted_classes", ev.Summary.PredictedClasses).
			Msg("could not generate full classification report")
		return
	}

	for _, row := range ev.Classes {
		logger.Debug().
			Str("movie", row.Label).
			Float64("precision", row.Precision).
			Float64("recall", row.Recall).
			Float64("f1", row.F1).
			Int("support", row.Support).
			Msg("class report")
	}
	logger.Info().
		Float64("macro_f1", ev.MacroAvg.F1).
		Float64("weighted_f1", ev.WeightedAvg.F1).
		Msg("classification report")
}
