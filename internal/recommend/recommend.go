// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/dataset"
)

// ModelType is the human-readable classifier name reported by Info.
const ModelType = "Random Forest Classifier"

// Recommend returns the single most likely movie for q.
func Recommend(a *artifact.Artifact, q Query) (*Recommendation, error) {
	if a == nil {
		return nil, ErrNoArtifact
	}

	x, err := a.Encode(q.Mood, q.Weather, q.Day)
	if err != nil {
		return nil, err
	}

	code, err := a.Classifier.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	confidence := DefaultConfidence
	if pe, ok := a.Classifier.(artifact.ProbabilityEstimator); ok {
		if proba, err := pe.PredictProba(x); err == nil && code >= 0 && code < len(proba) {
			confidence = proba[code]
		}
	}

	rec, err := build(a, code, confidence)
	if err != nil {
		return nil, err
	}
	input := q
	rec.Input = &input
	return rec, nil
}

// RecommendTopK returns up to k movies ranked by probability. Ties keep
// ascending class code order. Fewer than k entries are returned when the
// model knows fewer movies.
func RecommendTopK(a *artifact.Artifact, q Query, k int) ([]Recommendation, error) {
	if k < MinK || k > MaxK {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidK, k, MinK, MaxK)
	}
	if a == nil {
		return nil, ErrNoArtifact
	}

	x, err := a.Encode(q.Mood, q.Weather, q.Day)
	if err != nil {
		return nil, err
	}

	pe, ok := a.Classifier.(artifact.ProbabilityEstimator)
	if !ok {
		return nil, ErrProbabilityUnavailable
	}
	proba, err := pe.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProbabilityUnavailable, err)
	}

	order := make([]int, len(proba))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return proba[order[i]] > proba[order[j]]
	})
	if k > len(order) {
		k = len(order)
	}

	recs := make([]Recommendation, 0, k)
	for rank, code := range order[:k] {
		rec, err := build(a, code, proba[code])
		if err != nil {
			return nil, err
		}
		rec.Rank = rank + 1
		recs = append(recs, *rec)
	}
	return recs, nil
}

// AvailableOptions returns the values each context field accepts.
func AvailableOptions(a *artifact.Artifact) (*Options, error) {
	if a == nil {
		return nil, ErrNoArtifact
	}
	return &Options{
		Moods:   a.Mood.Labels(),
		Weather: a.Weather.Labels(),
		Days:    a.Day.Labels(),
	}, nil
}

// Info describes a. A nil artifact yields the not-loaded status.
func Info(a *artifact.Artifact) *ModelInfo {
	info := &ModelInfo{
		ModelType: ModelType,
		Features:  []string{artifact.FeatureMood, artifact.FeatureWeather, artifact.FeatureDay},
		Target:    dataset.ColumnTitle,
		Status:    StatusNotLoaded,
	}
	if a == nil {
		return info
	}

	opts, _ := AvailableOptions(a) //nolint:errcheck // a is non-nil
	trainedAt := a.TrainedAt
	info.AvailableOptions = opts
	info.TotalMovies = a.Movie.Len()
	info.Status = StatusLoaded
	info.Version = a.Version
	info.TrainedAt = &trainedAt
	return info
}

// build decodes code and attaches the movie's metadata.
func build(a *artifact.Artifact, code int, confidence float64) (*Recommendation, error) {
	title, err := a.Movie.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}

	rec := &Recommendation{MovieTitle: title, Confidence: confidence}
	if m, ok := a.Lookup(title); ok {
		rec.Year = m.Year
		rec.Genre = m.Genre
		rec.Description = m.Description
	}
	return rec, nil
}
