// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"errors"
	"time"
)

var (
	// ErrNoArtifact is returned when no model artifact is loaded.
	ErrNoArtifact = errors.New("model not loaded")

	// ErrProbabilityUnavailable is returned by ranked recommendations when
	// the classifier cannot produce class probabilities.
	ErrProbabilityUnavailable = errors.New("class probabilities unavailable")

	// ErrInvalidK is returned when the requested count is outside [MinK, MaxK].
	ErrInvalidK = errors.New("number of recommendations out of range")
)

// Bounds for ranked recommendations.
const (
	MinK     = 1
	MaxK     = 10
	DefaultK = 3
)

// DefaultConfidence is reported when the classifier has no probabilities.
const DefaultConfidence = 0.5

// Query is the context a recommendation is made for.
type Query struct {
	Mood    string `json:"mood"`
	Weather string `json:"weather"`
	Day     string `json:"day"`
}

// Recommendation is one recommended movie. Rank is zero for a single
// recommendation and 1-based in a ranked list; Input is only set for a
// single recommendation.
type Recommendation struct {
	MovieTitle  string  `json:"movie_title"`
	Confidence  float64 `json:"confidence"`
	Rank        int     `json:"rank,omitempty"`
	Year        *int    `json:"year"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
	Input       *Query  `json:"input_parameters,omitempty"`
}

// Options lists the accepted values of each context field in code order.
type Options struct {
	Moods   []string `json:"moods"`
	Weather []string `json:"weather"`
	Days    []string `json:"days"`
}

// Model status values.
const (
	StatusLoaded    = "loaded"
	StatusNotLoaded = "not_loaded"
)

// ModelInfo describes the loaded model.
type ModelInfo struct {
	ModelType        string     `json:"model_type"`
	Features         []string   `json:"features"`
	Target           string     `json:"target"`
	AvailableOptions *Options   `json:"available_options,omitempty"`
	TotalMovies      int        `json:"total_movies"`
	Status           string     `json:"status"`
	Version          int        `json:"version,omitempty"`
	TrainedAt        *time.Time `json:"trained_at,omitempty"`
	LoadedAt         *time.Time `json:"loaded_at,omitempty"`

	PredictionCache *PredictionCacheStats `json:"prediction_cache,omitempty"`
}
