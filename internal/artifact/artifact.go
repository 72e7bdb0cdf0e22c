// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/moodflix/internal/codec"
)

// Feature names, in the column order the classifier expects.
const (
	FeatureMood    = "mood"
	FeatureWeather = "weather"
	FeatureDay     = "day"
	LabelMovie     = "movie"
)

// NumFeatures is the length of every feature vector.
const NumFeatures = 3

// Classifier predicts a movie code from an encoded (mood, weather, day) vector.
type Classifier interface {
	Predict(x []int) (int, error)
	NumClasses() int
	NumFeatures() int
}

// ProbabilityEstimator is implemented by classifiers that can return the
// full class probability vector, NumClasses entries long.
type ProbabilityEstimator interface {
	PredictProba(x []int) ([]float64, error)
}

// Movie is the metadata kept for one title. Absent values are nil.
type Movie struct {
	Title       string  `json:"movie_title"`
	Year        *int    `json:"year"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

// NewMovie builds a Movie from raw dataset strings. The year must parse as
// an integer, ignoring surrounding spaces, to be kept; empty genre and description become nil.
func NewMovie(title, year, genre, description string) Movie {
	m := Movie{Title: title}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		m.Year = &y
	}
	if genre != "" {
		m.Genre = &genre
	}
	if description != "" {
		m.Description = &description
	}
	return m
}

// Artifact is an immutable trained model bundle.
type Artifact struct {
	Classifier Classifier
	Mood       *codec.Codec
	Weather    *codec.Codec
	Day        *codec.Codec
	Movie      *codec.Codec
	Movies     []Movie

	// Version is the store version the artifact was published or loaded
	// as; zero for an artifact that has not been saved.
	Version int

	// TrainedAt is when training finished.
	TrainedAt time.Time

	byTitle map[string]int
}

// New assembles and validates an artifact. It fails with
// ErrArtifactInconsistent when the pieces do not belong together.
func New(clf Classifier, mood, weather, day, movie *codec.Codec, movies []Movie, trainedAt time.Time) (*Artifact, error) {
	a := &Artifact{
		Classifier: clf,
		Mood:       mood,
		Weather:    weather,
		Day:        day,
		Movie:      movie,
		Movies:     movies,
		TrainedAt:  trainedAt.UTC(),
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Artifact) validate() error {
	if a.Classifier == nil {
		return inconsistent("classifier", "missing", nil)
	}

	codecs := []struct {
		name string
		c    *codec.Codec
	}{
		{FeatureMood, a.Mood},
		{FeatureWeather, a.Weather},
		{FeatureDay, a.Day},
		{LabelMovie, a.Movie},
	}
	for _, entry := range codecs {
		if entry.c == nil {
			return inconsistent(entry.name+" codec", "missing", nil)
		}
		if entry.c.Len() == 0 {
			return inconsistent(entry.name+" codec", "has no labels", nil)
		}
		if entry.c.Feature() != entry.name {
			return inconsistent(entry.name+" codec", fmt.Sprintf("encodes feature %q", entry.c.Feature()), nil)
		}
	}

	if got := a.Classifier.NumFeatures(); got != NumFeatures {
		return inconsistent("classifier", fmt.Sprintf("expects %d features, want %d", got, NumFeatures), nil)
	}
	if got, want := a.Classifier.NumClasses(), a.Movie.Len(); got != want {
		return inconsistent("classifier", fmt.Sprintf("has %d classes but movie codec has %d labels", got, want), nil)
	}

	a.byTitle = make(map[string]int, len(a.Movies))
	for i, m := range a.Movies {
		if _, dup := a.byTitle[m.Title]; dup {
			return inconsistent("movie metadata", fmt.Sprintf("duplicate title %q", m.Title), nil)
		}
		if !a.Movie.Contains(m.Title) {
			return inconsistent("movie metadata", fmt.Sprintf("title %q is not a known movie label", m.Title), nil)
		}
		a.byTitle[m.Title] = i
	}
	return nil
}

// Lookup returns the metadata for an exact title match.
func (a *Artifact) Lookup(title string) (Movie, bool) {
	i, ok := a.byTitle[title]
	if !ok {
		return Movie{}, false
	}
	return a.Movies[i], true
}

// Encode validates and encodes a context triple. The first unknown value,
// checked in mood, weather, day order, is reported as a
// *codec.UnknownCategoryError.
func (a *Artifact) Encode(mood, weather, day string) ([]int, error) {
	m, err := a.Mood.Encode(mood)
	if err != nil {
		return nil, err
	}
	w, err := a.Weather.Encode(weather)
	if err != nil {
		return nil, err
	}
	d, err := a.Day.Encode(day)
	if err != nil {
		return nil, err
	}
	return []int{m, w, d}, nil
}

// EncoderMappings is the code -> label table for every codec, keyed the way
// clients expect.
type EncoderMappings struct {
	Mood    map[string]string `json:"mood"`
	Weather map[string]string `json:"weather"`
	Day     map[string]string `json:"day"`
	Movies  map[string]string `json:"movies"`
}

// Mappings returns the encoder mappings of a.
func (a *Artifact) Mappings() EncoderMappings {
	return EncoderMappings{
		Mood:    a.Mood.Mapping(),
		Weather: a.Weather.Mapping(),
		Day:     a.Day.Mapping(),
		Movies:  a.Movie.Mapping(),
	}
}
