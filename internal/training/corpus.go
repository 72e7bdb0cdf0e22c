// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"errors"
	"fmt"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/codec"
	"github.com/tomtom215/moodflix/internal/dataset"
)

var (
	// ErrEmptyCorpus is returned when no trainable examples remain. It is
	// fatal for a training run.
	ErrEmptyCorpus = errors.New("training corpus is empty")

	// ErrInsufficientClassSupport marks movie labels with too few examples
	// to appear on both sides of a stratified split.
	ErrInsufficientClassSupport = errors.New("insufficient class support")
)

// Corpus is an encoded training set. Row i of X and Y comes from Records[i].
type Corpus struct {
	Records []dataset.Record

	// X holds one (mood, weather, day) code triple per record.
	X [][]int

	// Y holds the movie code per record.
	Y []int

	Mood    *codec.Codec
	Weather *codec.Codec
	Day     *codec.Codec
	Movie   *codec.Codec
}

// BuildCorpus fits all four codecs on records and encodes them. Records
// must be complete (see dataset.DropIncomplete).
func BuildCorpus(records []dataset.Record) (*Corpus, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	n := len(records)
	moods := make([]string, n)
	weather := make([]string, n)
	days := make([]string, n)
	titles := make([]string, n)
	for i := range records {
		moods[i] = records[i].Mood
		weather[i] = records[i].Weather
		days[i] = records[i].Day
		titles[i] = records[i].Title
	}

	c := &Corpus{
		Records: records,
		Mood:    codec.Fit(artifact.FeatureMood, moods),
		Weather: codec.Fit(artifact.FeatureWeather, weather),
		Day:     codec.Fit(artifact.FeatureDay, days),
		Movie:   codec.Fit(artifact.LabelMovie, titles),
	}

	columns := make([][]int, artifact.NumFeatures)
	var err error
	for f, pair := range []struct {
		c      *codec.Codec
		values []string
	}{{c.Mood, moods}, {c.Weather, weather}, {c.Day, days}} {
		if columns[f], err = pair.c.EncodeAll(pair.values); err != nil {
			return nil, fmt.Errorf("encode %s: %w", pair.c.Feature(), err)
		}
	}
	if c.Y, err = c.Movie.EncodeAll(titles); err != nil {
		return nil, fmt.Errorf("encode movie: %w", err)
	}

	c.X = make([][]int, n)
	for i := range c.X {
		c.X[i] = []int{columns[0][i], columns[1][i], columns[2][i]}
	}
	return c, nil
}

// Len returns the number of examples.
func (c *Corpus) Len() int {
	return len(c.Y)
}

// Support returns the number of examples per movie code.
func (c *Corpus) Support() []int {
	support := make([]int, c.Movie.Len())
	for _, label := range c.Y {
		support[label]++
	}
	return support
}

// Movies returns the metadata of every movie in the corpus. The first
// record of each title wins.
func (c *Corpus) Movies() []artifact.Movie {
	seen := make(map[string]struct{}, c.Movie.Len())
	movies := make([]artifact.Movie, 0, c.Movie.Len())
	for i := range c.Records {
		r := &c.Records[i]
		if _, ok := seen[r.Title]; ok {
			continue
		}
		seen[r.Title] = struct{}{}
		movies = append(movies, artifact.NewMovie(r.Title, r.Year, r.Genre, r.Description))
	}
	return movies
}

// subset returns the feature rows and labels at the given indices.
func (c *Corpus) subset(indices []int) ([][]int, []int) {
	x := make([][]int, len(indices))
	y := make([]int, len(indices))
	for i, idx := range indices {
		x[i] = c.X[idx]
		y[i] = c.Y[idx]
	}
	return x, y
}
