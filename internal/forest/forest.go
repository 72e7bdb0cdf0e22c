// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package forest

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand"
)

// Sentinel errors for the forest package.
var (
	// ErrNoSamples is returned when fitting on an empty training set.
	ErrNoSamples = errors.New("no training samples")

	// ErrFeatureMismatch is returned when a feature vector has the wrong length.
	ErrFeatureMismatch = errors.New("feature count mismatch")

	// ErrLabelOutOfRange is returned when a training label is not in [0, nClasses).
	ErrLabelOutOfRange = errors.New("label out of range")

	// ErrNotFitted is returned when predicting with an empty forest.
	ErrNotFitted = errors.New("forest is not fitted")
)

// Forest is a fitted random forest classifier.
type Forest struct {
	Trees     []Tree
	NClasses  int
	NFeatures int
	Params    Params
}

//nolint:gochecknoinits // gob.Register must be called in init for interface encoding
func init() {
	gob.Register(&Forest{})
}

// Fit grows a forest over the integer feature matrix x and labels y.
// nClasses fixes the width of the probability vector; labels must lie in
// [0, nClasses). Classes with no training samples receive probability 0.
// Fit checks ctx between trees.
func Fit(ctx context.Context, x [][]int, y []int, nClasses int, params Params) (*Forest, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d feature rows but %d labels: %w", len(x), len(y), ErrFeatureMismatch)
	}
	nFeatures := len(x[0])
	if nFeatures == 0 {
		return nil, fmt.Errorf("zero features: %w", ErrFeatureMismatch)
	}
	for i, row := range x {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("row %d has %d features, want %d: %w", i, len(row), nFeatures, ErrFeatureMismatch)
		}
	}
	for i, label := range y {
		if label < 0 || label >= nClasses {
			return nil, fmt.Errorf("row %d label %d not in [0, %d): %w", i, label, nClasses, ErrLabelOutOfRange)
		}
	}

	classWeights := computeClassWeights(y, nClasses, params.ClassWeight)
	rng := rand.New(rand.NewSource(params.Seed)) //nolint:gosec // deterministic sampling, not security sensitive
	maxFeatures := params.featuresPerSplit(nFeatures)

	f := &Forest{
		Trees:     make([]Tree, 0, params.NumTrees),
		NClasses:  nClasses,
		NFeatures: nFeatures,
		Params:    params,
	}

	for t := 0; t < params.NumTrees; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		treeRng := rand.New(rand.NewSource(rng.Int63())) //nolint:gosec // deterministic sampling
		samples, weights := drawSamples(treeRng, y, classWeights, params.Bootstrap)

		b := &treeBuilder{
			params:      &f.Params,
			x:           x,
			y:           y,
			weights:     weights,
			nClasses:    nClasses,
			nFeatures:   nFeatures,
			maxFeatures: maxFeatures,
			rng:         treeRng,
		}
		f.Trees = append(f.Trees, b.build(samples))
	}

	return f, nil
}

// computeClassWeights returns one weight per class code.
func computeClassWeights(y []int, nClasses int, mode ClassWeight) []float64 {
	weights := make([]float64, nClasses)
	if mode != ClassWeightBalanced {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	counts := make([]int, nClasses)
	for _, label := range y {
		counts[label]++
	}
	present := 0
	for _, c := range counts {
		if c > 0 {
			present++
		}
	}
	for i, c := range counts {
		if c > 0 {
			weights[i] = float64(len(y)) / (float64(present) * float64(c))
		}
	}
	return weights
}

// drawSamples returns the distinct sample indices used by one tree and a
// weight per training row (class weight times bootstrap multiplicity).
func drawSamples(rng *rand.Rand, y []int, classWeights []float64, bootstrap bool) ([]int, []float64) {
	n := len(y)
	weights := make([]float64, n)

	if !bootstrap {
		samples := make([]int, n)
		for i := range samples {
			samples[i] = i
			weights[i] = classWeights[y[i]]
		}
		return samples, weights
	}

	counts := make([]int, n)
	for i := 0; i < n; i++ {
		counts[rng.Intn(n)]++
	}
	samples := make([]int, 0, n)
	for i, c := range counts {
		if c == 0 {
			continue
		}
		samples = append(samples, i)
		weights[i] = classWeights[y[i]] * float64(c)
	}
	return samples, weights
}

// NumClasses returns the width of the probability vector.
func (f *Forest) NumClasses() int {
	return f.NClasses
}

// NumFeatures returns the expected feature vector length.
func (f *Forest) NumFeatures() int {
	return f.NFeatures
}

// PredictProba returns the mean leaf distribution over all trees. The
// result has NumClasses entries summing to 1.
func (f *Forest) PredictProba(x []int) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotFitted
	}
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("got %d features, want %d: %w", len(x), f.NFeatures, ErrFeatureMismatch)
	}

	proba := make([]float64, f.NClasses)
	for i := range f.Trees {
		leaf := f.Trees[i].leaf(x)
		for c, p := range leaf.Value {
			proba[c] += p
		}
	}
	n := float64(len(f.Trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the most probable class; ties go to the lowest code.
func (f *Forest) Predict(x []int) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return Argmax(proba), nil
}

// PredictBatch predicts every row of x.
func (f *Forest) PredictBatch(x [][]int) ([]int, error) {
	out := make([]int, len(x))
	for i, row := range x {
		p, err := f.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

// Argmax returns the index of the largest value, preferring the lowest
// index among equal values. It returns -1 for an empty slice.
func Argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
