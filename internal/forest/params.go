// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package forest

import (
	"fmt"
	"math"
)

// ClassWeight selects how samples are weighted by their class.
type ClassWeight string

const (
	// ClassWeightBalanced weights classes inversely to their frequency.
	ClassWeightBalanced ClassWeight = "balanced"

	// ClassWeightNone gives every sample weight 1.
	ClassWeightNone ClassWeight = "none"
)

// Params holds the forest hyperparameters.
type Params struct {
	// NumTrees is the number of trees in the ensemble.
	// Default: 100
	NumTrees int

	// MaxDepth bounds tree depth; the root is depth 0.
	// Default: 10
	MaxDepth int

	// MinSamplesSplit is the minimum number of distinct samples a node
	// needs before it may be split.
	// Default: 2
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum number of distinct samples per child.
	// Default: 1
	MinSamplesLeaf int

	// MaxFeatures is the number of non-constant features evaluated per
	// split. Zero means floor(sqrt(n_features)), at least 1.
	MaxFeatures int

	// Bootstrap grows each tree on a sample drawn with replacement.
	// Default: true
	Bootstrap bool

	// ClassWeight selects the class weighting scheme.
	// Default: balanced
	ClassWeight ClassWeight

	// Seed makes fitting reproducible.
	// Default: 42
	Seed int64
}

// DefaultParams returns the production hyperparameters.
func DefaultParams() Params {
	return Params{
		NumTrees:        100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
		ClassWeight:     ClassWeightBalanced,
		Seed:            42,
	}
}

// Validate checks the parameters for consistency.
func (p *Params) Validate() error {
	if p.NumTrees < 1 {
		return fmt.Errorf("num_trees must be at least 1, got %d", p.NumTrees)
	}
	if p.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", p.MaxDepth)
	}
	if p.MinSamplesSplit < 2 {
		return fmt.Errorf("min_samples_split must be at least 2, got %d", p.MinSamplesSplit)
	}
	if p.MinSamplesLeaf < 1 {
		return fmt.Errorf("min_samples_leaf must be at least 1, got %d", p.MinSamplesLeaf)
	}
	if p.MaxFeatures < 0 {
		return fmt.Errorf("max_features must not be negative, got %d", p.MaxFeatures)
	}
	switch p.ClassWeight {
	case ClassWeightBalanced, ClassWeightNone:
	default:
		return fmt.Errorf("class_weight must be %q or %q, got %q", ClassWeightBalanced, ClassWeightNone, p.ClassWeight)
	}
	return nil
}

// featuresPerSplit resolves MaxFeatures against the feature count.
func (p *Params) featuresPerSplit(nFeatures int) int {
	m := p.MaxFeatures
	if m == 0 {
		m = int(math.Sqrt(float64(nFeatures)))
	}
	if m < 1 {
		m = 1
	}
	if m > nFeatures {
		m = nFeatures
	}
	return m
}
