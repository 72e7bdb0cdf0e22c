// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package forest implements a bagged ensemble of CART decision trees for
// multi-class classification over small integer-coded feature vectors.
//
// # Algorithm
//
// Each tree is grown on a bootstrap sample of the training set. At every
// node, features are visited in a random order until MaxFeatures
// non-constant features have been evaluated; for each, every threshold
// halfway between consecutive distinct values is scored by weighted Gini
// impurity and the lowest child impurity wins. Nodes stop splitting at
// MaxDepth, when pure, or when too few samples remain.
//
// Leaves store their normalized weighted class distribution, so
// PredictProba is the mean of the leaf distributions reached in every tree
// and Predict is its arg-max (lowest class code on ties).
//
// # Class weighting
//
// With ClassWeightBalanced each class c receives weight n / (k * n_c),
// where k is the number of classes present in the training labels. The
// weight is multiplied by the bootstrap multiplicity of each sample.
//
// # Determinism
//
// A master generator seeded with Params.Seed derives one seed per tree, so
// two fits over the same data and parameters produce identical forests.
//
// # Persistence
//
// Forest, Tree and Node have only exported fields and *Forest is
// registered with encoding/gob, so a Forest can be stored behind an
// interface value.
package forest
