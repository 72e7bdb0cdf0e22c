// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/cache"
	"github.com/tomtom215/moodflix/internal/metrics"
)

// PredictionCacheSize bounds the memoized predictions per artifact. The
// context space is every mood x weather x day combination, so a typical
// dataset fits entirely.
const PredictionCacheSize = 1024

type features [3]int

// PredictionCacheStats summarizes the prediction cache of the live artifact.
type PredictionCacheStats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

func (s *PredictionCacheStats) add(c cache.Stats) {
	s.Entries += c.Size
	s.Hits += c.Hits
	s.Misses += c.Misses
	s.Evictions += c.Evictions
}

type cacheStatser interface {
	cacheStats() PredictionCacheStats
}

func featureKey(x []int) (features, bool) {
	var k features
	if len(x) != len(k) {
		return k, false
	}
	copy(k[:], x)
	return k, true
}

// cachedClassifier memoizes one artifact's predictions. A new one is built
// for every published artifact, so entries never go stale.
type cachedClassifier struct {
	inner artifact.Classifier
	codes *cache.LRU[features, int]
}

func (c *cachedClassifier) Predict(x []int) (int, error) {
	key, ok := featureKey(x)
	if !ok {
		return c.inner.Predict(x)
	}
	if code, hit := c.codes.Get(key); hit {
		metrics.RecordPredictionCache(true)
		return code, nil
	}
	metrics.RecordPredictionCache(false)

	code, err := c.inner.Predict(x)
	if err != nil {
		return 0, err
	}
	c.codes.Add(key, code)
	return code, nil
}

func (c *cachedClassifier) cacheStats() PredictionCacheStats {
	var s PredictionCacheStats
	s.add(c.codes.Stats())
	return s
}

func (c *cachedClassifier) NumClasses() int  { return c.inner.NumClasses() }
func (c *cachedClassifier) NumFeatures() int { return c.inner.NumFeatures() }

// cachedEstimator adds probability memoization for classifiers that
// implement artifact.ProbabilityEstimator.
type cachedEstimator struct {
	cachedClassifier
	estimator artifact.ProbabilityEstimator
	probas    *cache.LRU[features, []float64]
}

// PredictProba returns a copy of the cached vector.
func (c *cachedEstimator) PredictProba(x []int) ([]float64, error) {
	key, ok := featureKey(x)
	if !ok {
		return c.estimator.PredictProba(x)
	}
	if proba, hit := c.probas.Get(key); hit {
		metrics.RecordPredictionCache(true)
		return append([]float64(nil), proba...), nil
	}
	metrics.RecordPredictionCache(false)

	proba, err := c.estimator.PredictProba(x)
	if err != nil {
		return nil, err
	}
	c.probas.Add(key, append([]float64(nil), proba...))
	return proba, nil
}

func (c *cachedEstimator) cacheStats() PredictionCacheStats {
	s := c.cachedClassifier.cacheStats()
	s.add(c.probas.Stats())
	return s
}

// withPredictionCache returns a shallow copy of a whose classifier
// memoizes predictions. a itself is not modified.
func withPredictionCache(a *artifact.Artifact) *artifact.Artifact {
	if a == nil || a.Classifier == nil {
		return a
	}
	base := cachedClassifier{
		inner: a.Classifier,
		codes: cache.NewLRU[features, int](PredictionCacheSize),
	}

	view := *a
	if pe, ok := a.Classifier.(artifact.ProbabilityEstimator); ok {
		view.Classifier = &cachedEstimator{
			cachedClassifier: base,
			estimator:        pe,
			probas:           cache.NewLRU[features, []float64](PredictionCacheSize),
		}
	} else {
		view.Classifier = &base
	}
	return &view
}
