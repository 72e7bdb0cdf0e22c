// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/codec"
	"github.com/tomtom215/moodflix/internal/metrics"
)

// ArtifactLoader loads the artifact to serve. *artifact.Store implements it.
type ArtifactLoader interface {
	Load(ctx context.Context) (*artifact.Artifact, *artifact.Manifest, error)
}

// Engine serves recommendations from the currently loaded artifact. It is
// safe for concurrent use.
type Engine struct {
	logger zerolog.Logger

	current  atomic.Pointer[liveModel]
	loadedAt atomic.Pointer[time.Time]

	// reloadMu serializes Reload and Publish so a slow load cannot
	// replace an artifact published while it ran.
	reloadMu sync.Mutex
}

// liveModel pairs the published artifact with the view inference runs
// against, whose classifier memoizes predictions.
type liveModel struct {
	artifact *artifact.Artifact
	serving  *artifact.Artifact
}

// NewEngine creates an engine with no artifact loaded.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(logger zerolog.Logger) *Engine {
	metrics.SetModel(0, 0)
	return &Engine{
		logger: logger.With().Str("component", "recommend").Logger(),
	}
}

// Artifact returns the loaded artifact, or nil.
func (e *Engine) Artifact() *artifact.Artifact {
	if m := e.current.Load(); m != nil {
		return m.artifact
	}
	return nil
}

// serving returns the cached view of the loaded artifact, or nil.
func (e *Engine) serving() *artifact.Artifact {
	if m := e.current.Load(); m != nil {
		return m.serving
	}
	return nil
}

// Loaded reports whether an artifact is being served.
func (e *Engine) Loaded() bool {
	return e.current.Load() != nil
}

// Swap publishes a as the live artifact and returns the previous one.
func (e *Engine) Swap(a *artifact.Artifact) *artifact.Artifact {
	var next *liveModel
	if a != nil {
		next = &liveModel{artifact: a, serving: withPredictionCache(a)}
	}
	var prev *artifact.Artifact
	if old := e.current.Swap(next); old != nil {
		prev = old.artifact
	}
	if a == nil {
		e.loadedAt.Store(nil)
		metrics.SetModel(0, 0)
		return prev
	}

	now := time.Now().UTC()
	e.loadedAt.Store(&now)
	metrics.SetModel(a.Version, a.Movie.Len())

	ev := e.logger.Info().
		Int("version", a.Version).
		Int("movies", a.Movie.Len()).
		Time("trained_at", a.TrainedAt)
	if prev != nil {
		ev = ev.Int("previous_version", prev.Version)
	}
	ev.Msg("model artifact published")
	return prev
}

// Publish swaps in a freshly saved artifact once any in-flight Reload has
// finished. It reports false and keeps the live artifact when that one has
// a higher version.
func (e *Engine) Publish(a *artifact.Artifact) bool {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	if cur := e.Artifact(); cur != nil && a != nil && cur.Version > a.Version {
		e.logger.Warn().
			Int("version", a.Version).
			Int("serving_version", cur.Version).
			Msg("not publishing artifact older than the one being served")
		return false
	}
	e.Swap(a)
	return true
}

// Reload loads an artifact and swaps it in. On failure the current
// artifact keeps serving.
func (e *Engine) Reload(ctx context.Context, loader ArtifactLoader) (*artifact.Artifact, error) {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	a, manifest, err := loader.Load(ctx)
	if err != nil {
		metrics.RecordArtifactReload(reloadOutcome(err))
		e.logger.Warn().Err(err).Bool("serving_previous", e.Loaded()).Msg("artifact reload failed")
		return nil, err
	}

	metrics.RecordArtifactReload(metrics.OutcomeSuccess)
	if manifest != nil {
		e.logger.Debug().
			Int("version", manifest.Version).
			Int64("size_bytes", manifest.SizeBytes).
			Time("saved_at", manifest.SavedAt).
			Msg("artifact loaded")
	}
	e.Swap(a)
	return a, nil
}

func reloadOutcome(err error) string {
	switch {
	case errors.Is(err, artifact.ErrArtifactMissing):
		return "missing"
	case errors.Is(err, artifact.ErrArtifactInconsistent):
		return "inconsistent"
	default:
		return metrics.OutcomeError
	}
}

// Recommend returns the best movie for q from the live artifact.
func (e *Engine) Recommend(q Query) (*Recommendation, error) {
	start := time.Now()
	rec, err := Recommend(e.serving(), q)
	metrics.RecordRecommendation(metrics.KindSingle, outcome(err), time.Since(start))
	if err == nil {
		metrics.RecordConfidence(rec.Confidence)
	}
	return rec, err
}

// RecommendTopK returns up to k ranked movies for q from the live artifact.
func (e *Engine) RecommendTopK(q Query, k int) ([]Recommendation, error) {
	start := time.Now()
	recs, err := RecommendTopK(e.serving(), q, k)
	metrics.RecordRecommendation(metrics.KindTopK, outcome(err), time.Since(start))
	if err == nil && len(recs) > 0 {
		metrics.RecordConfidence(recs[0].Confidence)
	}
	return recs, err
}

// Options returns the accepted context values of the live artifact.
func (e *Engine) Options() (*Options, error) {
	return AvailableOptions(e.Artifact())
}

// Info describes the live artifact.
func (e *Engine) Info() *ModelInfo {
	m := e.current.Load()
	if m == nil {
		return Info(nil)
	}
	info := Info(m.artifact)
	info.LoadedAt = e.loadedAt.Load()
	if cs, ok := m.serving.Classifier.(cacheStatser); ok {
		stats := cs.cacheStats()
		info.PredictionCache = &stats
	}
	return info
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, codec.ErrUnknownCategory):
		return metrics.OutcomeUnknownCategory
	case errors.Is(err, ErrNoArtifact):
		return metrics.OutcomeNoModel
	default:
		return metrics.OutcomeError
	}
}
