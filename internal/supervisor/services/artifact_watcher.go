// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/recommend"
)

// errWatcherClosed makes suture restart the watcher when fsnotify shuts
// its channels.
var errWatcherClosed = errors.New("artifact watcher: event stream closed")

// ArtifactWatcher reloads the engine when the store's current link is
// replaced, so bundles published by another process (the training CLI)
// go live without a restart. Events are debounced and a reload is skipped
// when the engine already serves the current version.
type ArtifactWatcher struct {
	store    *artifact.Store
	engine   *recommend.Engine
	debounce time.Duration
	logger   zerolog.Logger
	name     string
}

// NewArtifactWatcher creates a watcher. A non-positive debounce defaults
// to 500ms.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewArtifactWatcher(store *artifact.Store, engine *recommend.Engine, debounce time.Duration, logger zerolog.Logger) *ArtifactWatcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &ArtifactWatcher{
		store:    store,
		engine:   engine,
		debounce: debounce,
		logger:   logger.With().Str("service", "artifact-watcher").Logger(),
		name:     "artifact-watcher",
	}
}

// Serve implements suture.Service.
func (w *ArtifactWatcher) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }() //nolint:errcheck // shutdown path

	if err := watcher.Add(w.store.Root()); err != nil {
		return fmt.Errorf("watch %s: %w", w.store.Root(), err)
	}
	w.logger.Info().Str("dir", w.store.Root()).Dur("debounce", w.debounce).Msg("watching artifact store")

	// A bundle may have been published while the watcher was down.
	w.reloadIfChanged(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return errWatcherClosed
			}
			if filepath.Base(ev.Name) != artifact.CurrentLink {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug().Str("event", ev.Op.String()).Msg("current bundle link changed")
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errWatcherClosed
			}
			w.logger.Warn().Err(err).Msg("artifact watcher error")

		case <-timer.C:
			w.reloadIfChanged(ctx)
		}
	}
}

// reloadIfChanged reloads unless the engine already serves the version
// the current link points at.
func (w *ArtifactWatcher) reloadIfChanged(ctx context.Context) {
	current := w.store.CurrentVersion()
	if current == 0 {
		return
	}
	if a := w.engine.Artifact(); a != nil && a.Version == current {
		w.logger.Debug().Int("version", current).Msg("current bundle already served")
		return
	}

	a, err := w.engine.Reload(ctx, w.store)
	if err != nil {
		// The engine keeps serving and logs the failure.
		return
	}
	w.logger.Info().Int("version", a.Version).Msg("hot-reloaded model artifact")
}

// String names the service in supervisor events.
func (w *ArtifactWatcher) String() string {
	return w.name
}
