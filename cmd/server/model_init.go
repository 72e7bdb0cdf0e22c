// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/config"
	"github.com/tomtom215/moodflix/internal/lifecycle"
	"github.com/tomtom215/moodflix/internal/recommend"
	"github.com/tomtom215/moodflix/internal/registry"
)

// ModelComponents holds everything that trains, stores and serves the model.
type ModelComponents struct {
	Store    *artifact.Store
	Registry *registry.Registry
	Engine   *recommend.Engine
	Manager  *lifecycle.Manager
}

// Close releases the registry.
func (m *ModelComponents) Close() error {
	if m.Registry == nil {
		return nil
	}
	return m.Registry.Close()
}

// initModel opens the store and registry, creates the engine and loads
// the current bundle. Only a store or manager failure is fatal; a missing
// or unreadable bundle leaves the engine empty. logger is handed to the
// components, which tag it with their own names.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initModel(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*ModelComponents, error) {
	log := logger.With().Str("component", "model-init").Logger()

	store, err := artifact.NewStore(cfg.Artifact.Dir)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	mc := &ModelComponents{
		Store:  store,
		Engine: recommend.NewEngine(logger),
	}

	if cfg.Registry.Enabled {
		reg, err := registry.Open(cfg.Registry.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Registry.Path).Msg("training-run registry unavailable, runs will not be recorded")
		} else {
			mc.Registry = reg
			log.Info().Str("path", cfg.Registry.Path).Msg("training-run registry opened")
		}
	}

	mc.Manager, err = lifecycle.New(lifecycle.Config{
		Store:        store,
		DatasetPath:  cfg.Dataset.Path,
		Training:     cfg.TrainingOptions(),
		KeepVersions: cfg.Artifact.KeepVersions,
		Engine:       mc.Engine,
		Registry:     mc.Registry,
	}, logger)
	if err != nil {
		_ = mc.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("create lifecycle manager: %w", err)
	}

	if _, err := mc.Engine.Reload(ctx, store); err != nil {
		if errors.Is(err, artifact.ErrArtifactMissing) {
			log.Info().Str("dir", store.Root()).Msg("no model artifact yet, serving MODEL_NOT_LOADED until one is trained")
		} else {
			log.Error().Err(err).Str("dir", store.Root()).Msg("failed to load model artifact")
		}
	}

	return mc, nil
}
