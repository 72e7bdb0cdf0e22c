// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package lifecycle trains, publishes and reloads model artifacts.
//
// A Manager ties the training pipeline to the artifact store, the live
// inference engine and the training-run registry. The server, the admin
// API and cmd/train all go through it, so every run is recorded and
// published the same way.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/metrics"
	"github.com/tomtom215/moodflix/internal/recommend"
	"github.com/tomtom215/moodflix/internal/registry"
	"github.com/tomtom215/moodflix/internal/training"
)

var (
	// ErrTrainingInProgress is returned when a run is requested while
	// another one is active.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrRegistryDisabled is returned by Runs when no registry is configured.
	ErrRegistryDisabled = errors.New("training-run registry is disabled")
)

// Config wires a Manager.
type Config struct {
	Store       *artifact.Store
	DatasetPath string
	Training    training.Config

	// KeepVersions bounds the bundles kept after a publish. Zero disables pruning.
	KeepVersions int

	// Engine receives each published artifact. Optional.
	Engine *recommend.Engine

	// Registry records every run. Optional.
	Registry *registry.Registry
}

// Manager runs at most one training run at a time.
type Manager struct {
	cfg     Config
	trainer *training.Trainer
	logger  zerolog.Logger

	running sync.Mutex
}

// New creates a Manager.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("lifecycle: artifact store is required")
	}
	if cfg.DatasetPath == "" {
		return nil, errors.New("lifecycle: dataset path is required")
	}
	if err := cfg.Training.Validate(); err != nil {
		return nil, fmt.Errorf("lifecycle: %w", err)
	}
	return &Manager{
		cfg:     cfg,
		trainer: training.NewTrainer(cfg.Training, logger),
		logger:  logger.With().Str("component", "lifecycle").Logger(),
	}, nil
}

// Store returns the artifact store.
func (m *Manager) Store() *artifact.Store {
	return m.cfg.Store
}

// RegistryEnabled reports whether runs are recorded.
func (m *Manager) RegistryEnabled() bool {
	return m.cfg.Registry != nil
}

// Train trains on the configured dataset, publishes the artifact to the
// store, swaps it into the engine and prunes old versions. The returned
// Run describes the outcome and is non-nil even on failure, unless the
// error is ErrTrainingInProgress.
func (m *Manager) Train(ctx context.Context, trigger string) (*registry.Run, error) {
	run, _, err := m.TrainReport(ctx, trigger)
	return run, err
}

// TrainReport is Train that also returns the pipeline summary. The summary
// is nil when the pipeline itself failed.
func (m *Manager) TrainReport(ctx context.Context, trigger string) (*registry.Run, *training.Summary, error) {
	if !m.running.TryLock() {
		return nil, nil, ErrTrainingInProgress
	}
	defer m.running.Unlock()

	run := registry.NewRun(trigger, m.cfg.DatasetPath)
	ctx = logging.ContextWithCorrelationID(ctx, run.ID)
	ctx = logging.ContextWithLogger(ctx, m.logger)
	log := m.logger.With().Str("run_id", run.ID).Str("trigger", trigger).Logger()
	log.Info().Str("dataset", m.cfg.DatasetPath).Msg("training run started")
	m.record(ctx, run)

	start := time.Now()
	res, err := m.trainer.Train(ctx, m.cfg.DatasetPath)
	if err != nil {
		run, err = m.fail(ctx, log, run, start, fmt.Errorf("train: %w", err))
		return run, nil, err
	}

	manifest, err := m.cfg.Store.Save(ctx, res.Artifact)
	if err != nil {
		run, err = m.fail(ctx, log, run, start, fmt.Errorf("publish artifact: %w", err))
		return run, res.Summary, err
	}

	if m.cfg.Engine != nil && !m.cfg.Engine.Publish(res.Artifact) {
		log.Info().Int("version", manifest.Version).Msg("engine already serves a newer version")
	}

	if m.cfg.KeepVersions > 0 {
		removed, err := m.cfg.Store.Prune(ctx, m.cfg.KeepVersions)
		if err != nil {
			log.Warn().Err(err).Msg("pruning old artifact versions failed")
		} else if removed > 0 {
			log.Debug().Int("removed", removed).Msg("pruned old artifact versions")
		}
	}

	run.Succeed(res.Summary, manifest.Version)
	m.record(ctx, run)
	metrics.RecordTraining(time.Since(start), statsFrom(res.Summary), nil)

	log.Info().
		Int("version", manifest.Version).
		Float64("accuracy", res.Summary.Accuracy()).
		Int("classes", res.Summary.Classes).
		Dur("duration", time.Since(start)).
		Msg("training run finished")
	return run, res.Summary, nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (m *Manager) fail(ctx context.Context, log zerolog.Logger, run *registry.Run, start time.Time, err error) (*registry.Run, error) {
	run.Fail(err)
	m.record(ctx, run)
	metrics.RecordTraining(time.Since(start), metrics.TrainingStats{}, err)
	log.Error().Err(err).Dur("duration", time.Since(start)).Msg("training run failed")
	return run, err
}

// record writes run to the registry. Registry errors are logged and
// never fail the run.
func (m *Manager) record(ctx context.Context, run *registry.Run) {
	if m.cfg.Registry == nil {
		return
	}
	// A canceled run is still recorded.
	if err := m.cfg.Registry.Record(context.WithoutCancel(ctx), run); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("run_id", run.ID).Msg("recording training run failed")
	}
}

// Reload loads the current bundle from the store into the engine.
func (m *Manager) Reload(ctx context.Context) (*artifact.Artifact, error) {
	if m.cfg.Engine == nil {
		return nil, errors.New("lifecycle: no engine configured")
	}
	return m.cfg.Engine.Reload(ctx, m.cfg.Store)
}

// Runs lists recorded runs, newest first.
func (m *Manager) Runs(ctx context.Context, limit int) ([]*registry.Run, error) {
	if m.cfg.Registry == nil {
		return nil, ErrRegistryDisabled
	}
	return m.cfg.Registry.List(ctx, limit)
}

// LastRun returns the most recently started run.
func (m *Manager) LastRun(ctx context.Context) (*registry.Run, error) {
	if m.cfg.Registry == nil {
		return nil, ErrRegistryDisabled
	}
	return m.cfg.Registry.Latest(ctx)
}

// Run returns one recorded run.
func (m *Manager) Run(ctx context.Context, id string) (*registry.Run, error) {
	if m.cfg.Registry == nil {
		return nil, ErrRegistryDisabled
	}
	return m.cfg.Registry.Get(ctx, id)
}

func statsFrom(s *training.Summary) metrics.TrainingStats {
	return metrics.TrainingStats{
		Accuracy:      s.Accuracy(),
		RawRows:       s.RawRows,
		MalformedRows: s.MalformedRows,
		Missing:       s.MissingRequired,
		DroppedRare:   s.Filter.DroppedExamples,
		TrainSize:     s.TrainSize,
		TestSize:      s.TestSize,
	}
}
