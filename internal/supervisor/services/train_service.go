// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/lifecycle"
	"github.com/tomtom215/moodflix/internal/registry"
)

// Trainer runs one training run. *lifecycle.Manager implements it.
type Trainer interface {
	Train(ctx context.Context, trigger string) (*registry.Run, error)
}

// TrainServiceConfig controls when the server retrains.
type TrainServiceConfig struct {
	// OnStartup trains once when the service starts.
	OnStartup bool

	// Loaded reports whether a model is being served. When it returns
	// false at startup the service trains even if OnStartup is off.
	// Optional.
	Loaded func() bool

	// Interval retrains periodically. Zero disables the schedule.
	Interval time.Duration

	// Timeout bounds a single run.
	// Default: 30m
	Timeout time.Duration
}

// TrainService runs startup and scheduled training under supervision.
// Every run is a full batch retrain published through the Trainer.
type TrainService struct {
	trainer Trainer
	config  TrainServiceConfig
	logger  zerolog.Logger
	name    string

	startupDone bool
}

// NewTrainService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTrainService(trainer Trainer, cfg TrainServiceConfig, logger zerolog.Logger) *TrainService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &TrainService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "train").Logger(),
		name:    "train-service",
	}
}

// Serve implements suture.Service. Startup training runs once per
// process, not on every restart. Failed runs are logged; the service
// keeps its schedule.
func (s *TrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("on_startup", s.config.OnStartup).
		Dur("interval", s.config.Interval).
		Msg("train service starting")

	if !s.startupDone {
		s.startupDone = true
		if s.needsStartupRun() {
			s.train(ctx, registry.TriggerStartup)
		}
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("train service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.train(ctx, registry.TriggerInterval)
		}
	}
}

func (s *TrainService) needsStartupRun() bool {
	if s.config.OnStartup {
		return true
	}
	if s.config.Loaded != nil && !s.config.Loaded() {
		s.logger.Info().Msg("no model loaded, training on startup")
		return true
	}
	return false
}

func (s *TrainService) train(ctx context.Context, trigger string) {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	run, err := s.trainer.Train(trainCtx, trigger)
	switch {
	case errors.Is(err, lifecycle.ErrTrainingInProgress):
		s.logger.Debug().Str("trigger", trigger).Msg("training already running, skipping")
	case err != nil:
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("training run failed, serving previous model")
	default:
		s.logger.Info().
			Str("trigger", trigger).
			Str("run_id", run.ID).
			Int("version", run.ArtifactVersion).
			Float64("accuracy", run.Accuracy).
			Msg("training run published")
	}
}

// String names the service in supervisor events.
func (s *TrainService) String() string {
	return s.name
}
