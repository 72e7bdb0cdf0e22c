// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package training

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/dataset"
	"github.com/tomtom215/moodflix/internal/forest"
	"github.com/tomtom215/moodflix/internal/logging"
)

// Config controls a training run.
type Config struct {
	// TestSize is the held-out fraction.
	// Default: 0.2
	TestSize float64

	// Forest holds the classifier hyperparameters. Forest.Seed also seeds
	// the train/test split.
	Forest forest.Params

	// CleanedPath, when set, receives the normalized dataset as CSV.
	CleanedPath string
}

// DefaultConfig returns the production training configuration.
func DefaultConfig() Config {
	return Config{
		TestSize: 0.2,
		Forest:   forest.DefaultParams(),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return fmt.Errorf("test size must be in (0, 1), got %v", c.TestSize)
	}
	if err := c.Forest.Validate(); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	return nil
}

// Summary describes a finished training run.
type Summary struct {
	DatasetPath string           `json:"dataset_path"`
	Encoding    dataset.Encoding `json:"encoding"`

	RawRows         int `json:"raw_rows"`
	MalformedRows   int `json:"malformed_rows"`
	MissingRequired int `json:"missing_required"`
	Rows            int `json:"rows"`
	UniqueMovies    int `json:"unique_movies"`

	Filter  FilterReport `json:"filter"`
	Classes int          `json:"classes"`

	Strategy    Strategy `json:"split_strategy"`
	SplitReason string   `json:"split_reason,omitempty"`
	TrainSize   int      `json:"train_size"`
	TestSize    int      `json:"test_size"`

	Evaluation *Evaluation `json:"evaluation"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Accuracy returns the held-out accuracy, or 0 before evaluation.
func (s *Summary) Accuracy() float64 {
	if s.Evaluation == nil {
		return 0
	}
	return s.Evaluation.Accuracy
}

// Result is the output of a successful training run.
type Result struct {
	Artifact *artifact.Artifact
	Summary  *Summary
}

// Trainer runs the training pipeline.
type Trainer struct {
	cfg        Config
	logger     zerolog.Logger
	normalizer *dataset.Normalizer
}

// NewTrainer creates a trainer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTrainer(cfg Config, logger zerolog.Logger) *Trainer {
	return &Trainer{
		cfg:        cfg,
		logger:     logger.With().Str("component", "training").Logger(),
		normalizer: dataset.NewNormalizer(logger),
	}
}

// Train runs the pipeline with the global logger.
func Train(ctx context.Context, cfg Config, path string) (*Result, error) {
	return NewTrainer(cfg, logging.Logger()).Train(ctx, path)
}

// Train loads the dataset at path and trains a model on it. ctx is checked
// between stages and between trees.
func (t *Trainer) Train(ctx context.Context, path string) (*Result, error) {
	if err := t.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}

	start := time.Now()
	summary := &Summary{DatasetPath: path, StartedAt: start.UTC()}

	t.logger.Info().Str("path", path).Msg("loading dataset")
	loaded, err := t.normalizer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	summary.Encoding = loaded.Encoding
	summary.RawRows = loaded.RawRows
	summary.MalformedRows = len(loaded.Malformed)

	if t.cfg.CleanedPath != "" {
		if err := dataset.WriteCSVFile(t.cfg.CleanedPath, loaded); err != nil {
			return nil, fmt.Errorf("write cleaned dataset: %w", err)
		}
		t.logger.Info().Str("path", t.cfg.CleanedPath).Int("rows", len(loaded.Records)).Msg("cleaned dataset written")
	}

	return t.run(ctx, loaded.Records, summary, start)
}

// TrainRecords trains on already-normalized records.
func (t *Trainer) TrainRecords(ctx context.Context, records []dataset.Record) (*Result, error) {
	if err := t.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}
	start := time.Now()
	summary := &Summary{StartedAt: start.UTC(), RawRows: len(records)}
	return t.run(ctx, records, summary, start)
}

func (t *Trainer) run(ctx context.Context, records []dataset.Record, summary *Summary, start time.Time) (*Result, error) {
	logDatasetStats(t.logger, records)

	records, missing := dataset.DropIncomplete(records)
	summary.MissingRequired = missing
	summary.Rows = len(records)
	t.logger.Info().
		Int("dropped", missing).
		Int("rows", len(records)).
		Msg("removed rows with missing required values")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corpus, err := BuildCorpus(records)
	if err != nil {
		return nil, err
	}
	summary.UniqueMovies = corpus.Movie.Len()

	corpus, report, err := FilterRareClasses(corpus)
	summary.Filter = report
	logFilterReport(t.logger, &report)
	if err != nil {
		return nil, err
	}
	summary.Classes = corpus.Movie.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	split, err := Split(corpus.Y, t.cfg.TestSize, t.cfg.Forest.Seed)
	if err != nil {
		return nil, err
	}
	summary.Strategy = split.Strategy
	summary.SplitReason = split.Reason
	summary.TrainSize = len(split.Train)
	summary.TestSize = len(split.Test)
	if split.Strategy == StrategyStratified {
		t.logger.Info().Int("train", len(split.Train)).Int("test", len(split.Test)).Msg("using stratified train-test split")
	} else {
		t.logger.Warn().
			Str("reason", split.Reason).
			Int("train", len(split.Train)).
			Int("test", len(split.Test)).
			Msg("stratified split failed, using random train-test split")
	}

	xTrain, yTrain := corpus.subset(split.Train)
	xTest, yTest := corpus.subset(split.Test)

	t.logger.Info().
		Int("trees", t.cfg.Forest.NumTrees).
		Int("max_depth", t.cfg.Forest.MaxDepth).
		Str("class_weight", string(t.cfg.Forest.ClassWeight)).
		Int("classes", corpus.Movie.Len()).
		Msg("training random forest")
	clf, err := forest.Fit(ctx, xTrain, yTrain, corpus.Movie.Len(), t.cfg.Forest)
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	yPred, err := clf.PredictBatch(xTest)
	if err != nil {
		return nil, fmt.Errorf("predict held-out set: %w", err)
	}
	ev, err := Evaluate(yTest, yPred, corpus.Movie)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	summary.Evaluation = ev
	logEvaluation(t.logger, ev)

	a, err := artifact.New(clf, corpus.Mood, corpus.Weather, corpus.Day, corpus.Movie, corpus.Movies(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("assemble artifact: %w", err)
	}

	summary.Duration = time.Since(start)
	t.logger.Info().
		Float64("accuracy", ev.Accuracy).
		Int("classes", summary.Classes).
		Dur("duration", summary.Duration).
		Msg("model training completed")

	return &Result{Artifact: a, Summary: summary}, nil
}
