// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Command train trains the recommendation model from the CSV dataset and
// publishes a new artifact version to the store the server reads from.
//
// Settings come from the same koanf sources as the server (config.yaml
// and environment). Flags override them:
//
//	train -dataset movies.csv -artifact-dir data/artifacts -trees 200
//
// A running server with ARTIFACT_WATCH=true picks the new version up
// without a restart; otherwise POST /api/v1/admin/reload.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/config"
	"github.com/tomtom215/moodflix/internal/lifecycle"
	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/registry"
)

type options struct {
	dataset     string
	cleaned     string
	artifactDir string
	seed        int64
	trees       int
	maxDepth    int
	testSize    float64
	keep        int
	noRegistry  bool
	jsonOut     bool
}

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	var opts options
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	fs.StringVar(&opts.dataset, "dataset", cfg.Dataset.Path, "path to the movie CSV dataset")
	fs.StringVar(&opts.cleaned, "cleaned", cfg.Dataset.CleanedPath, "write the repaired 7-column CSV here (empty to skip)")
	fs.StringVar(&opts.artifactDir, "artifact-dir", cfg.Artifact.Dir, "artifact store directory")
	fs.Int64Var(&opts.seed, "seed", cfg.Training.Seed, "seed for the split and the forest")
	fs.IntVar(&opts.trees, "trees", cfg.Training.NumTrees, "number of trees")
	fs.IntVar(&opts.maxDepth, "max-depth", cfg.Training.MaxDepth, "maximum tree depth")
	fs.Float64Var(&opts.testSize, "test-size", cfg.Training.TestSize, "held-out fraction")
	fs.IntVar(&opts.keep, "keep", cfg.Artifact.KeepVersions, "artifact versions to keep after publishing")
	fs.BoolVar(&opts.noRegistry, "no-registry", !cfg.Registry.Enabled, "do not record the run in the registry")
	fs.BoolVar(&opts.jsonOut, "json", false, "print the run as JSON instead of a report")
	//nolint:errcheck // ExitOnError
	_ = fs.Parse(os.Args[1:])

	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(cfg.Logging.LoggingOptions())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, opts)
	stop()
	os.Exit(code)
}

// apply copies flag values into cfg.
func (o *options) apply(cfg *config.Config) {
	cfg.Dataset.Path = o.dataset
	cfg.Dataset.CleanedPath = o.cleaned
	cfg.Artifact.Dir = o.artifactDir
	cfg.Artifact.KeepVersions = o.keep
	cfg.Training.Seed = o.seed
	cfg.Training.NumTrees = o.trees
	cfg.Training.MaxDepth = o.maxDepth
	cfg.Training.TestSize = o.testSize
	cfg.Registry.Enabled = !o.noRegistry
}

func run(ctx context.Context, cfg *config.Config, opts options) int {
	logger := logging.WithComponent("train-cli")

	store, err := artifact.NewStore(cfg.Artifact.Dir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open artifact store")
		return 1
	}

	var reg *registry.Registry
	if cfg.Registry.Enabled {
		// The server holds the badger lock while it runs.
		reg, err = registry.Open(cfg.Registry.Path)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Registry.Path).Msg("registry unavailable, the run will not be recorded")
			reg = nil
		} else {
			defer func() {
				if err := reg.Close(); err != nil {
					logger.Error().Err(err).Msg("error closing registry")
				}
			}()
		}
	}

	manager, err := lifecycle.New(lifecycle.Config{
		Store:        store,
		DatasetPath:  cfg.Dataset.Path,
		Training:     cfg.TrainingOptions(),
		KeepVersions: cfg.Artifact.KeepVersions,
		Registry:     reg,
	}, logging.Logger())
	if err != nil {
		logger.Error().Err(err).Msg("invalid training setup")
		return 1
	}

	result, summary, err := manager.TrainReport(ctx, registry.TriggerCLI)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			logger.Error().Err(encErr).Msg("failed to encode run")
		}
	} else if summary != nil {
		bundle := ""
		if err == nil {
			bundle = filepath.Join(store.Root(), fmt.Sprintf("v%d", result.ArtifactVersion))
		}
		writeReport(os.Stdout, summary, bundle, result)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn().Msg("training canceled")
		} else {
			logger.Error().Err(err).Msg("training failed")
		}
		return 1
	}
	return 0
}
