// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/moodflix/internal/forest"
	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/training"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Training TrainingConfig `koanf:"training"`
	Artifact ArtifactConfig `koanf:"artifact"`
	Registry RegistryConfig `koanf:"registry"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging or production
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs      int           `koanf:"rate_limit_reqs"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	AdminRateLimitReqs int           `koanf:"admin_rate_limit_reqs"`
	CORSOrigins        []string      `koanf:"cors_origins"`
}

// DatasetConfig locates the training CSV.
type DatasetConfig struct {
	Path string `koanf:"path"`

	// CleanedPath, when set, receives the repaired 7-column CSV.
	CleanedPath string `koanf:"cleaned_path"`
}

// TrainingConfig holds the split and forest hyperparameters plus the
// in-process retraining schedule.
type TrainingConfig struct {
	Seed        int64         `koanf:"seed"`
	TestSize    float64       `koanf:"test_size"`
	NumTrees    int           `koanf:"num_trees"`
	MaxDepth    int           `koanf:"max_depth"`
	ClassWeight string        `koanf:"class_weight"`
	OnStartup   bool          `koanf:"on_startup"`
	Interval    time.Duration `koanf:"interval"` // 0 disables periodic retraining
}

// ArtifactConfig locates the versioned artifact store.
type ArtifactConfig struct {
	Dir           string        `koanf:"dir"`
	KeepVersions  int           `koanf:"keep_versions"`
	Watch         bool          `koanf:"watch"`
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// RegistryConfig controls the badger-backed training-run history.
type RegistryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// LoggingOptions converts the section to logging.Config.
func (l LoggingConfig) LoggingOptions() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Caller = l.Caller
	return cfg
}

// ForestParams returns the forest hyperparameters, keeping the forest
// package defaults for settings that are not configurable.
func (t TrainingConfig) ForestParams() forest.Params {
	p := forest.DefaultParams()
	p.NumTrees = t.NumTrees
	p.MaxDepth = t.MaxDepth
	p.ClassWeight = forest.ClassWeight(t.ClassWeight)
	p.Seed = t.Seed
	return p
}

// TrainingOptions builds the pipeline configuration.
func (c *Config) TrainingOptions() training.Config {
	return training.Config{
		TestSize:    c.Training.TestSize,
		Forest:      c.Training.ForestParams(),
		CleanedPath: c.Dataset.CleanedPath,
	}
}

