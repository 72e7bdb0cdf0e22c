// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateRateLimits,
		c.validateDataset,
		c.validateTraining,
		c.validateArtifact,
		c.validateRegistry,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.AdminRateLimitReqs < minRateLimitRequests || c.Security.AdminRateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("ADMIN_RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("DATASET_PATH must not be empty")
	}
	return nil
}

func (c *Config) validateTraining() error {
	t := c.Training
	if t.TestSize <= 0 || t.TestSize >= 1 {
		return fmt.Errorf("TRAIN_TEST_SIZE must be between 0 and 1 (exclusive), got %v", t.TestSize)
	}
	if t.Interval < 0 {
		return fmt.Errorf("TRAIN_INTERVAL must not be negative")
	}
	params := t.ForestParams()
	if err := params.Validate(); err != nil {
		return fmt.Errorf("training: %w", err)
	}
	return nil
}

func (c *Config) validateArtifact() error {
	if strings.TrimSpace(c.Artifact.Dir) == "" {
		return fmt.Errorf("ARTIFACT_DIR must not be empty")
	}
	if c.Artifact.KeepVersions < 1 {
		return fmt.Errorf("ARTIFACT_KEEP_VERSIONS must be at least 1")
	}
	if c.Artifact.Watch && c.Artifact.WatchDebounce <= 0 {
		return fmt.Errorf("ARTIFACT_WATCH_DEBOUNCE must be positive when ARTIFACT_WATCH is enabled")
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.Enabled && strings.TrimSpace(c.Registry.Path) == "" {
		return fmt.Errorf("REGISTRY_PATH must not be empty when the registry is enabled")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
