// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package config loads Moodflix configuration with Koanf v2.

Sources are layered, later ones overriding earlier ones:

 1. Built-in defaults (structs provider)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/moodflix/config.yaml, /etc/moodflix/config.yml
 3. Environment variables from a fixed allow-list

Unlisted environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (default 8000)
  - HTTP_TIMEOUT (default 30s), ENVIRONMENT (default development)

Security:
  - RATE_LIMIT_REQUESTS (default 100), RATE_LIMIT_WINDOW (default 1m)
  - ADMIN_RATE_LIMIT_REQUESTS (default 5), DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated (default *)

Dataset:
  - DATASET_PATH (default movie_recommendation_dataset.csv)
  - DATASET_CLEANED_PATH: write the repaired CSV here when set

Training:
  - TRAIN_SEED (42), TRAIN_TEST_SIZE (0.2), TRAIN_NUM_TREES (100)
  - TRAIN_MAX_DEPTH (10), TRAIN_CLASS_WEIGHT (balanced or none)
  - TRAIN_ON_STARTUP (false), TRAIN_INTERVAL (0 disables periodic retraining)

Artifact store:
  - ARTIFACT_DIR (default data/artifacts), ARTIFACT_KEEP_VERSIONS (default 5)
  - ARTIFACT_WATCH (default true), ARTIFACT_WATCH_DEBOUNCE (default 500ms)

Training-run registry:
  - REGISTRY_ENABLED (default true), REGISTRY_PATH (default data/registry)

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json or console), LOG_CALLER (false)

Config is read-only after LoadWithKoanf returns and is safe to share
between goroutines.
*/
package config
