// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package main is the entry point for the Moodflix recommendation server.

The server answers "what should I watch?" for a mood, the weather and the
kind of day, using a random forest trained on a CSV of past choices.

# Application Architecture

	RootSupervisor ("moodflix")
	├── ModelSupervisor ("model-layer")
	│   ├── TrainService      startup / interval retraining
	│   └── ArtifactWatcher   hot reload (ARTIFACT_WATCH=true)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Component initialization order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Artifact store: versioned bundles under ARTIFACT_DIR
 4. Training-run registry: BadgerDB under REGISTRY_PATH (optional)
 5. Inference engine: loads the current bundle; a missing or broken
    bundle is logged and the API answers MODEL_NOT_LOADED until a
    reload or training run succeeds
 6. Lifecycle manager: train, publish, swap, prune
 7. Supervisor tree and HTTP server

# Configuration

	HTTP_HOST=0.0.0.0
	HTTP_PORT=8000
	DATASET_PATH=movie_recommendation_dataset.csv
	ARTIFACT_DIR=data/artifacts
	TRAIN_ON_STARTUP=false
	TRAIN_INTERVAL=0            # e.g. 24h; 0 disables scheduled retraining
	REGISTRY_ENABLED=true
	LOG_LEVEL=info
	LOG_FORMAT=json

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to the shutdown timeout and the registry is
closed last.

# Example Usage

	./train                     # produce data/artifacts/v1
	./server                    # serve it on :8000
	curl -X POST localhost:8000/api/v1/recommend \
	  -d '{"mood":"Happy","weather":"Sunny","day":"Weekend"}'
*/
package main
