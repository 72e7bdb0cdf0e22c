// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

Inference Metrics:
  - recommend_requests_total: Recommendation calls (counter)
    Labels: kind (single, top_k), outcome (success, unknown_category, no_model, error)
  - recommend_duration_seconds: Inference latency (histogram)
    Labels: kind
  - recommend_confidence: Confidence of the top recommendation (histogram)

Model Metrics:
  - model_loaded: 1 when an artifact is loaded (gauge)
  - model_version: Store version of the loaded artifact (gauge)
  - model_classes: Recommendable movies (gauge)
  - artifact_reloads_total: Artifact load attempts (counter)
    Labels: outcome (success, missing, inconsistent, error)

Training Metrics:
  - training_runs_total: Training runs (counter)
    Labels: outcome (success, error, canceled)
  - training_duration_seconds: Run duration (histogram)
  - training_accuracy: Held-out accuracy of the last successful run (gauge)
  - training_examples: Example counts of the last successful run (gauge)
    Labels: stage (raw, malformed, missing, dropped_rare, train, test)
  - training_last_success_timestamp: Unix time of the last successful run (gauge)

API Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

# Usage

	start := time.Now()
	recs, err := engine.RecommendTopK(q, k)
	metrics.RecordRecommendation(metrics.KindTopK, outcome, time.Since(start))

# Testing

Collectors are package globals, so tests compare deltas using
prometheus/testutil rather than absolute values.
*/
package metrics
