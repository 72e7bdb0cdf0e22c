// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package metrics

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation kinds.
const (
	KindSingle = "single"
	KindTopK   = "top_k"
)

// Outcome label values shared by several metrics.
const (
	OutcomeSuccess         = "success"
	OutcomeUnknownCategory = "unknown_category"
	OutcomeNoModel         = "no_model"
	OutcomeError           = "error"
)

var (
	// Inference Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent producing recommendations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1}, // inference is in-memory
		},
		[]string{"kind"},
	)

	RecommendConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_confidence",
			Help:    "Confidence of the top recommendation",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	PredictionCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_cache_lookups_total",
			Help: "Classifier prediction cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	// Model Metrics
	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_loaded",
			Help: "Whether a model artifact is loaded (1) or not (0)",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_version",
			Help: "Store version of the loaded model artifact",
		},
	)

	ModelClasses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_classes",
			Help: "Number of movies the loaded model can recommend",
		},
	)

	ArtifactReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_reloads_total",
			Help: "Total number of artifact load attempts by outcome",
		},
		[]string{"outcome"}, // "success", "missing", "inconsistent", "error"
	)

	// Training Metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of training runs by outcome",
		},
		[]string{"outcome"},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	TrainingAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_accuracy",
			Help: "Held-out accuracy of the last successful training run",
		},
	)

	TrainingExamples = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "training_examples",
			Help: "Example counts of the last successful training run",
		},
		[]string{"stage"}, // "raw", "malformed", "missing", "dropped_rare", "train", "test"
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_success_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
		func() float64 { return time.Since(processStart).Seconds() },
	)
)

var processStart = time.Now()

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordRecommendation records one inference call.
func RecordRecommendation(kind, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(kind, outcome).Inc()
	RecommendDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordConfidence records the confidence of a served recommendation.
func RecordConfidence(confidence float64) {
	RecommendConfidence.Observe(confidence)
}

// RecordPredictionCache records one prediction cache lookup.
func RecordPredictionCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	PredictionCacheLookups.WithLabelValues(result).Inc()
}

// SetModel publishes the loaded model's version and class count. A
// version of 0 with no classes marks the model as unloaded.
func SetModel(version, classes int) {
	if classes == 0 {
		ModelLoaded.Set(0)
	} else {
		ModelLoaded.Set(1)
	}
	ModelVersion.Set(float64(version))
	ModelClasses.Set(float64(classes))
}

// RecordArtifactReload records an artifact load attempt.
func RecordArtifactReload(outcome string) {
	ArtifactReloadsTotal.WithLabelValues(outcome).Inc()
}

// TrainingStats is the subset of a training summary exported as metrics.
type TrainingStats struct {
	Accuracy      float64
	RawRows       int
	MalformedRows int
	Missing       int
	DroppedRare   int
	TrainSize     int
	TestSize      int
}

// RecordTraining records a finished training run. On error only the run
// counter and duration are updated.
func RecordTraining(duration time.Duration, stats TrainingStats, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		outcome := OutcomeError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "canceled"
		}
		TrainingRunsTotal.WithLabelValues(outcome).Inc()
		return
	}

	TrainingRunsTotal.WithLabelValues(OutcomeSuccess).Inc()
	TrainingAccuracy.Set(stats.Accuracy)
	TrainingExamples.WithLabelValues("raw").Set(float64(stats.RawRows))
	TrainingExamples.WithLabelValues("malformed").Set(float64(stats.MalformedRows))
	TrainingExamples.WithLabelValues("missing").Set(float64(stats.Missing))
	TrainingExamples.WithLabelValues("dropped_rare").Set(float64(stats.DroppedRare))
	TrainingExamples.WithLabelValues("train").Set(float64(stats.TrainSize))
	TrainingExamples.WithLabelValues("test").Set(float64(stats.TestSize))
	TrainingLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
