// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse wraps every API response.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "UNKNOWN_CATEGORY",
//	    "message": "Invalid mood: Grumpy. Available options: [Happy Sad]",
//	    "details": {"feature": "mood", "value": "Grumpy", "available": ["Happy", "Sad"]}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`

	// ModelVersion is the store version of the artifact that served the
	// request, when one was involved.
	ModelVersion int `json:"model_version,omitempty"`
}

// APIError is the error member of a failed response.
//
// Codes:
//   - VALIDATION_ERROR (400): request body failed validation
//   - UNKNOWN_CATEGORY (400): a mood, weather or day the model never saw
//   - MODEL_NOT_LOADED (503): no artifact is loaded
//   - PROBABILITY_UNAVAILABLE (500): the classifier cannot rank classes
//   - TRAINING_IN_PROGRESS (409): a training run is already active
//   - RELOAD_FAILED (500): the stored artifact could not be loaded
//   - TRAINING_FAILED (500): an admin-triggered run failed
//   - REGISTRY_DISABLED (404): the training-run registry is off
//   - NOT_FOUND (404), INTERNAL_ERROR (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Mood    string `json:"mood" validate:"required,notblank,max=64"`
	Weather string `json:"weather" validate:"required,notblank,max=64"`
	Day     string `json:"day" validate:"required,notblank,max=64"`
}

// TopKRequest is the body of POST /api/v1/recommendations.
type TopKRequest struct {
	Mood               string `json:"mood" validate:"required,notblank,max=64"`
	Weather            string `json:"weather" validate:"required,notblank,max=64"`
	Day                string `json:"day" validate:"required,notblank,max=64"`
	NumRecommendations *int   `json:"num_recommendations" validate:"omitempty,min=1,max=10"`
}

// ServiceInfo is returned by GET /.
type ServiceInfo struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion int    `json:"model_version,omitempty"`
	Uptime       string `json:"uptime"`
}

// ReloadResult is returned by POST /api/v1/admin/reload.
type ReloadResult struct {
	Version   int       `json:"version"`
	Classes   int       `json:"classes"`
	TrainedAt time.Time `json:"trained_at"`
}

// TrainResult is returned by POST /api/v1/admin/train.
type TrainResult struct {
	RunID         string  `json:"run_id"`
	Version       int     `json:"version"`
	Accuracy      float64 `json:"accuracy"`
	Classes       int     `json:"classes"`
	TrainSize     int     `json:"train_size"`
	TestSize      int     `json:"test_size"`
	SplitStrategy string  `json:"split_strategy"`
	DurationMS    int64   `json:"duration_ms"`
}
