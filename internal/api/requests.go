// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"net/http"
	"strconv"
)

// TrainingRunsRequest holds the validated query parameters of
// GET /api/v1/admin/training-runs.
type TrainingRunsRequest struct {
	Limit int `validate:"min=1,max=100"`
}

// defaultRunsLimit applies when the limit parameter is absent.
const defaultRunsLimit = 20

// getIntParam extracts an integer query parameter. Missing or unparsable
// values fall back to defaultValue.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
