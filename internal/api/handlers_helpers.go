// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moodflix/internal/codec"
	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/models"
	"github.com/tomtom215/moodflix/internal/recommend"
	"github.com/tomtom215/moodflix/internal/validation"
)

// Error codes returned in models.APIError.
const (
	CodeValidationError        = validation.CodeValidationError
	CodeInvalidJSON            = "INVALID_JSON"
	CodeUnknownCategory        = "UNKNOWN_CATEGORY"
	CodeModelNotLoaded         = "MODEL_NOT_LOADED"
	CodeProbabilityUnavailable = "PROBABILITY_UNAVAILABLE"
	CodeTrainingInProgress     = "TRAINING_IN_PROGRESS"
	CodeTrainingFailed         = "TRAINING_FAILED"
	CodeReloadFailed           = "RELOAD_FAILED"
	CodeRegistryDisabled       = "REGISTRY_DISABLED"
	CodeRateLimited            = "RATE_LIMITED"
	CodeNotFound               = "NOT_FOUND"
	CodeMethodNotAllowed       = "METHOD_NOT_ALLOWED"
	CodeInternalError          = "INTERNAL_ERROR"
)

// maxBodyBytes bounds request bodies. Requests carry three short strings.
const maxBodyBytes = 1 << 16

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON writes response with status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope.
func respondData(w http.ResponseWriter, data interface{}, meta models.Metadata) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondError writes an error envelope. err, when set, is logged and never
// sent to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// validateRequest validates a struct using go-playground/validator.
// It returns nil when v is valid.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate reads a JSON body into v and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, CodeInvalidJSON, "Request body too large", nil)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Request body must be a JSON object", nil)
		return false
	}
	if apiErr := validateRequest(v); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return false
	}
	return true
}

// respondRecommendError maps inference failures to client responses.
func respondRecommendError(w http.ResponseWriter, err error) {
	var unknown *codec.UnknownCategoryError
	switch {
	case errors.As(err, &unknown):
		respondErrorDetails(w, http.StatusBadRequest, CodeUnknownCategory,
			fmt.Sprintf("Invalid %s: %s. Available options: %v", unknown.Feature, unknown.Value, unknown.Known),
			map[string]interface{}{
				"feature":   unknown.Feature,
				"value":     unknown.Value,
				"available": unknown.Known,
			}, nil)
	case errors.Is(err, recommend.ErrNoArtifact):
		respondError(w, http.StatusServiceUnavailable, CodeModelNotLoaded, "Model not loaded, train or reload a model first", nil)
	case errors.Is(err, recommend.ErrInvalidK):
		respondError(w, http.StatusBadRequest, CodeValidationError,
			fmt.Sprintf("num_recommendations must be between %d and %d", recommend.MinK, recommend.MaxK), nil)
	case errors.Is(err, recommend.ErrProbabilityUnavailable):
		respondError(w, http.StatusInternalServerError, CodeProbabilityUnavailable, "The loaded model cannot rank recommendations", err)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternalError, "Error in recommendation", err)
	}
}
