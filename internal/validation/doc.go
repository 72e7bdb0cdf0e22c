// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package validation provides struct validation using go-playground/validator v10.
//
// It exposes a thread-safe singleton validator with one custom tag,
// notblank, which rejects strings made only of whitespace. Fields are
// reported by their JSON names so error details line up with the request
// body the client sent.
//
// # Usage
//
//	type RecommendRequest struct {
//	    Mood    string `json:"mood" validate:"required,notblank,max=64"`
//	    Weather string `json:"weather" validate:"required,notblank,max=64"`
//	    Day     string `json:"day" validate:"required,notblank,max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Error Format
//
// A single failure produces details {field, tag, value}. Several failures
// produce details {fields: [{field, tag, message}, ...]} and a message that
// joins every field message with "; ".
package validation
