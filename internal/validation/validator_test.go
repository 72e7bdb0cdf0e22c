// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package validation

import (
	"strings"
	"testing"
)

type queryRequest struct {
	Mood  string `json:"mood" validate:"required,notblank,max=64"`
	Day   string `json:"day" validate:"required,notblank,max=64"`
	Count *int   `json:"num_recommendations" validate:"omitempty,min=1,max=10"`
	Note  string `validate:"omitempty,oneof=a b"`
}

func intPtr(v int) *int { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input queryRequest
	}{
		{"minimal", queryRequest{Mood: "Happy", Day: "Weekend"}},
		{"with count", queryRequest{Mood: "Happy", Day: "Weekend", Count: intPtr(10)}},
		{"lower bound", queryRequest{Mood: "Happy", Day: "Weekend", Count: intPtr(1)}},
		{"padded value", queryRequest{Mood: " Happy ", Day: "Weekend"}},
		{"oneof", queryRequest{Mood: "Happy", Day: "Weekend", Note: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   queryRequest
		field   string
		tag     string
		message string
	}{
		{"missing mood", queryRequest{Day: "Weekend"}, "mood", "required", "mood is required"},
		{"blank mood", queryRequest{Mood: "   ", Day: "Weekend"}, "mood", "notblank", "mood must not be blank"},
		{"long day", queryRequest{Mood: "Happy", Day: strings.Repeat("x", 65)}, "day", "max", "day must be at most 64 characters"},
		{"count too high", queryRequest{Mood: "Happy", Day: "Weekend", Count: intPtr(11)}, "num_recommendations", "max", "num_recommendations must be at most 10"},
		{"count zero", queryRequest{Mood: "Happy", Day: "Weekend", Count: intPtr(0)}, "num_recommendations", "min", "num_recommendations must be at least 1"},
		{"oneof", queryRequest{Mood: "Happy", Day: "Weekend", Note: "c"}, "Note", "oneof", "Note must be one of: a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.field || errs[0].Tag() != tt.tag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.field, tt.tag)
			}
			if errs[0].Error() != tt.message {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.message)
			}

			apiErr := verr.ToAPIError()
			if apiErr.Code != CodeValidationError || apiErr.Message != tt.message {
				t.Errorf("ToAPIError() = %+v", apiErr)
			}
			if apiErr.Details["field"] != tt.field {
				t.Errorf("details field = %v, want %s", apiErr.Details["field"], tt.field)
			}
		})
	}
}

func TestToAPIError_Multiple(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&queryRequest{})
	if verr == nil {
		t.Fatal("expected errors")
	}
	apiErr := verr.ToAPIError()
	if apiErr.Message != "mood is required; day is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("details = %#v", apiErr.Details)
	}
	if fields[0]["field"] != "mood" || fields[1]["field"] != "day" {
		t.Errorf("fields = %v", fields)
	}
	if verr.Error() != apiErr.Message {
		t.Errorf("Error() = %q, want %q", verr.Error(), apiErr.Message)
	}
}

func TestToAPIError_Empty(t *testing.T) {
	t.Parallel()

	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Code != CodeValidationError || apiErr.Message != "Validation failed" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("expected error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", verr.Errors()[0].Field())
	}
}
