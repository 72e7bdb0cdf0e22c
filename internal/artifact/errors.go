// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package artifact

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrArtifactMissing is returned when a required bundle component is absent.
	ErrArtifactMissing = errors.New("artifact missing")

	// ErrArtifactInconsistent is returned when bundle components disagree
	// or fail integrity checks.
	ErrArtifactInconsistent = errors.New("artifact inconsistent")
)

// MissingError lists the bundle components that could not be found.
type MissingError struct {
	Dir        string
	Components []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("artifact missing in %s: %s", e.Dir, strings.Join(e.Components, ", "))
}

// Unwrap lets errors.Is match ErrArtifactMissing.
func (e *MissingError) Unwrap() error {
	return ErrArtifactMissing
}

// InconsistentError describes why a bundle was rejected.
type InconsistentError struct {
	Component string
	Reason    string
	Err       error
}

func (e *InconsistentError) Error() string {
	msg := "artifact inconsistent"
	if e.Component != "" {
		msg += ": " + e.Component
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrArtifactInconsistent and the cause.
func (e *InconsistentError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrArtifactInconsistent, e.Err}
	}
	return []error{ErrArtifactInconsistent}
}

func inconsistent(component, reason string, err error) error {
	return &InconsistentError{Component: component, Reason: reason, Err: err}
}
