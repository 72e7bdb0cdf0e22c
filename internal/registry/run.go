// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package registry

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moodflix/internal/training"
)

// Run status values.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Triggers name what started a run.
const (
	TriggerStartup  = "startup"
	TriggerInterval = "interval"
	TriggerAPI      = "api"
	TriggerCLI      = "cli"
)

// Run is one training run.
type Run struct {
	ID         string    `json:"id"`
	Trigger    string    `json:"trigger"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	DurationMS int64     `json:"duration_ms"`

	DatasetPath     string   `json:"dataset_path"`
	RawRows         int      `json:"raw_rows"`
	MalformedRows   int      `json:"malformed_rows"`
	MissingRequired int      `json:"missing_required"`
	Rows            int      `json:"rows"`
	DroppedLabels   []string `json:"dropped_labels,omitempty"`
	DroppedExamples int      `json:"dropped_examples"`
	Classes         int      `json:"classes"`

	SplitStrategy string  `json:"split_strategy,omitempty"`
	SplitReason   string  `json:"split_reason,omitempty"`
	TrainSize     int     `json:"train_size"`
	TestSize      int     `json:"test_size"`
	Accuracy      float64 `json:"accuracy"`
	ReportSkipped bool    `json:"report_skipped,omitempty"`

	ArtifactVersion int `json:"artifact_version,omitempty"`
}

// NewRun starts a run record.
func NewRun(trigger, datasetPath string) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Trigger:     trigger,
		Status:      StatusRunning,
		StartedAt:   time.Now().UTC(),
		DatasetPath: datasetPath,
	}
}

// Succeed fills r from a training summary and the published version.
func (r *Run) Succeed(s *training.Summary, artifactVersion int) {
	r.finish()
	r.Status = StatusSucceeded
	r.ArtifactVersion = artifactVersion
	if s == nil {
		return
	}

	r.RawRows = s.RawRows
	r.MalformedRows = s.MalformedRows
	r.MissingRequired = s.MissingRequired
	r.Rows = s.Rows
	r.DroppedLabels = s.Filter.DroppedLabels
	r.DroppedExamples = s.Filter.DroppedExamples
	r.Classes = s.Classes
	r.SplitStrategy = string(s.Strategy)
	r.SplitReason = s.SplitReason
	r.TrainSize = s.TrainSize
	r.TestSize = s.TestSize
	r.Accuracy = s.Accuracy()
	r.ReportSkipped = s.Evaluation != nil && s.Evaluation.ReportErr != nil
}

// Fail marks r as failed with err.
func (r *Run) Fail(err error) {
	r.finish()
	r.Status = StatusFailed
	if err != nil {
		r.Error = err.Error()
	}
}

func (r *Run) finish() {
	r.FinishedAt = time.Now().UTC()
	r.DurationMS = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
}
