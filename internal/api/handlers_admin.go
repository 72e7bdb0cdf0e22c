// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moodflix/internal/artifact"
	"github.com/tomtom215/moodflix/internal/lifecycle"
	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/models"
	"github.com/tomtom215/moodflix/internal/registry"
)

// AdminReload loads the current bundle from the artifact store and swaps
// it in. The previous model keeps serving when the load fails.
//
// @Summary Reload the model artifact
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ReloadResult}
// @Failure 500 {object} models.APIResponse "RELOAD_FAILED"
// @Router /api/v1/admin/reload [post]
func (h *Handler) AdminReload(w http.ResponseWriter, r *http.Request) {
	a, err := h.lifecycle.Reload(r.Context())
	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, artifact.ErrArtifactMissing):
			reason = "missing"
		case errors.Is(err, artifact.ErrArtifactInconsistent):
			reason = "inconsistent"
		}
		respondErrorDetails(w, http.StatusInternalServerError, CodeReloadFailed, "Failed to reload model artifact",
			map[string]interface{}{
				"reason":          reason,
				"serving_version": h.servingVersion(),
			}, err)
		return
	}

	logging.Ctx(r.Context()).Info().Int("version", a.Version).Msg("model reloaded via admin API")
	respondData(w, models.ReloadResult{
		Version:   a.Version,
		Classes:   a.Movie.Len(),
		TrainedAt: a.TrainedAt,
	}, models.Metadata{ModelVersion: a.Version})
}

// AdminTrain retrains on the configured dataset and publishes the result.
// Only one run may be active at a time.
//
// @Summary Retrain the model
// @Tags Admin
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.TrainResult}
// @Failure 409 {object} models.APIResponse "TRAINING_IN_PROGRESS"
// @Failure 500 {object} models.APIResponse "TRAINING_FAILED"
// @Router /api/v1/admin/train [post]
func (h *Handler) AdminTrain(w http.ResponseWriter, r *http.Request) {
	// A started run completes even if the client disconnects.
	run, err := h.lifecycle.Train(context.WithoutCancel(r.Context()), registry.TriggerAPI)
	if errors.Is(err, lifecycle.ErrTrainingInProgress) {
		respondError(w, http.StatusConflict, CodeTrainingInProgress, "A training run is already in progress", nil)
		return
	}
	if err != nil {
		details := map[string]interface{}{"error": err.Error()}
		if run != nil {
			details["run_id"] = run.ID
		}
		respondErrorDetails(w, http.StatusInternalServerError, CodeTrainingFailed, "Training run failed", details, err)
		return
	}

	respondData(w, models.TrainResult{
		RunID:         run.ID,
		Version:       run.ArtifactVersion,
		Accuracy:      run.Accuracy,
		Classes:       run.Classes,
		TrainSize:     run.TrainSize,
		TestSize:      run.TestSize,
		SplitStrategy: run.SplitStrategy,
		DurationMS:    run.DurationMS,
	}, models.Metadata{ModelVersion: run.ArtifactVersion})
}

// TrainingRuns lists recorded training runs, newest first.
//
// @Summary Training-run history
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum runs (1-100, default 20)"
// @Success 200 {object} models.APIResponse{data=[]registry.Run}
// @Failure 404 {object} models.APIResponse "REGISTRY_DISABLED"
// @Router /api/v1/admin/training-runs [get]
func (h *Handler) TrainingRuns(w http.ResponseWriter, r *http.Request) {
	req := TrainingRunsRequest{Limit: getIntParam(r, "limit", defaultRunsLimit)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return
	}

	runs, err := h.lifecycle.Runs(r.Context(), req.Limit)
	if err != nil {
		h.respondRegistryError(w, err)
		return
	}
	respondData(w, runs, models.Metadata{})
}

// TrainingRun returns one recorded run.
//
// @Summary Training run
// @Tags Admin
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.APIResponse{data=registry.Run}
// @Failure 404 {object} models.APIResponse "NOT_FOUND or REGISTRY_DISABLED"
// @Router /api/v1/admin/training-runs/{id} [get]
func (h *Handler) TrainingRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.lifecycle.Run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondRegistryError(w, err)
		return
	}
	respondData(w, run, models.Metadata{ModelVersion: run.ArtifactVersion})
}

func (h *Handler) respondRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrRegistryDisabled):
		respondError(w, http.StatusNotFound, CodeRegistryDisabled, "Training-run registry is disabled", nil)
	case errors.Is(err, registry.ErrRunNotFound):
		respondError(w, http.StatusNotFound, CodeNotFound, "Training run not found", nil)
	default:
		respondError(w, http.StatusInternalServerError, CodeInternalError, "Failed to read training runs", err)
	}
}

func (h *Handler) servingVersion() int {
	if a := h.engine.Artifact(); a != nil {
		return a.Version
	}
	return 0
}
