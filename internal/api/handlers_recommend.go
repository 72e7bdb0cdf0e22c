// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moodflix/internal/logging"
	"github.com/tomtom215/moodflix/internal/models"
	"github.com/tomtom215/moodflix/internal/recommend"
	"github.com/tomtom215/moodflix/internal/registry"
)

// Options lists the accepted mood, weather and day values.
//
// @Summary Available options
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=recommend.Options}
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /api/v1/options [get]
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	a := h.engine.Artifact()
	opts, err := recommend.AvailableOptions(a)
	if err != nil {
		respondRecommendError(w, err)
		return
	}
	respondData(w, opts, models.Metadata{ModelVersion: a.Version})
}

// Recommend returns the single best movie for a mood, weather and day.
//
// @Summary Single recommendation
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "Context"
// @Success 200 {object} models.APIResponse{data=recommend.Recommendation}
// @Failure 400 {object} models.APIResponse "VALIDATION_ERROR or UNKNOWN_CATEGORY"
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /api/v1/recommend [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.engine.Recommend(recommend.Query{Mood: req.Mood, Weather: req.Weather, Day: req.Day})
	if err != nil {
		respondRecommendError(w, err)
		return
	}

	respondData(w, rec, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// Recommendations returns up to num_recommendations ranked movies.
//
// @Summary Ranked recommendations
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body models.TopKRequest true "Context and count (1-10, default 3)"
// @Success 200 {object} models.APIResponse{data=[]recommend.Recommendation}
// @Failure 400 {object} models.APIResponse "VALIDATION_ERROR or UNKNOWN_CATEGORY"
// @Failure 500 {object} models.APIResponse "PROBABILITY_UNAVAILABLE"
// @Failure 503 {object} models.APIResponse "Model not loaded"
// @Router /api/v1/recommendations [post]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TopKRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	k := recommend.DefaultK
	if req.NumRecommendations != nil {
		k = *req.NumRecommendations
	}

	recs, err := h.engine.RecommendTopK(recommend.Query{Mood: req.Mood, Weather: req.Weather, Day: req.Day}, k)
	if err != nil {
		respondRecommendError(w, err)
		return
	}

	respondData(w, recs, models.Metadata{QueryTimeMS: time.Since(start).Milliseconds()})
}

// modelInfoResponse adds the latest training run to the engine's view.
type modelInfoResponse struct {
	*recommend.ModelInfo
	LastTrainingRun *registry.Run `json:"last_training_run,omitempty"`
}

// ModelInfo describes the loaded model. It reports status not_loaded
// rather than failing when no model is loaded, and includes the latest
// training run when the registry is enabled.
//
// @Summary Model information
// @Tags Recommendations
// @Produce json
// @Success 200 {object} models.APIResponse{data=modelInfoResponse}
// @Router /api/v1/model-info [get]
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	resp := modelInfoResponse{ModelInfo: h.engine.Info()}
	if h.lifecycle.RegistryEnabled() {
		run, err := h.lifecycle.LastRun(r.Context())
		switch {
		case err == nil:
			resp.LastTrainingRun = run
		case !errors.Is(err, registry.ErrRunNotFound):
			logging.Ctx(r.Context()).Warn().Err(err).Msg("reading last training run failed")
		}
	}
	respondData(w, resp, models.Metadata{ModelVersion: resp.Version})
}
