// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moodflix/internal/lifecycle"
	"github.com/tomtom215/moodflix/internal/models"
	"github.com/tomtom215/moodflix/internal/recommend"
)

// ServiceName is reported by GET /.
const ServiceName = "Moodflix Movie Recommendation API"

// Handler serves the API endpoints.
type Handler struct {
	engine    *recommend.Engine
	lifecycle *lifecycle.Manager
	version   string
	startTime time.Time
}

// NewHandler creates a handler. engine and manager are required.
func NewHandler(engine *recommend.Engine, manager *lifecycle.Manager, version string) *Handler {
	return &Handler{
		engine:    engine,
		lifecycle: manager,
		version:   version,
		startTime: time.Now(),
	}
}

var endpoints = []string{
	"GET /api/v1/health",
	"GET /api/v1/health/ready",
	"GET /api/v1/options",
	"POST /api/v1/recommend",
	"POST /api/v1/recommendations",
	"GET /api/v1/model-info",
	"GET /api/v1/metrics",
	"POST /api/v1/admin/reload",
	"POST /api/v1/admin/train",
	"GET /api/v1/admin/training-runs",
	"GET /api/v1/admin/training-runs/{id}",
}

// Root describes the service.
//
// @Summary Service information
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.ServiceInfo}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondData(w, models.ServiceInfo{
		Service:   ServiceName,
		Version:   h.version,
		Status:    "running",
		Endpoints: endpoints,
	}, models.Metadata{})
}

func (h *Handler) healthStatus(status string) models.HealthStatus {
	hs := models.HealthStatus{
		Status:      status,
		ModelLoaded: h.engine.Loaded(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
	}
	if a := h.engine.Artifact(); a != nil {
		hs.ModelVersion = a.Version
	}
	return hs
}

// Health is the liveness probe. It succeeds whether or not a model is loaded.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /api/v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, h.healthStatus("healthy"), models.Metadata{})
}

// Ready is the readiness probe.
//
// @Summary Readiness probe
// @Description Returns 503 until a model artifact is loaded
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus}
// @Router /api/v1/health/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Loaded() {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   models.StatusError,
			Data:     h.healthStatus("not_ready"),
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    CodeModelNotLoaded,
				Message: "Model not loaded",
			},
		})
		return
	}
	respondData(w, h.healthStatus("ready"), models.Metadata{})
}

// NotFound answers unknown routes with the standard envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
}
