// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package api provides the HTTP layer of the recommendation service.

Routes are served by a Chi router. Every response uses the models.APIResponse
envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "..."}}

# Endpoints

	GET  /                              service info and endpoint list
	GET  /api/v1/health                 liveness
	GET  /api/v1/health/ready           503 until a model is loaded
	GET  /api/v1/options                accepted mood, weather and day values
	POST /api/v1/recommend              single recommendation
	POST /api/v1/recommendations        ranked recommendations (default 3, max 10)
	GET  /api/v1/model-info             description of the loaded model
	GET  /api/v1/metrics                Prometheus metrics
	POST /api/v1/admin/reload           reload the current bundle from the store
	POST /api/v1/admin/train            retrain in-process and publish
	GET  /api/v1/admin/training-runs    training-run history
	GET  /api/v1/admin/training-runs/{id}

# Middleware

Global: request ID, real IP, panic recovery, CORS, Prometheus metrics.
The API group is rate limited per client IP with go-chi/httprate, and the
admin group carries a second, stricter limit.

# Errors

Named failures map to distinct codes (see models.APIError). An unknown
mood, weather or day returns UNKNOWN_CATEGORY with the accepted values in
the details so clients can correct the request.
*/
package api
