// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: honours or generates X-Request-ID and stores request and
    correlation IDs in the context for logging.Ctx
  - PrometheusMetrics: request counts, latency and in-flight gauge

Both use the http.HandlerFunc shape; the router adapts them to chi with
a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Endpoints are labelled with the chi route pattern (for example
/api/v1/recommend) rather than the raw path, which keeps metric
cardinality bounded.
*/
package middleware
