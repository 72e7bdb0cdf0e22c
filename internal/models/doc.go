// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package models defines the HTTP request and response shapes of the
Moodflix API.

Every endpoint answers with APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 2, "model_version": 4}
	}

Failures set status to "error", leave data null and fill error with a
machine-readable code, a message and optional details.

Request structs carry validate tags consumed by internal/validation.
Recommendation payloads themselves are recommend.Recommendation values.
*/
package models
