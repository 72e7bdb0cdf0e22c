// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

// Package logging provides the process-wide zerolog logger for Moodflix.
//
// Both binaries call Init once at startup with the values from the logging
// section of the configuration. Components derive their own loggers from
// the global one and tag them with a component field:
//
//	logger := logging.WithComponent("training")
//	logger.Info().Int("rows", n).Msg("dataset loaded")
//
// HTTP handlers log through Ctx, which adds the request and correlation
// IDs the API middleware stored in the request context:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("recommendation failed")
//
// # Output
//
// Format "json" (the default) writes one JSON object per line to stderr.
// Format "console" writes zerolog's human-readable console output, which
// cmd/train uses when attached to a terminal.
//
// # slog bridge
//
// Suture v4 logs through log/slog via sutureslog. NewSlogLogger returns an
// *slog.Logger whose records are written by the global zerolog logger, so
// supervisor events share the same format and level as everything else.
package logging
