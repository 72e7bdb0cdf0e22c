// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package services provides suture.Service wrappers for the server's
long-running components.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully on
    cancellation.
  - TrainService: trains at startup (when configured, or when no model is
    loaded) and on a fixed interval through a Trainer such as
    *lifecycle.Manager.
  - ArtifactWatcher: watches the artifact store with fsnotify and hot-reloads
    the engine when the current link moves to a version it does not serve.

Each service implements Serve(ctx) error and String(). Serve returns
ctx.Err() on shutdown; any other return makes suture restart the service
with backoff.
*/
package services
