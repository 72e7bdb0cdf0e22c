// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

/*
Package supervisor provides process supervision for the recommendation
server using suture v4.

The tree has two layers:

	RootSupervisor ("moodflix")
	├── ModelSupervisor ("model-layer")
	│   ├── TrainService      startup and interval retraining
	│   └── ArtifactWatcher   hot reload of bundles published elsewhere
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. A failing watcher or
training schedule never takes the HTTP server down, and the engine keeps
serving the last model that loaded.

# Usage

	logger := logging.NewSlogLogger("supervisor")
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddModelService(services.NewTrainService(manager, trainCfg, zlog))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Events (start, failure, backoff, restart) are logged through sutureslog,
which writes to zerolog via logging.NewSlogHandler.

# See Also

  - github.com/thejerf/suture/v4
  - internal/supervisor/services
*/
package supervisor
