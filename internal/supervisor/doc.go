// Moodswipe - Photo-Driven Music Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodswipe

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

# Layout

	RootSupervisor ("moodswipe")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (periodic DuckDB CHECKPOINT)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with backoff; a failure in the data layer does
not stop the API layer from answering.

# Logging

Supervisor events go through log/slog via sutureslog. Pass a logger from
logging.NewSlogLogger so they land in the same zerolog stream as the rest of
the application.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{})
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
