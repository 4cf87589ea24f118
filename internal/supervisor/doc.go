// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

/*
Package supervisor provides process supervision for PlayNext using suture v4.

The supervisor tree manages the lifecycle of the long-running services with
automatic restart, failure isolation, and graceful shutdown.

# Overview

	RootSupervisor ("playnext")
	├── DataSupervisor ("data-layer")
	│   └── CatalogReloadService (if CATALOG_RELOAD_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A reloader that keeps failing backs off inside the data layer; the API layer
keeps answering from the last installed catalog snapshot.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogReloadService(engine, nil, reloadCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

TreeConfig controls restart behavior. Zero values fall back to suture's
defaults: threshold 5, decay 30s, backoff 15s, shutdown timeout 10s.

# Logging

Supervisor events go through sutureslog. Passing logging.NewSlogLogger()
routes them into the application's zerolog output.
*/
package supervisor
