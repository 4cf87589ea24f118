// PlayNext - Video Game Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

/*
Package services provides suture.Service wrappers for PlayNext components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve

Catalog Reload (CatalogReloadService):
  - Polls the dataset file for modification
  - Loads a fresh snapshot and installs it in the engine
  - Keeps the current snapshot when a reload fails
  - Retries an unchanged file while no snapshot is installed

Model Sweep (ModelSweepService):
  - Evicts expired memoized pool models on a ticker

# Error Handling

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination

All services implement fmt.Stringer so suture can name them in log events.
*/
package services
